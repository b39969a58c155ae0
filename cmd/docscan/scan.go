package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/docscan/internal/config"
	"github.com/nao1215/docscan/internal/database"
	"github.com/nao1215/docscan/internal/log"
	"github.com/nao1215/docscan/internal/model"
	"github.com/nao1215/docscan/internal/pipeline"
	"github.com/nao1215/docscan/internal/report"
	"github.com/nao1215/docscan/internal/watch"
)

// errFindingsAboveThreshold is returned when a scan produced findings at
// or above the --fail-on severity. The root command prints it and exits 1.
var errFindingsAboveThreshold = errors.New("findings at or above the fail-on severity were detected")

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [docs-directory]...",
		Short: "Scan documentation trees for broken references and structural issues",
		Long: `Scan audits one or more markdown documentation trees.

It discovers every markdown document under the root, parses it, and
analyzes the collection for:
- Broken links, images, and anchors
- Heading hierarchy problems (skipped levels, missing titles)
- Malformed tables and missing front matter
- Orphaned documents nothing links to
- Sensitive metadata (GPS coordinates) in committed images

Examples:
  # Scan the docs directory of the current project
  docscan scan ./docs

  # Scan multiple documentation trees concurrently
  docscan scan ./docs ./wiki ./handbook

  # Re-scan automatically whenever a file changes
  docscan scan --watch ./docs

  # Output JSON report and fail CI on medium findings
  docscan scan --json --fail-on medium ./docs

  # Use a custom configuration file
  docscan scan -c myconfig.yaml ./docs

Configuration file (.docscan) example:
  defaults:
    requiredFrontMatter:
      - title
  collections:
    ./docs:
      ignorePatterns:
        - "drafts/*"
      disabledChecks:
        - orphans`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Discovery flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum directory recursion depth below each root")
	cmd.Flags().IntP("max-docs", "p", config.DefaultMaxDocuments,
		"Maximum number of markdown documents to parse per root")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans when multiple roots are given")

	// Analysis flags
	cmd.Flags().Bool("exif", true,
		"Inspect referenced images for embedded EXIF metadata")
	cmd.Flags().String("fail-on", strings.ToLower(config.DefaultFailOnSeverity.String()),
		"Exit non-zero when findings at or above this severity exist (info, low, medium, high, critical)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .docscan in the root, current, or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Watch mode
	cmd.Flags().BoolP("watch", "w", false,
		"Stay running and re-scan whenever documents change (single root only)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewPathLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.MaxDocuments, err = cmd.Flags().GetInt("max-docs")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	failOn, err := cmd.Flags().GetString("fail-on")
	if err != nil {
		return nil, err
	}
	severity, ok := model.ParseSeverity(strings.ToLower(failOn))
	if !ok {
		return nil, fmt.Errorf("invalid --fail-on severity %q (use info, low, medium, high, or critical)", failOn)
	}
	cfg.FailOn = severity

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Watch, err = cmd.Flags().GetBool("watch")
	if err != nil {
		return nil, err
	}

	cfg.InspectEXIF, err = cmd.Flags().GetBool("exif")
	if err != nil {
		return nil, err
	}

	// Positional arguments are the documentation roots.
	// Without arguments the current directory is scanned.
	cfg.Roots = args
	if len(cfg.Roots) == 0 {
		cfg.Roots = []string{"."}
	}

	// Load per-collection configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath, cfg.Roots)

	if configPath != "" {
		cfg.CollectionConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.CollectionConfigs = &config.File{
			Collections: make(map[string]config.CollectionConfig),
		}
	}

	// Always save to database using XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Roots) == 0 {
		return errors.New("no documentation roots provided (specify one or more directories as arguments)")
	}
	if cfg.Watch && len(cfg.Roots) > 1 {
		return errors.New("watch mode supports a single documentation root")
	}

	logger.Info("starting scan",
		"roots", cfg.Roots,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close() //nolint:errcheck // Best effort cleanup
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	if cfg.Watch {
		return runWatchScan(ctx, cfg, db, logger)
	}

	// Use batch processor for parallel scanning if multiple roots
	if len(cfg.Roots) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, db, logger)
	}

	// Single root or sequential scanning
	return runSequentialScan(ctx, cfg, db, logger)
}

// runSequentialScan scans roots one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	failed := false

	for _, root := range cfg.Roots {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		scanReport, err := scanRoot(ctx, cfg, root, logger)
		if err != nil {
			logger.Error("scan failed", "root", root, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", root, err)
			failed = true
			continue
		}

		// Generate and output report
		if err := outputReport(cfg, scanReport); err != nil {
			logger.Error("report failed", "root", root, "error", err)
		}

		// Save to database if enabled
		if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
			logger.Error("failed to save scan report", "root", root, "error", err)
		}

		if reportExceedsThreshold(scanReport, cfg.FailOn) {
			failed = true
		}
	}

	if failed {
		return errFindingsAboveThreshold
	}
	return nil
}

// runBatchScan scans multiple roots concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch scan of %d roots (concurrency: %d)...\n\n",
		len(cfg.Roots), cfg.BatchSize)

	startTime := time.Now()

	// Warn user about batch processing limitation
	if cfg.CollectionConfigs != nil && len(cfg.CollectionConfigs.Collections) > 0 {
		logger.Warn("batch processing uses default collection config only; per-collection settings are ignored",
			"collectionCount", len(cfg.CollectionConfigs.Collections))
		fmt.Fprintf(os.Stderr, "Warning: Per-collection configurations are ignored in batch mode. Use sequential mode (--batch 1) to apply them.\n\n")
	}

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			var collectionConfig config.CollectionConfig
			if cfg.CollectionConfigs != nil {
				collectionConfig = cfg.CollectionConfigs.Defaults
			}
			return createPipelineForRoot(logger, cfg, collectionConfig)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	failed := false
	err := bp.ProcessBatchWithCallback(ctx, cfg.Roots, func(scanReport *model.DocScanReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Scan completed: %s\n", index+1, len(cfg.Roots), scanReport.Root)

		// Generate and output report
		if err := outputReport(cfg, scanReport); err != nil {
			logger.Error("report failed", "root", scanReport.Root, "error", err)
		}

		// Save to database if enabled
		if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
			logger.Error("failed to save scan report", "root", scanReport.Root, "error", err)
		}

		if scanReport.Error != nil || reportExceedsThreshold(scanReport, cfg.FailOn) {
			failed = true
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch scan completed in %s\n", elapsed.Round(time.Millisecond))

	if err != nil {
		return err
	}
	if failed {
		return errFindingsAboveThreshold
	}
	return nil
}

// runWatchScan performs an initial scan and then re-scans on file changes.
// It runs until the context is cancelled and never fails on findings, so
// a broken link does not stop the watch loop.
func runWatchScan(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	root := cfg.Roots[0]

	rescan := func(ctx context.Context) {
		scanReport, err := scanRoot(ctx, cfg, root, logger)
		if err != nil {
			logger.Error("scan failed", "root", root, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", root, err)
			return
		}
		if err := outputReport(cfg, scanReport); err != nil {
			logger.Error("report failed", "root", root, "error", err)
		}
		if err := saveScanReport(ctx, db, scanReport, logger); err != nil {
			logger.Error("failed to save scan report", "root", root, "error", err)
		}
	}

	rescan(ctx)

	watcher, err := watch.New(root,
		watch.WithDebounce(config.DefaultWatchDebounceMillis*time.Millisecond),
		watch.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)...\n\n", watcher.Root())

	err = watcher.Run(ctx, func(ctx context.Context, paths []string) {
		fmt.Printf("Change detected (%d files), re-scanning...\n\n", len(paths))
		rescan(ctx)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// scanRoot runs the scan pipeline for a single root with its collection
// configuration applied.
func scanRoot(ctx context.Context, cfg *config.Config, root string, logger *slog.Logger) (*model.DocScanReport, error) {
	collectionConfig := getCollectionConfig(cfg, root)
	p := createPipelineForRoot(logger, cfg, collectionConfig)

	scanReport := model.NewDocScanReport(root)

	fmt.Printf("Scanning %s...\n", root)
	startTime := time.Now()

	if err := p.Execute(ctx, scanReport); err != nil {
		return nil, err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

	return scanReport, nil
}

// getCollectionConfig returns the collection configuration for a root.
// Falls back to defaults if no collection-specific config exists.
func getCollectionConfig(cfg *config.Config, root string) config.CollectionConfig {
	if cfg.CollectionConfigs == nil {
		return config.CollectionConfig{}
	}
	return cfg.CollectionConfigs.GetCollectionConfig(root)
}

// createPipelineForRoot creates a pipeline with the given configuration.
func createPipelineForRoot(logger *slog.Logger, cfg *config.Config, collectionConfig config.CollectionConfig) *pipeline.Pipeline {
	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	}

	// Determine recursion depth (collection-specific overrides global)
	maxDepth := cfg.MaxDepth
	if collectionConfig.Depth > 0 {
		maxDepth = collectionConfig.Depth
	}

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineMaxDepth(maxDepth),
		pipeline.WithPipelineMaxDocuments(cfg.MaxDocuments),
		pipeline.WithPipelineEXIF(cfg.InspectEXIF),
	}

	if len(collectionConfig.IgnorePatterns) > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineIgnorePatterns(collectionConfig.IgnorePatterns))
	}
	if len(collectionConfig.FollowPatterns) > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineFollowPatterns(collectionConfig.FollowPatterns))
	}
	if len(collectionConfig.RequiredFrontMatter) > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineRequiredFrontMatter(collectionConfig.RequiredFrontMatter))
	}
	if len(collectionConfig.DisabledChecks) > 0 {
		configOpts = append(configOpts, pipeline.WithPipelineDisabledChecks(collectionConfig.DisabledChecks))
	}

	return pipeline.DefaultPipeline(pipelineOpts, configOpts...)
}

// reportExceedsThreshold reports whether the scan found anything at or
// above the fail-on severity.
func reportExceedsThreshold(scanReport *model.DocScanReport, failOn model.Severity) bool {
	maxSeverity, ok := scanReport.MaxSeverity()
	return ok && maxSeverity >= failOn
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.DocScanReport) error {
	// Generate simple report if needed
	if scanReport.SimpleReport == nil {
		scanReport.SimpleReport = model.NewSimpleReport(scanReport)
	}

	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Best effort cleanup
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (detailed report with all data)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(scanReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(scanReport)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output)
	_, err := writer.Write(scanReport)
	return err
}

// saveScanReport saves the scan report to the database if enabled.
// If db is nil, this function is a no-op.
func saveScanReport(ctx context.Context, db *database.HistoryDB, scanReport *model.DocScanReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	// Ensure SimpleReport is generated before saving
	if scanReport.SimpleReport == nil {
		scanReport.SimpleReport = model.NewSimpleReport(scanReport)
	}

	scanID, err := db.SaveScanReport(ctx, scanReport)
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved to database", "root", scanReport.Root, "scanID", scanID)
	return nil
}
