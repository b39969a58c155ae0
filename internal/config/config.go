package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/docscan/internal/model"
)

// Default configuration values.
// These are chosen for typical documentation trees (project docs,
// thesis chapter collections, wikis) and can be overridden via CLI flags.
const (
	// DefaultMaxDepth limits directory recursion below the root.
	// 25 is far deeper than any sane documentation tree while still
	// terminating on pathological layouts (or symlink loops the walker
	// failed to detect).
	DefaultMaxDepth = 25

	// DefaultMaxDocuments caps the number of markdown documents parsed
	// per scan. This prevents runaway scans when docscan is pointed at a
	// repository root with generated markdown. Users can raise it via
	// the --max-docs flag.
	DefaultMaxDocuments = 2000

	// DefaultBatchSize is the number of concurrent scans when multiple
	// roots are given. Scans are I/O bound on file reads, so a small
	// number of workers is enough.
	DefaultBatchSize = 4

	// DefaultFailOnSeverity is the minimum severity that makes the scan
	// command exit non-zero. High covers broken links and missing assets
	// while letting style findings pass in CI.
	DefaultFailOnSeverity = model.SeverityHigh

	// AppName is the application name used for XDG directory paths.
	AppName = "docscan"

	// DefaultWatchDebounce is how long the watch mode waits after the
	// last filesystem event before re-scanning. Editors typically emit
	// several events per save.
	DefaultWatchDebounceMillis = 250
)

// DefaultMarkdownExtensions lists the file extensions treated as
// markdown documents, lowercase with leading dot.
var DefaultMarkdownExtensions = []string{".md", ".markdown", ".mdown"}

// Config holds all configuration options for docscan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., WalkConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Roots is the list of documentation roots to scan.
	// Each must be an existing directory.
	Roots []string

	// MaxDepth is the maximum directory recursion depth below each root.
	// Depth 0 means only files directly in the root.
	MaxDepth int

	// MaxDocuments is the maximum number of markdown documents to parse
	// per root. Zero means use the default.
	MaxDocuments int

	// BatchSize is the number of concurrent scans when processing
	// multiple roots.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .docscan in the scanned root,
	// the current directory, and then the user's home directory.
	ConfigFilePath string

	// CollectionConfigs holds per-collection configurations loaded from
	// the config file. Populated by LoadConfigFile.
	CollectionConfigs *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// FailOn is the minimum finding severity that makes the scan
	// command exit with status 1.
	FailOn model.Severity

	// Watch enables watch mode: docscan stays running and re-scans the
	// root whenever documents change.
	Watch bool

	// InspectEXIF enables reading referenced image files to detect
	// embedded EXIF metadata. Disabled scans never open non-markdown files.
	InspectEXIF bool

	// DBDir is the directory path for storing the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/docscan on Linux).
	DBDir string

	// SaveToDB indicates whether to save scan results to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		MaxDepth:     DefaultMaxDepth,
		MaxDocuments: DefaultMaxDocuments,
		BatchSize:    DefaultBatchSize,
		FailOn:       DefaultFailOnSeverity,
		InspectEXIF:  true,
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error so callers can
// use errors.Is for programmatic handling.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.MaxDocuments < 0 {
		return ErrInvalidMaxDocuments
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Watch && (c.JSONReport || c.MarkdownReport) {
		return ErrWatchReportFormat
	}
	return nil
}

// XDGDataDir returns the XDG data directory for docscan.
// On Linux: ~/.local/share/docscan
// On macOS: ~/Library/Application Support/docscan
// On Windows: %LOCALAPPDATA%\docscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for docscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for docscan.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}
