package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/docscan/internal/analyzer"
	"github.com/nao1215/docscan/internal/config"
	"github.com/nao1215/docscan/internal/mdparse"
	"github.com/nao1215/docscan/internal/model"
	"github.com/nao1215/docscan/internal/walker"
)

// DiscoverStep walks the documentation root and indexes every regular
// file as a candidate link target.
//
// Design decision: Discovery is a separate step because:
// 1. It's the foundation for everything else (parsing needs paths)
// 2. The asset index is needed for link resolution, not just parsing
// 3. Can be reused alone for a quick inventory
type DiscoverStep struct {
	// maxDepth limits directory recursion.
	maxDepth int

	// maxDocuments limits the number of markdown files to collect.
	maxDocuments int

	// extensions lists the file extensions treated as documents.
	extensions []string

	// ignorePatterns are path patterns to skip during the walk.
	ignorePatterns []string

	// followPatterns are path patterns to restrict the walk to.
	followPatterns []string

	// logger for structured logging.
	logger *slog.Logger
}

// DiscoverStepOption configures a DiscoverStep.
type DiscoverStepOption func(*DiscoverStep)

// WithDiscoverMaxDepth sets the maximum directory depth.
func WithDiscoverMaxDepth(depth int) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.maxDepth = depth
	}
}

// WithDiscoverMaxDocuments sets the maximum number of documents to collect.
func WithDiscoverMaxDocuments(n int) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.maxDocuments = n
	}
}

// WithDiscoverExtensions sets the file extensions treated as documents.
func WithDiscoverExtensions(exts []string) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.extensions = exts
	}
}

// WithDiscoverIgnorePatterns sets path patterns to skip during the walk.
func WithDiscoverIgnorePatterns(patterns []string) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.ignorePatterns = patterns
	}
}

// WithDiscoverFollowPatterns sets path patterns to restrict the walk to.
func WithDiscoverFollowPatterns(patterns []string) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.followPatterns = patterns
	}
}

// WithDiscoverLogger sets a custom logger for the discovery step.
func WithDiscoverLogger(logger *slog.Logger) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.logger = logger
	}
}

// NewDiscoverStep creates a new discovery step.
func NewDiscoverStep(opts ...DiscoverStepOption) *DiscoverStep {
	s := &DiscoverStep{
		maxDepth:     config.DefaultMaxDepth,
		maxDocuments: config.DefaultMaxDocuments,
		extensions:   config.DefaultMarkdownExtensions,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover"
}

// Do executes the discovery step.
func (s *DiscoverStep) Do(ctx context.Context, report *model.DocScanReport) error {
	root, err := walker.NormalizeRoot(report.Root)
	if err != nil {
		return err
	}
	report.Root = root

	opts := []walker.Option{
		walker.WithMaxDepth(s.maxDepth),
		walker.WithMaxDocuments(s.maxDocuments),
		walker.WithExtensions(s.extensions),
		walker.WithLogger(s.logger),
	}
	if len(s.ignorePatterns) > 0 {
		opts = append(opts, walker.WithIgnorePatterns(s.ignorePatterns))
	}
	if len(s.followPatterns) > 0 {
		opts = append(opts, walker.WithFollowPatterns(s.followPatterns))
	}

	result, err := walker.New(opts...).Walk(ctx, root)
	if err != nil {
		return fmt.Errorf("discover %s: %w", root, err)
	}

	report.Assets = result.Assets
	report.AssetCount = len(result.Assets)
	report.DocumentPaths = result.DocumentPaths
	report.CaseInsensitiveFS = result.CaseInsensitiveFS

	if result.Truncated {
		s.logger.Warn("document limit reached, tree truncated",
			"root", report.Root,
			"limit", s.maxDocuments,
		)
	}
	s.logger.Info("discovery completed",
		"documents", len(result.DocumentPaths),
		"assets", len(result.Assets),
	)

	return nil
}

// ParseStep reads and parses every discovered markdown document.
//
// Design decision: Parsing is separate from discovery because:
// 1. Discovery is cheap, parsing is not; the split keeps limits honest
// 2. Parsing failures are per-document and must not abort the walk
// 3. The parser is reused across documents
type ParseStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// ParseStepOption configures a ParseStep.
type ParseStepOption func(*ParseStep)

// WithParseLogger sets a custom logger for the parse step.
func WithParseLogger(logger *slog.Logger) ParseStepOption {
	return func(s *ParseStep) {
		s.logger = logger
	}
}

// NewParseStep creates a new parsing step.
func NewParseStep(opts ...ParseStepOption) *ParseStep {
	s := &ParseStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do executes the parsing step. Only the paths discovery selected are
// parsed: the asset index also holds documents the document limit or
// follow patterns excluded, and those must stay link targets without
// being analyzed.
func (s *ParseStep) Do(ctx context.Context, report *model.DocScanReport) error {
	parser := mdparse.New()

	for _, rel := range report.DocumentPaths {
		select {
		case <-ctx.Done():
			report.TimedOut = true
			return ctx.Err()
		default:
		}

		raw, err := os.ReadFile(filepath.Join(report.Root, filepath.FromSlash(rel)))
		if err != nil {
			s.logger.Warn("document unreadable", "path", rel, "error", err)
			report.AddDocument(&model.Document{
				Path:       rel,
				ParseError: err.Error(),
			})
			continue
		}

		report.AddDocument(parser.Parse(rel, raw))
	}

	s.logger.Info("parsing completed", "documents", report.DocumentCount)
	return nil
}

// AnalyzeStep runs the documentation checks on all parsed documents.
//
// Design decision: Analysis is a separate step because:
// 1. It operates on accumulated data from previous steps
// 2. It has its own configuration (which checks to run)
// 3. Results are the primary scan findings
type AnalyzeStep struct {
	// analyzer is the main check coordinator.
	analyzer *analyzer.Analyzer

	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets a custom logger for the analysis step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// WithAnalyzeOptions replaces the default analyzer configuration.
func WithAnalyzeOptions(opts analyzer.AnalyzerOptions) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.analyzer = analyzer.NewAnalyzer(func(o *analyzer.AnalyzerOptions) {
			*o = opts
		})
	}
}

// NewAnalyzeStep creates a new analysis step.
func NewAnalyzeStep(opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		analyzer: analyzer.NewAnalyzer(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analysis step.
func (s *AnalyzeStep) Do(ctx context.Context, report *model.DocScanReport) error {
	// Skip if nothing was parsed
	if len(report.Documents) == 0 {
		s.logger.Debug("skipping analysis, no documents parsed")
		return nil
	}

	// Checks that read raw files (EXIF) stay confined to the root.
	s.analyzer.SetFileReader(func(rel string) ([]byte, error) {
		clean := filepath.Clean(filepath.FromSlash(rel))
		if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
			return nil, fmt.Errorf("path %q escapes the documentation root", rel)
		}
		return os.ReadFile(filepath.Join(report.Root, clean))
	})

	data := &analyzer.AnalysisData{
		Root:              report.Root,
		Documents:         report.Documents,
		Assets:            report.Assets,
		CaseInsensitiveFS: report.CaseInsensitiveFS,
		Report:            report,
	}

	findings, err := s.analyzer.Analyze(ctx, data)
	if err != nil {
		// Non-fatal: return partial results
		s.logger.Warn("analysis completed with error", "error", err)
	}

	for _, f := range findings {
		report.AddFinding(f)
	}

	s.logger.Info("analysis completed",
		"findings_count", len(findings),
	)

	return nil
}

// SummarizeStep finalizes the simple report: counters, error text, and
// deterministic finding order.
type SummarizeStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// SummarizeStepOption configures a SummarizeStep.
type SummarizeStepOption func(*SummarizeStep)

// WithSummarizeLogger sets a custom logger for the summarize step.
func WithSummarizeLogger(logger *slog.Logger) SummarizeStepOption {
	return func(s *SummarizeStep) {
		s.logger = logger
	}
}

// NewSummarizeStep creates a new summarization step.
func NewSummarizeStep(opts ...SummarizeStepOption) *SummarizeStep {
	s := &SummarizeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do executes the summarization step.
func (s *SummarizeStep) Do(_ context.Context, report *model.DocScanReport) error {
	report.SimpleReport = model.NewSimpleReport(report)
	report.SortFindings()

	s.logger.Info("scan summarized",
		"root", report.Root,
		"findings", report.SimpleReport.TotalFindings(),
	)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// MaxDepth is the maximum directory depth for discovery.
	MaxDepth int

	// MaxDocuments is the maximum number of documents to collect.
	MaxDocuments int

	// Extensions lists the file extensions treated as documents.
	Extensions []string

	// IgnorePatterns are path patterns to skip during discovery.
	IgnorePatterns []string

	// FollowPatterns are path patterns to restrict discovery to.
	FollowPatterns []string

	// RequiredFrontMatter lists front matter keys every document must define.
	RequiredFrontMatter []string

	// DisabledChecks lists check names to skip during analysis.
	DisabledChecks []string

	// EnableEXIF enables EXIF metadata extraction from referenced images.
	EnableEXIF bool
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineMaxDepth sets the discovery depth for the pipeline.
func WithPipelineMaxDepth(depth int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MaxDepth = depth
	}
}

// WithPipelineMaxDocuments sets the maximum documents to collect.
func WithPipelineMaxDocuments(n int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MaxDocuments = n
	}
}

// WithPipelineExtensions sets the file extensions treated as documents.
func WithPipelineExtensions(exts []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Extensions = exts
	}
}

// WithPipelineIgnorePatterns sets path patterns to skip during discovery.
func WithPipelineIgnorePatterns(patterns []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.IgnorePatterns = patterns
	}
}

// WithPipelineFollowPatterns sets path patterns to restrict discovery to.
func WithPipelineFollowPatterns(patterns []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.FollowPatterns = patterns
	}
}

// WithPipelineRequiredFrontMatter sets the required front matter keys.
func WithPipelineRequiredFrontMatter(keys []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.RequiredFrontMatter = keys
	}
}

// WithPipelineDisabledChecks sets check names to skip during analysis.
func WithPipelineDisabledChecks(names []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.DisabledChecks = names
	}
}

// WithPipelineEXIF toggles EXIF metadata extraction.
func WithPipelineEXIF(enable bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.EnableEXIF = enable
	}
}

// DefaultPipeline creates a pipeline with all default steps configured.
// This is the standard pipeline for a full documentation tree scan.
//
// Design decision: We provide a default pipeline because:
// 1. Most users want all checks
// 2. Reduces boilerplate in CLI
// 3. Ensures consistent ordering
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts pipeline config options (WithPipelineMaxDepth, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		MaxDepth:     config.DefaultMaxDepth,
		MaxDocuments: config.DefaultMaxDocuments,
		Extensions:   config.DefaultMarkdownExtensions,
		EnableEXIF:   true,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	discoverOpts := []DiscoverStepOption{
		WithDiscoverMaxDepth(cfg.MaxDepth),
		WithDiscoverMaxDocuments(cfg.MaxDocuments),
		WithDiscoverExtensions(cfg.Extensions),
	}
	if len(cfg.IgnorePatterns) > 0 {
		discoverOpts = append(discoverOpts, WithDiscoverIgnorePatterns(cfg.IgnorePatterns))
	}
	if len(cfg.FollowPatterns) > 0 {
		discoverOpts = append(discoverOpts, WithDiscoverFollowPatterns(cfg.FollowPatterns))
	}

	analyzeOpts := analyzer.AnalyzerOptions{
		EnableEXIF:          cfg.EnableEXIF,
		RequiredFrontMatter: cfg.RequiredFrontMatter,
		DisabledChecks:      cfg.DisabledChecks,
	}

	// Add steps in logical order
	p.AddSteps(
		NewDiscoverStep(discoverOpts...),
		NewParseStep(),
		NewAnalyzeStep(WithAnalyzeOptions(analyzeOpts)),
		NewSummarizeStep(),
	)

	return p
}
