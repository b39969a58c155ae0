package analyzer

import (
	"context"

	"github.com/nao1215/docscan/internal/model"
)

// Analyzer category constants.
const (
	// CategoryStructure is used by checks on document-internal structure.
	CategoryStructure = "structure"
	// CategoryReference is used by checks on cross-document references.
	CategoryReference = "reference"
	// CategoryHygiene is used by content hygiene checks.
	CategoryHygiene = "hygiene"
)

// FileReader reads a root-relative file. Injected into analyzers that
// need raw bytes (EXIF) so they stay confined to the scanned tree.
type FileReader func(rel string) ([]byte, error)

// Analyzer coordinates documentation checks across multiple analyzers.
// It aggregates findings from different check types into a unified set.
//
// Design decision: We use a coordinator pattern rather than running checks
// independently because:
//  1. Some checks share resolution state (link targets, inbound edges)
//  2. Unified severity assessment across all findings
//  3. Deduplication of similar findings
//  4. Consistent context and cancellation handling
type Analyzer struct {
	// analyzers is the list of registered checks to run.
	analyzers []CheckAnalyzer

	// options configures analyzer behavior.
	options AnalyzerOptions
}

// AnalyzerOptions configures the analyzer behavior.
type AnalyzerOptions struct {
	// EnableEXIF enables EXIF metadata extraction from referenced images.
	// This can be slow for trees with many large figures.
	EnableEXIF bool

	// RequiredFrontMatter lists front matter keys every document must define.
	RequiredFrontMatter []string

	// DisabledChecks lists check names to skip.
	DisabledChecks []string
}

// DefaultOptions returns sensible default analyzer options.
func DefaultOptions() AnalyzerOptions {
	return AnalyzerOptions{
		EnableEXIF: true,
	}
}

// CheckAnalyzer defines the interface for individual checks.
// Each check focuses on a specific class of documentation defect.
//
// Design decision: We use an interface rather than concrete types because:
//  1. Allows for easy extension with new checks
//  2. Enables testing with mock checks
//  3. Supports different implementations for the same check type
type CheckAnalyzer interface {
	// Name returns the check's name for logging, reporting, and the
	// disabledChecks configuration.
	Name() string

	// Category returns the check's category (e.g., "structure", "reference").
	Category() string

	// Analyze runs the check on the provided data.
	// It returns findings discovered during analysis.
	Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error)
}

// AnalysisData contains all data available for analysis.
// This structure aggregates discovery and parsing results.
//
// Design decision: We pass all data in a single struct rather than
// multiple parameters because:
//  1. Not all checks need all data types
//  2. Adding new data types doesn't change check signatures
//  3. Easier to mock in tests
type AnalysisData struct {
	// Root is the absolute documentation root being analyzed.
	Root string

	// Documents contains all parsed documents keyed by relative path.
	Documents map[string]*model.Document

	// Assets is the set of every regular file under the root.
	Assets map[string]struct{}

	// CaseInsensitiveFS is true when the scanned filesystem ignores
	// letter case in file names.
	CaseInsensitiveFS bool

	// Report is the current scan report (for adding findings).
	Report *model.DocScanReport
}

// NewAnalyzer creates a new Analyzer with all built-in checks registered.
func NewAnalyzer(opts ...func(*AnalyzerOptions)) *Analyzer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	a := &Analyzer{
		options:   options,
		analyzers: make([]CheckAnalyzer, 0),
	}

	// Reference checks
	a.register(NewLinkAnalyzer())
	a.register(NewOrphanAnalyzer())

	// Structure checks
	a.register(NewHeadingAnalyzer())
	a.register(NewTableAnalyzer())
	if len(options.RequiredFrontMatter) > 0 {
		a.register(NewFrontMatterAnalyzer(options.RequiredFrontMatter))
	}

	// Hygiene checks
	a.register(NewURLAnalyzer())
	a.register(NewAssetAnalyzer(options.EnableEXIF))

	return a
}

// register adds a check unless it is disabled by configuration.
func (a *Analyzer) register(analyzer CheckAnalyzer) {
	for _, disabled := range a.options.DisabledChecks {
		if analyzer.Name() == disabled {
			return
		}
	}
	a.analyzers = append(a.analyzers, analyzer)
}

// FileReaderSetter is implemented by checks that need raw file access.
type FileReaderSetter interface {
	SetFileReader(reader FileReader)
}

// SetFileReader injects a file reader into checks that require it (EXIF).
func (a *Analyzer) SetFileReader(reader FileReader) {
	for _, analyzer := range a.analyzers {
		if setter, ok := analyzer.(FileReaderSetter); ok {
			setter.SetFileReader(reader)
		}
	}
}

// Names returns the names of all registered checks in execution order.
func (a *Analyzer) Names() []string {
	names := make([]string, len(a.analyzers))
	for i, analyzer := range a.analyzers {
		names[i] = analyzer.Name()
	}
	return names
}

// Analyze runs all registered checks and aggregates findings.
func (a *Analyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var allFindings []model.Finding

	for _, analyzer := range a.analyzers {
		select {
		case <-ctx.Done():
			return allFindings, ctx.Err()
		default:
		}

		findings, err := analyzer.Analyze(ctx, data)
		if err != nil {
			// Continue with other checks; we want to collect as many
			// findings as possible even when one check fails.
			continue
		}

		allFindings = append(allFindings, findings...)
	}

	return deduplicateFindings(allFindings), nil
}

// deduplicateFindings removes duplicate findings based on type, value,
// location, and line.
func deduplicateFindings(findings []model.Finding) []model.Finding {
	type key struct {
		typ      string
		value    string
		location string
		line     int
	}
	seen := make(map[key]bool, len(findings))
	result := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		k := key{f.Type, f.Value, f.Location, f.Line}
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, f)
	}
	return result
}
