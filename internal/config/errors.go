package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoRoot is returned when no documentation root is specified and
	// the current directory cannot be determined.
	ErrNoRoot = errors.New("no documentation root specified")

	// ErrInvalidMaxDepth is returned when the maximum depth is negative.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidMaxDocuments is returned when the document budget is negative.
	// Use 0 to fall back to the default budget.
	ErrInvalidMaxDocuments = errors.New("invalid max documents: must be non-negative")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scans at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrWatchReportFormat is returned when watch mode is combined with a
	// structured output format. Watch mode continuously rewrites the
	// human-readable report and cannot stream JSON or Markdown documents.
	ErrWatchReportFormat = errors.New("--watch only supports the human-readable report format")

	// ErrUnknownSeverity is returned when --fail-on names a severity that
	// does not exist.
	ErrUnknownSeverity = errors.New("unknown severity: use info, low, medium, high, or critical")
)
