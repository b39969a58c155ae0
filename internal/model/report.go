package model

import (
	"sort"
	"time"
)

// DocScanReport is the main scan result structure.
// It contains all information collected during a scan of a documentation tree.
//
// Design decision: We use a single large struct rather than many small ones
// to simplify serialization and database storage. The SimpleReport sub-struct
// groups the severity-rated findings for presentation.
type DocScanReport struct {
	// Root is the absolute path of the scanned documentation root.
	Root string `json:"root"`

	// DateScanned is the timestamp when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// DocumentCount is the number of markdown documents discovered.
	DocumentCount int `json:"document_count"`

	// AssetCount is the number of non-markdown files indexed as
	// candidate link targets.
	AssetCount int `json:"asset_count"`

	// Documents contains every parsed document, keyed by relative path.
	Documents map[string]*Document `json:"-"` // Excluded from JSON due to size

	// Assets is the set of every regular file under the root,
	// as relative slash-separated paths. Used for link resolution.
	Assets map[string]struct{} `json:"-"` // Excluded from JSON due to size

	// DocumentPaths is the sorted list of documents discovery selected for
	// parsing, as relative slash paths. The document limit and follow
	// patterns are applied here, not in later steps.
	DocumentPaths []string `json:"-"` // Excluded from JSON due to size

	// CaseInsensitiveFS is true when the scanned filesystem does not
	// distinguish letter case in file names.
	CaseInsensitiveFS bool `json:"case_insensitive_fs"`

	// SimpleReport contains the summarized findings for output.
	SimpleReport *SimpleReport `json:"simple_report,omitempty"`

	// TimedOut is true if the scan was terminated due to cancellation.
	TimedOut bool `json:"timed_out"`

	// PerformedSteps lists the pipeline steps that were actually executed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains any error that occurred during scanning.
	// Only set if the scan failed or partially failed.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewDocScanReport creates an empty report for the given root.
func NewDocScanReport(root string) *DocScanReport {
	return &DocScanReport{
		Root:        root,
		DateScanned: time.Now().UTC(),
		Documents:   make(map[string]*Document),
		Assets:      make(map[string]struct{}),
	}
}

// AddDocument records a parsed document on the report.
func (r *DocScanReport) AddDocument(doc *Document) {
	r.Documents[doc.Path] = doc
	r.DocumentCount = len(r.Documents)
}

// GetDocument retrieves a parsed document by relative path.
// Returns nil if the document was not discovered.
func (r *DocScanReport) GetDocument(path string) *Document {
	return r.Documents[path]
}

// AddFinding adds a finding to the simple report.
// If the simple report doesn't exist, it initializes one.
// Severity metadata is filled in from the finding type mapping when the
// caller left it zero-valued.
func (r *DocScanReport) AddFinding(finding Finding) {
	if r.SimpleReport == nil {
		r.SimpleReport = &SimpleReport{
			Root:        r.Root,
			DateScanned: r.DateScanned,
			Findings:    make([]Finding, 0),
		}
	}

	if r.SimpleReport.DocumentsScanned == 0 {
		r.SimpleReport.DocumentsScanned = r.DocumentCount
	}

	// Attach severity metadata from the central mapping
	info := GetFindingInfo(finding.Type)
	if finding.SeverityText == "" {
		finding.Severity = info.Severity
		finding.SeverityText = info.Severity.String()
	}
	if finding.Impact == "" {
		finding.Impact = info.Impact
	}
	if finding.Recommendation == "" {
		finding.Recommendation = info.Recommendation
	}

	// Avoid duplicates based on type, value and location
	for _, f := range r.SimpleReport.Findings {
		if f.Type == finding.Type && f.Value == finding.Value &&
			f.Location == finding.Location && f.Line == finding.Line {
			return
		}
	}

	r.SimpleReport.Findings = append(r.SimpleReport.Findings, finding)

	switch finding.Severity {
	case SeverityCritical:
		r.SimpleReport.CriticalCount++
	case SeverityHigh:
		r.SimpleReport.HighCount++
	case SeverityMedium:
		r.SimpleReport.MediumCount++
	case SeverityLow:
		r.SimpleReport.LowCount++
	case SeverityInfo:
		r.SimpleReport.InfoCount++
	}
}

// SortFindings orders findings deterministically: by location, then line,
// then type, then value. Scans of an unchanged tree therefore always
// produce identical reports.
func (r *DocScanReport) SortFindings() {
	if r.SimpleReport == nil {
		return
	}
	findings := r.SimpleReport.Findings
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Location != findings[j].Location {
			return findings[i].Location < findings[j].Location
		}
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		if findings[i].Type != findings[j].Type {
			return findings[i].Type < findings[j].Type
		}
		return findings[i].Value < findings[j].Value
	})
}

// MaxSeverity returns the highest severity present in the report's
// findings, and false when there are no findings at all.
func (r *DocScanReport) MaxSeverity() (Severity, bool) {
	if r.SimpleReport == nil || len(r.SimpleReport.Findings) == 0 {
		return SeverityInfo, false
	}
	max := SeverityInfo
	for _, f := range r.SimpleReport.Findings {
		if f.Severity > max {
			max = f.Severity
		}
	}
	return max, true
}
