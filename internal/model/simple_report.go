package model

import "time"

// SimpleReport is a summarized, presentation-ready report.
// It extracts the severity-rated findings from the full scan report.
//
// Design decision: We create a separate simplified report rather than
// just printing parts of DocScanReport because:
// 1. It provides a consistent, curated view of the most important findings
// 2. It can be serialized to JSON for tools that want structured but simple output
// 3. It separates presentation concerns from data collection
type SimpleReport struct {
	// Root is the scanned documentation root.
	Root string `json:"root"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// === Severity Summary ===

	// CriticalCount is the number of critical findings.
	CriticalCount int `json:"critical_count"`

	// HighCount is the number of high severity findings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity findings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity findings.
	LowCount int `json:"low_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`

	// === Findings ===

	// Findings contains all categorized findings.
	Findings []Finding `json:"findings,omitempty"`

	// === Tree Statistics ===

	// DocumentsScanned is the number of markdown documents analyzed.
	DocumentsScanned int `json:"documents_scanned"`

	// AssetsIndexed is the number of non-markdown files indexed.
	AssetsIndexed int `json:"assets_indexed"`

	// TimedOut indicates if the scan was terminated early.
	TimedOut bool `json:"timed_out"`

	// Error contains any error message if the scan failed.
	Error string `json:"error,omitempty"`
}

// Finding represents a single finding in the simple report.
type Finding struct {
	// Type is the finding type identifier.
	// This maps to findingInfoMapping in severity.go.
	Type string `json:"type"`

	// Severity is the impact level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Description provides more detail about the finding.
	Description string `json:"description,omitempty"`

	// Impact explains why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Value is the specific value found (link destination, heading text, etc.).
	Value string `json:"value,omitempty"`

	// Location is the relative path of the document containing the finding.
	Location string `json:"location,omitempty"`

	// Line is the 1-based source line, 0 when not line-specific.
	Line int `json:"line,omitempty"`
}

// NewSimpleReport creates a new SimpleReport from a DocScanReport.
// When the report already accumulated findings via AddFinding, the
// existing simple report is completed and returned rather than rebuilt.
func NewSimpleReport(report *DocScanReport) *SimpleReport {
	simple := report.SimpleReport
	if simple == nil {
		simple = &SimpleReport{
			Root:        report.Root,
			DateScanned: report.DateScanned,
			Findings:    make([]Finding, 0),
		}
	}

	simple.DocumentsScanned = report.DocumentCount
	simple.AssetsIndexed = report.AssetCount
	simple.TimedOut = report.TimedOut

	if report.Error != nil {
		simple.Error = report.Error.Error()
	}

	return simple
}

// FindingsBySeverity returns the findings at the given severity,
// preserving report order.
func (s *SimpleReport) FindingsBySeverity(sev Severity) []Finding {
	var out []Finding
	for _, f := range s.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// TotalFindings returns the total number of findings.
func (s *SimpleReport) TotalFindings() int {
	return len(s.Findings)
}

// HasFindings reports whether the report contains any findings.
func (s *SimpleReport) HasFindings() bool {
	return len(s.Findings) > 0
}
