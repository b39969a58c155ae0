package model

import "testing"

// TestDocScanReportAddFinding verifies finding accumulation, metadata
// attachment, and deduplication.
func TestDocScanReportAddFinding(t *testing.T) {
	t.Parallel()

	t.Run("initializes simple report on first finding", func(t *testing.T) {
		t.Parallel()

		report := NewDocScanReport("/docs")
		report.AddFinding(Finding{
			Type:     "broken_link",
			Title:    "Broken Link",
			Value:    "missing.md",
			Location: "index.md",
			Line:     12,
		})

		if report.SimpleReport == nil {
			t.Fatal("expected SimpleReport to be initialized")
		}
		if len(report.SimpleReport.Findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(report.SimpleReport.Findings))
		}
	})

	t.Run("attaches severity metadata from mapping", func(t *testing.T) {
		t.Parallel()

		report := NewDocScanReport("/docs")
		report.AddFinding(Finding{Type: "broken_link", Value: "a.md", Location: "b.md"})

		f := report.SimpleReport.Findings[0]
		if f.Severity != SeverityHigh {
			t.Errorf("expected SeverityHigh, got %v", f.Severity)
		}
		if f.SeverityText != "HIGH" {
			t.Errorf("expected severity text HIGH, got %q", f.SeverityText)
		}
		if f.Impact == "" {
			t.Error("expected impact to be filled from mapping")
		}
		if report.SimpleReport.HighCount != 1 {
			t.Errorf("expected HighCount 1, got %d", report.SimpleReport.HighCount)
		}
	})

	t.Run("deduplicates identical findings", func(t *testing.T) {
		t.Parallel()

		report := NewDocScanReport("/docs")
		finding := Finding{Type: "broken_link", Value: "a.md", Location: "b.md", Line: 3}
		report.AddFinding(finding)
		report.AddFinding(finding)

		if len(report.SimpleReport.Findings) != 1 {
			t.Errorf("expected 1 finding after duplicate add, got %d", len(report.SimpleReport.Findings))
		}
		if report.SimpleReport.HighCount != 1 {
			t.Errorf("expected HighCount 1 after duplicate add, got %d", report.SimpleReport.HighCount)
		}
	})

	t.Run("keeps findings on different lines", func(t *testing.T) {
		t.Parallel()

		report := NewDocScanReport("/docs")
		report.AddFinding(Finding{Type: "broken_link", Value: "a.md", Location: "b.md", Line: 3})
		report.AddFinding(Finding{Type: "broken_link", Value: "a.md", Location: "b.md", Line: 9})

		if len(report.SimpleReport.Findings) != 2 {
			t.Errorf("expected 2 findings, got %d", len(report.SimpleReport.Findings))
		}
	})
}

// TestDocScanReportSortFindings verifies deterministic finding order.
func TestDocScanReportSortFindings(t *testing.T) {
	t.Parallel()

	report := NewDocScanReport("/docs")
	report.AddFinding(Finding{Type: "orphan_document", Location: "z.md"})
	report.AddFinding(Finding{Type: "broken_link", Value: "x.md", Location: "a.md", Line: 20})
	report.AddFinding(Finding{Type: "broken_anchor", Value: "#x", Location: "a.md", Line: 4})

	report.SortFindings()

	findings := report.SimpleReport.Findings
	if findings[0].Location != "a.md" || findings[0].Line != 4 {
		t.Errorf("expected a.md:4 first, got %s:%d", findings[0].Location, findings[0].Line)
	}
	if findings[1].Location != "a.md" || findings[1].Line != 20 {
		t.Errorf("expected a.md:20 second, got %s:%d", findings[1].Location, findings[1].Line)
	}
	if findings[2].Location != "z.md" {
		t.Errorf("expected z.md last, got %s", findings[2].Location)
	}
}

// TestDocScanReportMaxSeverity verifies the highest-severity lookup used
// by the --fail-on exit status logic.
func TestDocScanReportMaxSeverity(t *testing.T) {
	t.Parallel()

	t.Run("no findings", func(t *testing.T) {
		t.Parallel()
		report := NewDocScanReport("/docs")
		if _, ok := report.MaxSeverity(); ok {
			t.Error("expected ok=false for empty report")
		}
	})

	t.Run("mixed severities", func(t *testing.T) {
		t.Parallel()
		report := NewDocScanReport("/docs")
		report.AddFinding(Finding{Type: "bare_url", Value: "http://a", Location: "a.md"})
		report.AddFinding(Finding{Type: "broken_link", Value: "x.md", Location: "a.md"})

		sev, ok := report.MaxSeverity()
		if !ok {
			t.Fatal("expected ok=true")
		}
		if sev != SeverityHigh {
			t.Errorf("expected SeverityHigh, got %v", sev)
		}
	})
}

// TestNewSimpleReport verifies summary construction from a full report.
func TestNewSimpleReport(t *testing.T) {
	t.Parallel()

	report := NewDocScanReport("/docs")
	report.AddDocument(&Document{Path: "index.md"})
	report.AddDocument(&Document{Path: "guide.md"})
	report.AssetCount = 3
	report.AddFinding(Finding{Type: "missing_title", Location: "guide.md"})

	simple := NewSimpleReport(report)

	if simple.DocumentsScanned != 2 {
		t.Errorf("expected 2 documents scanned, got %d", simple.DocumentsScanned)
	}
	if simple.AssetsIndexed != 3 {
		t.Errorf("expected 3 assets indexed, got %d", simple.AssetsIndexed)
	}
	if simple.TotalFindings() != 1 {
		t.Errorf("expected 1 finding, got %d", simple.TotalFindings())
	}
	if got := simple.FindingsBySeverity(SeverityMedium); len(got) != 1 {
		t.Errorf("expected 1 medium finding, got %d", len(got))
	}
}

// TestHashContent verifies content hashing is stable and hex-encoded.
func TestHashContent(t *testing.T) {
	t.Parallel()

	h1 := HashContent([]byte("# Title\n"))
	h2 := HashContent([]byte("# Title\n"))
	h3 := HashContent([]byte("# Other\n"))

	if h1 != h2 {
		t.Error("expected identical content to hash identically")
	}
	if h1 == h3 {
		t.Error("expected different content to hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}
