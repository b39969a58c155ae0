package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/docscan/internal/model"
)

// writeTree creates a documentation tree under a temp directory.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestDefaultPipelineScan(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"README.md": "# Docs\n\nSee [the guide](guide/setup.md) and [missing](missing.md).\n",
		"guide/setup.md": "# Setup\n\nBack to [readme](../README.md).\n",
	})

	p := DefaultPipeline(nil, WithPipelineEXIF(false))
	report := model.NewDocScanReport(root)
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if report.DocumentCount != 2 {
		t.Errorf("DocumentCount = %d, want 2", report.DocumentCount)
	}
	if report.AssetCount != 2 {
		t.Errorf("AssetCount = %d, want 2", report.AssetCount)
	}
	if len(report.PerformedSteps) != 4 {
		t.Errorf("PerformedSteps = %v, want 4 entries", report.PerformedSteps)
	}
	if report.SimpleReport == nil {
		t.Fatal("SimpleReport is nil")
	}
	if report.SimpleReport.DocumentsScanned != 2 {
		t.Errorf("DocumentsScanned = %d, want 2", report.SimpleReport.DocumentsScanned)
	}

	var brokenLinks int
	for _, f := range report.SimpleReport.Findings {
		if f.Type == "broken_link" {
			brokenLinks++
			if f.Value != "missing.md" {
				t.Errorf("broken_link Value = %q, want missing.md", f.Value)
			}
			if f.Location != "README.md" {
				t.Errorf("broken_link Location = %q, want README.md", f.Location)
			}
		}
	}
	if brokenLinks != 1 {
		t.Errorf("broken_link count = %d, want 1", brokenLinks)
	}
}

func TestDefaultPipelineMaxDocuments(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.md": "# A\n",
		"b.md": "# B\n",
		"c.md": "# C\n",
	})

	p := DefaultPipeline(nil, WithPipelineEXIF(false), WithPipelineMaxDocuments(1))
	report := model.NewDocScanReport(root)
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if report.DocumentCount != 1 {
		t.Errorf("DocumentCount = %d, want 1", report.DocumentCount)
	}
	// The excluded documents stay indexed as link targets.
	if report.AssetCount != 3 {
		t.Errorf("AssetCount = %d, want 3", report.AssetCount)
	}
}

func TestDefaultPipelineFollowPatterns(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"keep.md": "# Keep\n",
		"skip.md": "# Skip\n",
	})

	p := DefaultPipeline(nil,
		WithPipelineEXIF(false),
		WithPipelineFollowPatterns([]string{"keep.md"}),
	)
	report := model.NewDocScanReport(root)
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if report.DocumentCount != 1 {
		t.Fatalf("DocumentCount = %d, want 1", report.DocumentCount)
	}
	if report.GetDocument("keep.md") == nil {
		t.Error("keep.md was not parsed")
	}
	if report.GetDocument("skip.md") != nil {
		t.Error("skip.md was parsed despite the follow patterns")
	}
}

func TestParseStepUnreadableDocument(t *testing.T) {
	t.Parallel()

	report := model.NewDocScanReport(t.TempDir())
	// Discovery selected a file that no longer exists on disk.
	report.DocumentPaths = []string{"ghost.md"}

	step := NewParseStep()
	if err := step.Do(context.Background(), report); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	doc := report.GetDocument("ghost.md")
	if doc == nil {
		t.Fatal("unreadable document not recorded")
	}
	if doc.ParseError == "" {
		t.Error("ParseError is empty, want read failure recorded")
	}
}

func TestAnalyzeStepFileReaderStaysInRoot(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"README.md": "# Docs\n",
	})

	report := model.NewDocScanReport(root)
	report.AddDocument(&model.Document{Path: "README.md"})

	step := NewAnalyzeStep()
	if err := step.Do(context.Background(), report); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
}

func TestDiscoverStepMissingRoot(t *testing.T) {
	t.Parallel()

	report := model.NewDocScanReport(filepath.Join(t.TempDir(), "does-not-exist"))
	step := NewDiscoverStep()
	if err := step.Do(context.Background(), report); err == nil {
		t.Error("Do() with missing root returned nil error")
	}
}

func TestSummarizeStepSortsFindings(t *testing.T) {
	t.Parallel()

	report := model.NewDocScanReport("/docs")
	report.AddFinding(model.Finding{Type: "broken_link", Value: "z.md", Location: "b.md", Line: 4})
	report.AddFinding(model.Finding{Type: "broken_link", Value: "a.md", Location: "a.md", Line: 9})

	step := NewSummarizeStep()
	if err := step.Do(context.Background(), report); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	findings := report.SimpleReport.Findings
	if len(findings) != 2 {
		t.Fatalf("findings = %d, want 2", len(findings))
	}
	if findings[0].Location != "a.md" {
		t.Errorf("first finding Location = %q, want a.md", findings[0].Location)
	}
}
