package analyzer

import (
	"context"
	"testing"

	"github.com/nao1215/docscan/internal/model"
)

func TestOrphanAnalyzerAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("linked documents are not orphans", func(t *testing.T) {
		t.Parallel()

		data := newTestData([]*model.Document{
			{
				Path: "README.md",
				Links: []model.Link{
					{Text: "guide", Destination: "guide/setup.md", Line: 3},
				},
			},
			{Path: "guide/setup.md"},
		})

		findings, err := NewOrphanAnalyzer().Analyze(context.Background(), data)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("findings = %+v, want none", findings)
		}
	})

	t.Run("unlinked document is an orphan", func(t *testing.T) {
		t.Parallel()

		data := newTestData([]*model.Document{
			{Path: "README.md"},
			{Path: "forgotten.md"},
		})

		findings, err := NewOrphanAnalyzer().Analyze(context.Background(), data)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if len(findings) != 1 || findings[0].Type != "orphan_document" {
			t.Fatalf("findings = %+v, want one orphan_document", findings)
		}
		if findings[0].Location != "forgotten.md" {
			t.Errorf("Location = %q, want forgotten.md", findings[0].Location)
		}
	})

	t.Run("entry pages are exempt", func(t *testing.T) {
		t.Parallel()

		data := newTestData([]*model.Document{
			{Path: "README.md"},
			{Path: "guide/index.md"},
		})

		findings, err := NewOrphanAnalyzer().Analyze(context.Background(), data)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("findings = %+v, want none", findings)
		}
	})

	t.Run("directory link reaches the index page", func(t *testing.T) {
		t.Parallel()

		data := newTestData([]*model.Document{
			{
				Path: "overview.md",
				Links: []model.Link{
					{Text: "guide", Destination: "guide", Line: 2},
				},
			},
			{Path: "guide/README.md"},
		})

		findings, err := NewOrphanAnalyzer().Analyze(context.Background(), data)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		for _, f := range findings {
			if f.Location == "guide/README.md" {
				t.Errorf("guide/README.md reported as orphan despite directory link")
			}
		}
	})

	t.Run("self link grants no reachability", func(t *testing.T) {
		t.Parallel()

		data := newTestData([]*model.Document{
			{Path: "README.md"},
			{
				Path: "lonely.md",
				Links: []model.Link{
					{Text: "me", Destination: "lonely.md", Line: 1},
				},
			},
		})

		findings, err := NewOrphanAnalyzer().Analyze(context.Background(), data)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if len(findings) != 1 || findings[0].Location != "lonely.md" {
			t.Fatalf("findings = %+v, want lonely.md as orphan", findings)
		}
	})

	t.Run("single document tree has no orphans", func(t *testing.T) {
		t.Parallel()

		data := newTestData([]*model.Document{
			{Path: "alone.md"},
		})

		findings, err := NewOrphanAnalyzer().Analyze(context.Background(), data)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if len(findings) != 0 {
			t.Errorf("findings = %+v, want none", findings)
		}
	})
}
