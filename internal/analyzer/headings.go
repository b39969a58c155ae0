package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/docscan/internal/model"
)

// HeadingAnalyzer verifies the heading hierarchy of every document:
// exactly one title, no skipped levels, no empty or duplicated headings.
type HeadingAnalyzer struct{}

// NewHeadingAnalyzer creates a new heading structure check.
func NewHeadingAnalyzer() *HeadingAnalyzer {
	return &HeadingAnalyzer{}
}

// Name returns the check's name.
func (a *HeadingAnalyzer) Name() string {
	return "headings"
}

// Category returns the check's category.
func (a *HeadingAnalyzer) Category() string {
	return CategoryStructure
}

// Analyze walks the heading list of every document.
func (a *HeadingAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var findings []model.Finding

	for _, path := range sortedDocumentPaths(data.Documents) {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		findings = append(findings, a.analyzeDocument(data.Documents[path])...)
	}

	return findings, nil
}

// analyzeDocument checks a single document's heading hierarchy.
func (a *HeadingAnalyzer) analyzeDocument(doc *model.Document) []model.Finding {
	var findings []model.Finding

	titleLines := make([]int, 0, 1)
	seen := make(map[string]int) // normalized heading text -> first line
	prevLevel := 0

	for _, h := range doc.Headings {
		if h.Level == 1 {
			titleLines = append(titleLines, h.Line)
		}

		if strings.TrimSpace(h.Text) == "" {
			findings = append(findings, newFinding(
				"empty_heading",
				"Heading has no text",
				fmt.Sprintf("The level-%d heading on line %d carries markup but no text.", h.Level, h.Line),
				fmt.Sprintf("level %d", h.Level),
				doc.Path,
				h.Line,
			))
		}

		// A document may open at any level, but once inside, each step
		// down must be by exactly one level.
		if prevLevel > 0 && h.Level > prevLevel+1 {
			findings = append(findings, newFinding(
				"heading_skip",
				"Heading level skipped",
				fmt.Sprintf("Heading %q jumps from level %d to level %d, breaking generated outlines.", h.Text, prevLevel, h.Level),
				h.Text,
				doc.Path,
				h.Line,
			))
		}
		prevLevel = h.Level

		normalized := strings.ToLower(strings.TrimSpace(h.Text))
		if normalized != "" {
			if firstLine, ok := seen[normalized]; ok {
				findings = append(findings, newFinding(
					"duplicate_heading",
					"Heading text repeated",
					fmt.Sprintf("The heading %q already appears on line %d. Anchors to it become ambiguous.", h.Text, firstLine),
					h.Text,
					doc.Path,
					h.Line,
				))
			} else {
				seen[normalized] = h.Line
			}
		}
	}

	switch {
	case len(titleLines) == 0:
		findings = append(findings, newFinding(
			"missing_title",
			"Document has no title heading",
			"The document defines no level-1 heading, so indexes and link previews fall back to the file name.",
			doc.Path,
			doc.Path,
			1,
		))
	case len(titleLines) > 1:
		for _, line := range titleLines[1:] {
			findings = append(findings, newFinding(
				"multiple_titles",
				"Document has more than one title heading",
				fmt.Sprintf("A second level-1 heading appears on line %d. The first one is on line %d.", line, titleLines[0]),
				doc.Path,
				doc.Path,
				line,
			))
		}
	}

	return findings
}
