package analyzer

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/nao1215/docscan/internal/model"
)

// OrphanAnalyzer finds documents no other document links to. Orphans are
// invisible to readers who navigate by following links from the entry page.
type OrphanAnalyzer struct{}

// NewOrphanAnalyzer creates a new orphan document check.
func NewOrphanAnalyzer() *OrphanAnalyzer {
	return &OrphanAnalyzer{}
}

// Name returns the check's name.
func (a *OrphanAnalyzer) Name() string {
	return "orphans"
}

// Category returns the check's category.
func (a *OrphanAnalyzer) Category() string {
	return CategoryReference
}

// Analyze builds the inbound link graph and reports unreferenced documents.
func (a *OrphanAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	// A single document cannot be an orphan; there is nothing to link
	// from.
	if len(data.Documents) < 2 {
		return nil, nil
	}

	linked := make(map[string]struct{}, len(data.Documents))
	for docPath, doc := range data.Documents {
		for _, link := range doc.Links {
			rd := resolveDest(docPath, link.Destination)
			if rd.kind != destRelative || rd.escapesRoot {
				continue
			}
			if rd.target == docPath {
				continue // self links grant no reachability
			}
			linked[rd.target] = struct{}{}
			// A link to a directory reaches its index page.
			for _, index := range []string{"README.md", "readme.md", "index.md", "INDEX.md"} {
				linked[rd.target+"/"+index] = struct{}{}
			}
		}
	}

	var findings []model.Finding
	for _, docPath := range sortedDocumentPaths(data.Documents) {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		if _, ok := linked[docPath]; ok {
			continue
		}
		if isEntryPage(docPath) {
			continue
		}
		findings = append(findings, newFinding(
			"orphan_document",
			"Document is not linked from anywhere",
			fmt.Sprintf("No other document links to %q, so readers navigating by links never reach it.", docPath),
			docPath,
			docPath,
			1,
		))
	}

	return findings, nil
}

// isEntryPage reports whether the document is a conventional entry point
// that readers open directly rather than reach through links.
func isEntryPage(docPath string) bool {
	base := strings.ToLower(path.Base(docPath))
	return base == "readme.md" || base == "index.md"
}
