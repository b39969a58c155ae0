package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/docscan/internal/model"
)

// FrontMatterAnalyzer enforces required front matter keys on every
// document. It is only registered when the configuration names at least
// one required key.
type FrontMatterAnalyzer struct {
	requiredKeys []string
}

// NewFrontMatterAnalyzer creates a front matter check requiring the
// given keys.
func NewFrontMatterAnalyzer(requiredKeys []string) *FrontMatterAnalyzer {
	return &FrontMatterAnalyzer{requiredKeys: requiredKeys}
}

// Name returns the check's name.
func (a *FrontMatterAnalyzer) Name() string {
	return "frontmatter"
}

// Category returns the check's category.
func (a *FrontMatterAnalyzer) Category() string {
	return CategoryStructure
}

// Analyze verifies every document defines the required front matter keys.
func (a *FrontMatterAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var findings []model.Finding

	for _, path := range sortedDocumentPaths(data.Documents) {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		doc := data.Documents[path]
		var missing []string
		for _, key := range a.requiredKeys {
			if _, ok := doc.FrontMatter[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) == 0 {
			continue
		}

		description := fmt.Sprintf("The front matter is missing the required keys: %s.", strings.Join(missing, ", "))
		if !doc.HasFrontMatter {
			description = fmt.Sprintf("The document has no front matter block; the keys %s are required.", strings.Join(missing, ", "))
		}
		findings = append(findings, newFinding(
			"missing_front_matter",
			"Required front matter keys missing",
			description,
			strings.Join(missing, ","),
			doc.Path,
			1,
		))
	}

	return findings, nil
}
