package analyzer

import (
	"context"
	"fmt"

	"github.com/nao1215/docscan/internal/model"
)

// TableAnalyzer verifies that pipe tables are rectangular and carry a
// separator row, so they render as tables rather than literal text.
type TableAnalyzer struct{}

// NewTableAnalyzer creates a new table shape check.
func NewTableAnalyzer() *TableAnalyzer {
	return &TableAnalyzer{}
}

// Name returns the check's name.
func (a *TableAnalyzer) Name() string {
	return "tables"
}

// Category returns the check's category.
func (a *TableAnalyzer) Category() string {
	return CategoryStructure
}

// Analyze inspects every pipe table in every document.
func (a *TableAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var findings []model.Finding

	for _, path := range sortedDocumentPaths(data.Documents) {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		doc := data.Documents[path]
		for _, table := range doc.Tables {
			findings = append(findings, a.analyzeTable(doc, table)...)
		}
	}

	return findings, nil
}

// analyzeTable checks a single table for a separator row and ragged rows.
func (a *TableAnalyzer) analyzeTable(doc *model.Document, table model.Table) []model.Finding {
	var findings []model.Finding

	if !table.HasSeparator {
		findings = append(findings, newFinding(
			"table_missing_header",
			"Table has no header separator",
			fmt.Sprintf("The table starting on line %d has no |---| separator row and renders as plain text.", table.Line),
			fmt.Sprintf("table at line %d", table.Line),
			doc.Path,
			table.Line,
		))
		// Without a separator there is no authoritative column count,
		// so raggedness cannot be judged.
		return findings
	}

	for i, cells := range table.RowCells {
		if cells == table.HeaderCells {
			continue
		}
		// Separator row follows the header, so body row i sits two
		// lines below the header row.
		line := table.Line + 2 + i
		findings = append(findings, newFinding(
			"table_ragged",
			"Table row has a different cell count than the header",
			fmt.Sprintf("Row %d has %d cells but the header has %d.", i+1, cells, table.HeaderCells),
			fmt.Sprintf("table at line %d", table.Line),
			doc.Path,
			line,
		))
	}

	return findings
}
