package mdparse

import (
	"regexp"
	"strings"

	"github.com/nao1215/docscan/internal/model"
)

// Patterns for the raw-line pass. Markdown's reference syntax and bare
// URLs are simpler to recognize against source lines than to
// reconstruct from the parsed AST.
var (
	// refDefPattern matches reference link definitions: [label]: destination
	refDefPattern = regexp.MustCompile(`^ {0,3}\[([^\]]+)\]:\s*(\S+)`)

	// refUsePattern matches reference-style link usages: [text][label]
	refUsePattern = regexp.MustCompile(`\[([^\]]*)\]\[([^\]]*)\]`)

	// urlPattern matches http and https URLs in plain text.
	urlPattern = regexp.MustCompile(`https?://[^\s<>()\[\]"']+`)

	// separatorPattern matches a pipe table header separator row.
	separatorPattern = regexp.MustCompile(`^\s*\|?\s*:?-{2,}:?\s*(\|\s*:?-{2,}:?\s*)*\|?\s*$`)

	// inlineCodePattern matches inline code spans for removal before
	// URL scanning. Backtick runs longer than one are rare in prose
	// and handled well enough by the single-backtick form.
	inlineCodePattern = regexp.MustCompile("`[^`]*`")
)

// lineScanResult holds everything the raw-line pass extracts.
type lineScanResult struct {
	tables   []model.Table
	refDefs  []model.RefDef
	refUses  []refUse
	bareURLs []model.BareURL
}

// refUse is a reference-style link usage found in the source.
type refUse struct {
	text  string
	label string
	line  int
}

// scanLines performs the fence-aware raw-line pass over the document body.
// Fenced code blocks are skipped entirely; inline code spans are blanked
// before URL matching.
func scanLines(src []byte) lineScanResult {
	var result lineScanResult

	lines := strings.Split(string(src), "\n")
	inFence := false
	fenceMarker := ""

	// Pipe table accumulation state.
	var tableStart int
	var tableCells []int

	flushTable := func() {
		if len(tableCells) >= 2 {
			table := model.Table{
				Line:        tableStart,
				HeaderCells: tableCells[0],
			}
			rest := tableCells[1:]
			if len(lines) > tableStart && separatorPattern.MatchString(lines[tableStart]) {
				// Separator directly after the header row.
				table.HasSeparator = true
				rest = tableCells[2:]
			}
			for _, c := range rest {
				table.RowCells = append(table.RowCells, c)
			}
			result.tables = append(result.tables, table)
		}
		tableCells = nil
	}

	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		// Fence tracking: ``` or ~~~ open and close blocks.
		if marker := fenceOf(trimmed); marker != "" {
			if inFence && strings.HasPrefix(marker, fenceMarker) {
				inFence = false
				fenceMarker = ""
			} else if !inFence {
				inFence = true
				fenceMarker = marker
			}
			flushTable()
			continue
		}
		if inFence {
			continue
		}

		// Pipe table rows.
		if isTableRow(trimmed) {
			if tableCells == nil {
				tableStart = lineNo
			}
			if separatorPattern.MatchString(line) && len(tableCells) > 0 {
				// A separator's own cell count is meaningless; carry the
				// header's count so it never reads as ragged.
				tableCells = append(tableCells, tableCells[0])
			} else {
				tableCells = append(tableCells, countCells(trimmed))
			}
			continue
		}
		flushTable()

		// Reference definitions.
		if m := refDefPattern.FindStringSubmatch(line); m != nil {
			label := strings.ToLower(strings.TrimSpace(m[1]))
			def := model.RefDef{
				Label:       label,
				Destination: m[2],
				Line:        lineNo,
			}
			for _, existing := range result.refDefs {
				if existing.Label == label {
					def.Duplicate = true
					break
				}
			}
			result.refDefs = append(result.refDefs, def)
			continue
		}

		// Reference usages.
		for _, m := range refUsePattern.FindAllStringSubmatch(line, -1) {
			label := strings.ToLower(strings.TrimSpace(m[2]))
			if label == "" {
				// Collapsed reference [text][]: the text is the label.
				label = strings.ToLower(strings.TrimSpace(m[1]))
			}
			result.refUses = append(result.refUses, refUse{
				text:  m[1],
				label: label,
				line:  lineNo,
			})
		}

		// Bare URLs, with inline code blanked out first.
		scannable := inlineCodePattern.ReplaceAllStringFunc(line, func(s string) string {
			return strings.Repeat(" ", len(s))
		})
		for _, loc := range urlPattern.FindAllStringIndex(scannable, -1) {
			if isMarkedUpURL(scannable, loc[0]) {
				continue
			}
			result.bareURLs = append(result.bareURLs, model.BareURL{
				URL:  strings.TrimRight(scannable[loc[0]:loc[1]], ".,;:"),
				Line: lineNo,
			})
		}
	}
	flushTable()

	return result
}

// fenceOf returns the fence marker when the line opens or closes a fenced
// code block, or empty string otherwise.
func fenceOf(trimmed string) string {
	if strings.HasPrefix(trimmed, "```") {
		return "```"
	}
	if strings.HasPrefix(trimmed, "~~~") {
		return "~~~"
	}
	return ""
}

// isTableRow reports whether the line looks like a pipe table row.
// GitHub requires a leading pipe or at least one interior pipe; we
// additionally require two pipe characters to avoid matching prose
// that merely contains one.
func isTableRow(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "|") {
		return true
	}
	return strings.Count(trimmed, "|") >= 2
}

// countCells counts the cells in a pipe table row, honoring escaped pipes.
func countCells(row string) int {
	row = strings.ReplaceAll(row, `\|`, " ")
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	return strings.Count(row, "|") + 1
}

// isMarkedUpURL reports whether the URL starting at offset is already part
// of markdown link syntax: a destination after "(", an autolink after "<",
// or an attribute value after a quote.
func isMarkedUpURL(line string, offset int) bool {
	if offset == 0 {
		return false
	}
	switch line[offset-1] {
	case '(', '<', '"', '\'', '=':
		return true
	}
	// Reference definition destinations start after ": ".
	if refDefPattern.MatchString(line) {
		return true
	}
	return false
}
