package mdparse

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/nao1215/docscan/internal/model"
)

// Parser extracts structure from markdown documents.
//
// Design decision: We use goldmark for parsing rather than regex because:
//  1. It implements CommonMark plus GFM precisely, including the edge
//     cases real documentation hits (links in list items, setext
//     headings, indented continuation lines)
//  2. It correctly skips code blocks, where regex scanning misfires
//  3. It is the parser underneath most Go markdown tooling
type Parser struct {
	md goldmark.Markdown
}

// New creates a Parser with GFM extensions enabled.
func New() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Parse extracts a model.Document from raw markdown content.
// The path is stored on the document as given; callers pass
// root-relative slash paths.
//
// Parse never fails: YAML front matter errors are recorded on the
// document's ParseError field and the body is still analyzed.
func (p *Parser) Parse(path string, src []byte) *model.Document {
	doc := &model.Document{
		Path:  path,
		Hash:  model.HashContent(src),
		Lines: countLines(src),
	}

	fm, hasFM, body, fmErr := splitFrontMatter(src)
	doc.HasFrontMatter = hasFM
	doc.FrontMatter = fm
	if fmErr != nil {
		doc.ParseError = "front matter: " + fmErr.Error()
	}

	lineIndex := buildLineIndex(body)
	slugs := newSlugger()

	root := p.md.Parser().Parse(text.NewReader(body))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading := model.Heading{
				Text:  nodeText(node, body),
				Level: node.Level,
				Line:  lineIndex.lineOf(blockOffset(node)),
			}
			heading.Slug = slugs.Slug(heading.Text)
			doc.Headings = append(doc.Headings, heading)
			if node.Level == 1 && doc.Title == "" {
				doc.Title = heading.Text
			}

		case *ast.Link:
			doc.Links = append(doc.Links, model.Link{
				Text:        nodeText(node, body),
				Destination: string(node.Destination),
				Line:        lineIndex.lineOf(inlineOffset(node)),
			})

		case *ast.AutoLink:
			// Covers both explicit <http://...> autolinks and URLs the
			// GFM linkifier promotes from plain text. Either way the
			// destination must pass the same hygiene checks as a
			// bracketed link. Email autolinks carry no scheme and are
			// not checkable.
			if node.AutoLinkType == ast.AutoLinkURL {
				doc.Links = append(doc.Links, model.Link{
					Text:        string(node.Label(body)),
					Destination: string(node.URL(body)),
					Line:        lineIndex.lineOf(inlineOffset(node)),
				})
			}

		case *ast.Image:
			doc.Images = append(doc.Images, model.Image{
				Alt:         nodeText(node, body),
				Destination: string(node.Destination),
				Line:        lineIndex.lineOf(inlineOffset(node)),
			})

		case *ast.HTMLBlock:
			raw := segmentsText(node.Lines(), body)
			line := lineIndex.lineOf(blockOffset(node))
			p.extractHTML(doc, raw, line)

		case *ast.RawHTML:
			var sb strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				sb.Write(seg.Value(body))
			}
			line := 1
			if node.Segments.Len() > 0 {
				line = lineIndex.lineOf(node.Segments.At(0).Start)
			}
			p.extractHTML(doc, sb.String(), line)
		}

		return ast.WalkContinue, nil
	})

	// Raw-line pass: tables, reference definitions and usages, bare URLs.
	scan := scanLines(body)
	doc.Tables = scan.tables
	doc.RefDefs = scan.refDefs
	doc.BareURLs = scan.bareURLs

	// Goldmark resolves reference links that have definitions into
	// ordinary Link nodes, so only unresolved usages are added here.
	defined := make(map[string]struct{}, len(scan.refDefs))
	for _, def := range scan.refDefs {
		defined[def.Label] = struct{}{}
	}
	for _, use := range scan.refUses {
		if _, ok := defined[use.label]; ok {
			continue
		}
		doc.Links = append(doc.Links, model.Link{
			Text:        use.text,
			Line:        use.line,
			IsReference: true,
			Label:       use.label,
			Unresolved:  true,
		})
	}

	doc.WordCount = countWords(body)

	// Deterministic element order regardless of walk order.
	sort.SliceStable(doc.Links, func(i, j int) bool { return doc.Links[i].Line < doc.Links[j].Line })

	return doc
}

// extractHTML pulls <a href> and <img src> out of an inline HTML fragment
// and records them as links and images on the document.
func (p *Parser) extractHTML(doc *model.Document, fragment string, line int) {
	links, images := extractHTMLRefs(fragment)
	for _, l := range links {
		l.Line = line
		doc.Links = append(doc.Links, l)
	}
	for _, img := range images {
		img.Line = line
		doc.Images = append(doc.Images, img)
	}
}

// nodeText renders the plain text of a node's descendants.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	collectText(n, src, &sb)
	return sb.String()
}

func collectText(n ast.Node, src []byte, sb *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
		case *ast.String:
			sb.Write(t.Value)
		default:
			collectText(c, src, sb)
		}
	}
}

// blockOffset returns the byte offset of a block node's first line,
// or 0 when the node has no lines.
func blockOffset(n ast.Node) int {
	if n.Lines().Len() > 0 {
		return n.Lines().At(0).Start
	}
	return 0
}

// inlineOffset returns the byte offset of an inline node: the first text
// segment among its descendants, falling back to the enclosing block.
func inlineOffset(n ast.Node) int {
	if seg, ok := firstTextSegment(n); ok {
		return seg.Start
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Lines().Len() > 0 {
			return p.Lines().At(0).Start
		}
	}
	return 0
}

func firstTextSegment(n ast.Node) (text.Segment, bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok && t.Segment.Len() > 0 {
			return t.Segment, true
		}
		if seg, ok := firstTextSegment(c); ok {
			return seg, true
		}
	}
	return text.Segment{}, false
}

// segmentsText concatenates the source text of a segment list.
func segmentsText(segs *text.Segments, src []byte) string {
	var sb strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

// buildLineIndex records the byte offset of every line start.
func buildLineIndex(src []byte) lineIndex {
	index := lineIndex{0}
	for i, b := range src {
		if b == '\n' {
			index = append(index, i+1)
		}
	}
	return index
}

// lineOf returns the 1-based line containing the given byte offset.
func (li lineIndex) lineOf(offset int) int {
	lo, hi := 0, len(li)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

// countLines counts source lines, treating a trailing newline as
// terminating the last line rather than starting a new one.
func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := 0
	for _, b := range src {
		if b == '\n' {
			n++
		}
	}
	if src[len(src)-1] != '\n' {
		n++
	}
	return n
}

// countWords approximates the prose word count, skipping fenced code.
func countWords(src []byte) int {
	count := 0
	inFence := false
	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if fenceOf(trimmed) != "" {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		count += len(strings.Fields(trimmed))
	}
	return count
}
