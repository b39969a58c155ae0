package analyzer

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/nao1215/docscan/internal/model"
)

// LinkAnalyzer verifies that every link and image reference in the tree
// resolves to something real: an existing file, a defined anchor, or a
// defined reference label.
//
// Design decision: link, image, and anchor resolution live in one check
// rather than three because they share the same destination classification
// and asset lookup. Splitting them would triple the resolution work.
type LinkAnalyzer struct{}

// NewLinkAnalyzer creates a new link resolution check.
func NewLinkAnalyzer() *LinkAnalyzer {
	return &LinkAnalyzer{}
}

// Name returns the check's name.
func (a *LinkAnalyzer) Name() string {
	return "links"
}

// Category returns the check's category.
func (a *LinkAnalyzer) Category() string {
	return CategoryReference
}

// Analyze resolves every link and image destination in every document.
func (a *LinkAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var findings []model.Finding

	for _, path := range sortedDocumentPaths(data.Documents) {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		doc := data.Documents[path]
		findings = append(findings, a.analyzeLinks(doc, data)...)
		findings = append(findings, a.analyzeImages(doc, data)...)
		findings = append(findings, a.analyzeRefDefs(doc)...)
	}

	return findings, nil
}

// analyzeLinks checks every hyperlink in a single document.
func (a *LinkAnalyzer) analyzeLinks(doc *model.Document, data *AnalysisData) []model.Finding {
	var findings []model.Finding

	for _, link := range doc.Links {
		if link.Unresolved {
			findings = append(findings, newFinding(
				"broken_reference",
				"Reference link has no definition",
				fmt.Sprintf("The reference label %q is used but never defined with a [%s]: line.", link.Label, link.Label),
				fmt.Sprintf("[%s][%s]", link.Text, link.Label),
				doc.Path,
				link.Line,
			))
			continue
		}

		rd := resolveDest(doc.Path, link.Destination)
		switch rd.kind {
		case destEmpty, destExternal:
			// External URLs are handled by the URL hygiene check.
		case destAbsolute:
			findings = append(findings, newFinding(
				"absolute_local_link",
				"Link uses an absolute local path",
				fmt.Sprintf("The link %q only resolves on a machine with that exact filesystem layout.", link.Destination),
				link.Destination,
				doc.Path,
				link.Line,
			))
		case destFragment:
			if !documentHasAnchor(doc, rd.fragment) {
				findings = append(findings, newFinding(
					"broken_anchor",
					"Anchor does not match any heading",
					fmt.Sprintf("The anchor #%s does not match any heading in this document.", rd.fragment),
					link.Destination,
					doc.Path,
					link.Line,
				))
			}
		case destRelative:
			findings = append(findings, a.analyzeRelativeLink(doc, link, rd, data)...)
		}
	}

	return findings
}

// analyzeRelativeLink resolves a single relative link against the asset index.
func (a *LinkAnalyzer) analyzeRelativeLink(doc *model.Document, link model.Link, rd resolvedDest, data *AnalysisData) []model.Finding {
	if rd.escapesRoot {
		return []model.Finding{newFinding(
			"broken_link",
			"Link escapes the documentation root",
			fmt.Sprintf("The link %q resolves outside the scanned tree and cannot be verified or published.", link.Destination),
			link.Destination,
			doc.Path,
			link.Line,
		)}
	}

	if rd.target == doc.Path && rd.fragment == "" {
		return []model.Finding{newFinding(
			"self_referential_link",
			"Link points at its own document",
			fmt.Sprintf("The link %q resolves to the document that contains it.", link.Destination),
			link.Destination,
			doc.Path,
			link.Line,
		)}
	}

	if !targetExists(data.Assets, rd.target) {
		if actual := findCaseMismatch(data.Assets, rd.target); actual != "" {
			return []model.Finding{newFinding(
				"case_mismatch_link",
				"Link target differs from the file name only by case",
				caseMismatchDetail("link", rd.target, actual, data.CaseInsensitiveFS),
				link.Destination,
				doc.Path,
				link.Line,
			)}
		}
		return []model.Finding{newFinding(
			"broken_link",
			"Link target does not exist",
			fmt.Sprintf("No file or directory named %q exists under the documentation root.", rd.target),
			link.Destination,
			doc.Path,
			link.Line,
		)}
	}

	// Anchor into another markdown document.
	if rd.fragment != "" {
		if target := data.Documents[rd.target]; target != nil && !documentHasAnchor(target, rd.fragment) {
			return []model.Finding{newFinding(
				"broken_anchor",
				"Anchor does not match any heading in the target",
				fmt.Sprintf("The anchor #%s does not match any heading in %q.", rd.fragment, rd.target),
				link.Destination,
				doc.Path,
				link.Line,
			)}
		}
	}

	return nil
}

// analyzeImages checks every image reference in a single document.
func (a *LinkAnalyzer) analyzeImages(doc *model.Document, data *AnalysisData) []model.Finding {
	var findings []model.Finding

	for _, img := range doc.Images {
		rd := resolveDest(doc.Path, img.Destination)
		switch rd.kind {
		case destEmpty, destExternal, destFragment:
			continue
		case destAbsolute:
			findings = append(findings, newFinding(
				"absolute_local_link",
				"Image uses an absolute local path",
				fmt.Sprintf("The image source %q only resolves on a machine with that exact filesystem layout.", img.Destination),
				img.Destination,
				doc.Path,
				img.Line,
			))
		case destRelative:
			if rd.escapesRoot || !targetExists(data.Assets, rd.target) {
				if actual := findCaseMismatch(data.Assets, rd.target); actual != "" {
					findings = append(findings, newFinding(
						"case_mismatch_link",
						"Image source differs from the file name only by case",
						caseMismatchDetail("image", rd.target, actual, data.CaseInsensitiveFS),
						img.Destination,
						doc.Path,
						img.Line,
					))
					continue
				}
				findings = append(findings, newFinding(
					"broken_image",
					"Image file does not exist",
					fmt.Sprintf("No file named %q exists under the documentation root.", rd.target),
					img.Destination,
					doc.Path,
					img.Line,
				))
			}
		}
	}

	return findings
}

// analyzeRefDefs reports duplicated reference link definitions.
func (a *LinkAnalyzer) analyzeRefDefs(doc *model.Document) []model.Finding {
	var findings []model.Finding

	for _, def := range doc.RefDefs {
		if !def.Duplicate {
			continue
		}
		findings = append(findings, newFinding(
			"duplicate_link_definition",
			"Reference label defined more than once",
			fmt.Sprintf("The label %q was already defined earlier in this document. Later definitions are ignored by renderers.", def.Label),
			def.Label,
			doc.Path,
			def.Line,
		))
	}

	return findings
}

// caseMismatchDetail describes a reference whose target differs from the
// file on disk only by letter case. On a case-insensitive filesystem the
// reference still renders locally, which is what makes the defect easy to
// miss until the tree is published from a case-sensitive host.
func caseMismatchDetail(kind, target, actual string, caseInsensitiveFS bool) string {
	if caseInsensitiveFS {
		return fmt.Sprintf("The %s resolves to %q but the file on disk is %q. It renders on this case-insensitive filesystem and breaks on case-sensitive hosts.", kind, target, actual)
	}
	return fmt.Sprintf("The %s resolves to %q but the file on disk is %q. This breaks on case-sensitive hosts.", kind, target, actual)
}

// documentHasAnchor reports whether a document defines the given anchor
// slug. The fragment is compared case-insensitively after URL decoding,
// matching how rendering hosts resolve anchors.
func documentHasAnchor(doc *model.Document, fragment string) bool {
	if decoded, err := url.PathUnescape(fragment); err == nil {
		fragment = decoded
	}
	fragment = strings.ToLower(fragment)
	for _, h := range doc.Headings {
		if h.Slug == fragment {
			return true
		}
	}
	return false
}

// sortedDocumentPaths returns document keys in lexical order so checks
// emit findings deterministically.
func sortedDocumentPaths(docs map[string]*model.Document) []string {
	paths := make([]string, 0, len(docs))
	for p := range docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
