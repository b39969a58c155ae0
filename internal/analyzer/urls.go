package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/docscan/internal/model"
)

// URLAnalyzer applies hygiene checks to external URLs: plain-HTTP
// references and URLs pasted as bare text instead of markdown links.
// No network requests are made; the checks are purely lexical.
type URLAnalyzer struct{}

// NewURLAnalyzer creates a new URL hygiene check.
func NewURLAnalyzer() *URLAnalyzer {
	return &URLAnalyzer{}
}

// Name returns the check's name.
func (a *URLAnalyzer) Name() string {
	return "urls"
}

// Category returns the check's category.
func (a *URLAnalyzer) Category() string {
	return CategoryHygiene
}

// Analyze inspects link destinations, image sources, and bare URLs.
func (a *URLAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var findings []model.Finding

	for _, path := range sortedDocumentPaths(data.Documents) {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		doc := data.Documents[path]

		// The linkifier records a bare URL as a link as well, so the same
		// URL can reach this check twice. One plain-HTTP finding per URL
		// per document is enough.
		reported := make(map[string]struct{})
		insecure := func(dest string, line int) {
			if _, seen := reported[dest]; seen {
				return
			}
			if f, ok := insecureURLFinding(doc, dest, line); ok {
				reported[dest] = struct{}{}
				findings = append(findings, f)
			}
		}

		for _, link := range doc.Links {
			insecure(link.Destination, link.Line)
		}
		for _, img := range doc.Images {
			insecure(img.Destination, img.Line)
		}

		for _, bare := range doc.BareURLs {
			findings = append(findings, newFinding(
				"bare_url",
				"URL pasted as plain text",
				fmt.Sprintf("The URL %q appears as bare text. Wrap it as <%s> or give it link text so every renderer makes it clickable.", bare.URL, bare.URL),
				bare.URL,
				doc.Path,
				bare.Line,
			))
			insecure(bare.URL, bare.Line)
		}
	}

	return findings, nil
}

// insecureURLFinding reports a plain-HTTP URL, ignoring localhost
// addresses which legitimately have no TLS.
func insecureURLFinding(doc *model.Document, dest string, line int) (model.Finding, bool) {
	if !strings.HasPrefix(dest, "http://") {
		return model.Finding{}, false
	}
	host := strings.TrimPrefix(dest, "http://")
	if idx := strings.IndexAny(host, "/:?#"); idx >= 0 {
		host = host[:idx]
	}
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return model.Finding{}, false
	}
	return newFinding(
		"insecure_url",
		"URL uses plain HTTP",
		fmt.Sprintf("The URL %q uses http rather than https.", dest),
		dest,
		doc.Path,
		line,
	), true
}
