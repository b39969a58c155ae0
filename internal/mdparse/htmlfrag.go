package mdparse

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/docscan/internal/model"
)

// extractHTMLRefs extracts anchor hrefs and image sources from an inline
// HTML fragment. Markdown documentation frequently embeds raw HTML for
// layout (<img width=...>, <a name=...>), and those references must be
// checked like their markdown equivalents.
//
// Design decision: We use the x/net/html tokenizer rather than a full
// document parse because fragments are rarely well-formed documents and
// we only need attribute values, not a DOM.
func extractHTMLRefs(fragment string) ([]model.Link, []model.Image) {
	var links []model.Link
	var images []model.Image

	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}

		token := tokenizer.Token()
		switch token.Data {
		case "a":
			href := attrValue(token, "href")
			if href == "" {
				continue
			}
			links = append(links, model.Link{
				Text:        href,
				Destination: href,
			})
		case "img":
			src := attrValue(token, "src")
			if src == "" {
				continue
			}
			images = append(images, model.Image{
				Alt:         attrValue(token, "alt"),
				Destination: src,
			})
		}
	}

	return links, images
}

// attrValue returns the value of the named attribute, or empty string.
func attrValue(token html.Token, name string) string {
	for _, attr := range token.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
