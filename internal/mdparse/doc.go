// Package mdparse extracts structure from markdown documents.
// It parses a document once and produces a model.Document containing
// headings, links, images, tables, reference definitions, bare URLs,
// and front matter for the analyzers to consume.
//
// The package combines two passes: a goldmark AST walk for everything
// CommonMark defines precisely (headings, links, images, inline HTML),
// and a fence-aware line scan for constructs that are easier to check
// against the raw source (pipe tables, reference definitions, bare URLs).
package mdparse
