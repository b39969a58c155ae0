package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// Document represents a parsed markdown document with all extracted structure.
// It holds both source metadata and the parsed content elements the
// analyzers operate on.
//
// Design decision: We store the full extraction result on the document rather
// than re-parsing per analyzer because:
// 1. A single parse pass is cheaper than one per check
// 2. Analyzers stay independent of the markdown parser
// 3. The hash allows deduplication and change detection across scans
type Document struct {
	// Path is the document path relative to the collection root,
	// using forward slashes regardless of platform.
	Path string `json:"path"`

	// Title is the text of the first level-1 heading, if any.
	Title string `json:"title,omitempty"`

	// Headings contains every heading in document order.
	Headings []Heading `json:"headings,omitempty"`

	// Links contains every link in document order, including
	// reference-style links after resolution was attempted.
	Links []Link `json:"links,omitempty"`

	// Images contains every image reference in document order.
	Images []Image `json:"images,omitempty"`

	// RefDefs contains reference link definitions keyed by their
	// normalized (lowercased) label.
	RefDefs []RefDef `json:"ref_defs,omitempty"`

	// Tables contains every pipe table in document order.
	Tables []Table `json:"tables,omitempty"`

	// BareURLs contains URLs that appear as plain text outside of
	// code spans and fenced blocks.
	BareURLs []BareURL `json:"bare_urls,omitempty"`

	// FrontMatter contains the decoded YAML front matter block, if present.
	FrontMatter map[string]any `json:"front_matter,omitempty"`

	// HasFrontMatter is true when a front matter block exists, even if empty.
	HasFrontMatter bool `json:"has_front_matter"`

	// WordCount is an approximate count of prose words.
	WordCount int `json:"word_count"`

	// Lines is the number of lines in the source file.
	Lines int `json:"lines"`

	// Hash is the SHA-256 hash of the raw content.
	// Used for deduplication and change detection.
	Hash string `json:"hash"`

	// ParseError holds a non-fatal parse problem description, if any.
	ParseError string `json:"parse_error,omitempty"`
}

// Heading is a single heading with its computed anchor slug.
type Heading struct {
	// Text is the rendered heading text without markup.
	Text string `json:"text"`

	// Level is the heading level, 1 through 6.
	Level int `json:"level"`

	// Line is the 1-based source line of the heading.
	Line int `json:"line"`

	// Slug is the GitHub-style anchor for this heading, already
	// deduplicated with a numeric suffix where needed.
	Slug string `json:"slug"`
}

// Link is a hyperlink extracted from a document.
type Link struct {
	// Text is the link's visible text.
	Text string `json:"text"`

	// Destination is the raw link destination as written.
	Destination string `json:"destination"`

	// Line is the 1-based source line of the enclosing block.
	Line int `json:"line"`

	// IsReference is true for reference-style links ([text][label]).
	IsReference bool `json:"is_reference,omitempty"`

	// Label is the reference label for reference-style links.
	Label string `json:"label,omitempty"`

	// Unresolved is true when a reference-style link has no
	// matching definition.
	Unresolved bool `json:"unresolved,omitempty"`
}

// Image is an image reference extracted from a document.
type Image struct {
	// Alt is the alternative text.
	Alt string `json:"alt"`

	// Destination is the raw image source as written.
	Destination string `json:"destination"`

	// Line is the 1-based source line of the enclosing block.
	Line int `json:"line"`
}

// RefDef is a reference link definition ([label]: destination).
type RefDef struct {
	// Label is the normalized (lowercased) reference label.
	Label string `json:"label"`

	// Destination is the definition's destination.
	Destination string `json:"destination"`

	// Line is the 1-based source line of the definition.
	Line int `json:"line"`

	// Duplicate is true when an earlier definition used the same label.
	Duplicate bool `json:"duplicate,omitempty"`
}

// Table is a pipe table with per-row cell counts.
type Table struct {
	// Line is the 1-based source line of the header row.
	Line int `json:"line"`

	// HeaderCells is the number of cells in the header row.
	HeaderCells int `json:"header_cells"`

	// RowCells holds the cell count of each body row in order.
	RowCells []int `json:"row_cells,omitempty"`

	// HasSeparator is true when a |---| separator row follows the header.
	HasSeparator bool `json:"has_separator"`
}

// BareURL is a URL that appears as plain text.
type BareURL struct {
	// URL is the URL as written.
	URL string `json:"url"`

	// Line is the 1-based source line.
	Line int `json:"line"`
}

// HashContent computes the SHA-256 hash of raw document content.
func HashContent(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
