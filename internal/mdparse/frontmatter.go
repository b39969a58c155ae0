package mdparse

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// frontMatterDelim is the line that opens and closes a YAML front matter block.
var frontMatterDelim = []byte("---")

// splitFrontMatter separates a YAML front matter block from the document body.
// It returns the decoded front matter map (nil when absent or undecodable),
// whether a block was present, the body with the block replaced by blank
// lines (so source line numbers are preserved), and any YAML decode error.
//
// A front matter block is a leading "---" line followed by YAML and a
// closing "---" or "..." line. Anything else leaves the source untouched.
func splitFrontMatter(src []byte) (map[string]any, bool, []byte, error) {
	lines := bytes.SplitAfter(src, []byte("\n"))
	if len(lines) < 2 || !bytes.Equal(bytes.TrimRight(lines[0], "\r\n"), frontMatterDelim) {
		return nil, false, src, nil
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		trimmed := bytes.TrimRight(lines[i], "\r\n")
		if bytes.Equal(trimmed, frontMatterDelim) || bytes.Equal(trimmed, []byte("...")) {
			closing = i
			break
		}
	}
	if closing < 0 {
		// Unterminated block: treat the leading --- as a thematic break.
		return nil, false, src, nil
	}

	raw := bytes.Join(lines[1:closing], nil)

	// Blank out the block so goldmark's line numbers still match the file.
	body := make([]byte, 0, len(src))
	for i := 0; i <= closing; i++ {
		if bytes.HasSuffix(lines[i], []byte("\n")) {
			body = append(body, '\n')
		}
	}
	for i := closing + 1; i < len(lines); i++ {
		body = append(body, lines[i]...)
	}

	fm := make(map[string]any)
	if err := yaml.Unmarshal(raw, &fm); err != nil {
		return nil, true, body, err
	}
	return fm, true, body, nil
}
