package analyzer

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// destKind classifies a link destination.
type destKind int

const (
	// destRelative is a relative path inside the documentation tree.
	destRelative destKind = iota
	// destFragment is a bare fragment (#section) in the same document.
	destFragment
	// destExternal is a URL with a scheme (http, https, mailto, ...).
	destExternal
	// destAbsolute is an absolute filesystem path.
	destAbsolute
	// destEmpty is an empty destination.
	destEmpty
)

// schemePattern matches destinations that carry a URL scheme.
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// windowsPathPattern matches Windows drive-letter paths.
var windowsPathPattern = regexp.MustCompile(`^[a-zA-Z]:[\\/]`)

// resolvedDest is a classified and resolved link destination.
type resolvedDest struct {
	// kind classifies the destination.
	kind destKind

	// target is the root-relative slash path for destRelative, cleaned
	// and URL-decoded. Empty for other kinds.
	target string

	// fragment is the anchor portion without '#', if any.
	fragment string

	// escapesRoot is true when the relative target climbs above the
	// documentation root.
	escapesRoot bool
}

// resolveDest classifies a raw destination and resolves relative paths
// against the linking document's directory.
func resolveDest(docPath, dest string) resolvedDest {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return resolvedDest{kind: destEmpty}
	}

	if strings.HasPrefix(dest, "#") {
		return resolvedDest{kind: destFragment, fragment: dest[1:]}
	}

	if windowsPathPattern.MatchString(dest) {
		return resolvedDest{kind: destAbsolute}
	}
	if schemePattern.MatchString(dest) {
		return resolvedDest{kind: destExternal}
	}
	if strings.HasPrefix(dest, "/") {
		return resolvedDest{kind: destAbsolute}
	}

	// Split off fragment and query.
	pathPart := dest
	fragment := ""
	if idx := strings.Index(pathPart, "#"); idx >= 0 {
		fragment = pathPart[idx+1:]
		pathPart = pathPart[:idx]
	}
	if idx := strings.Index(pathPart, "?"); idx >= 0 {
		pathPart = pathPart[:idx]
	}

	// Percent-decoding: "My%20File.md" links to "My File.md".
	if decoded, err := url.PathUnescape(pathPart); err == nil {
		pathPart = decoded
	}

	if pathPart == "" {
		return resolvedDest{kind: destFragment, fragment: fragment}
	}

	target := path.Join(path.Dir(docPath), pathPart)
	target = path.Clean(target)

	rd := resolvedDest{kind: destRelative, target: target, fragment: fragment}
	if target == ".." || strings.HasPrefix(target, "../") {
		rd.escapesRoot = true
	}
	return rd
}

// targetExists reports whether the resolved target names an existing file
// or directory. Directories exist when any asset lives beneath them.
func targetExists(assets map[string]struct{}, target string) bool {
	if _, ok := assets[target]; ok {
		return true
	}
	prefix := target + "/"
	for asset := range assets {
		if strings.HasPrefix(asset, prefix) {
			return true
		}
	}
	return false
}

// findCaseMismatch returns the real asset path whose lowercase form matches
// the target's, or empty string when none differs only by case.
func findCaseMismatch(assets map[string]struct{}, target string) string {
	lower := strings.ToLower(target)
	for asset := range assets {
		if asset != target && strings.ToLower(asset) == lower {
			return asset
		}
	}
	return ""
}

