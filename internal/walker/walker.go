// Package walker discovers the documents and assets of a documentation tree.
// It walks a root directory, collects markdown documents up to a configured
// budget, and indexes every regular file as a candidate link target.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/charlievieth/fastwalk"
)

// Directory names that never contain documentation and are skipped
// entirely. Dot-directories are skipped separately.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"__pycache__":  true,
}

// SkipDirName reports whether a directory with the given base name is
// excluded from discovery. Watch mode uses the same rule so that edits
// inside build output never trigger a rescan.
func SkipDirName(name string) bool {
	return strings.HasPrefix(name, ".") || skippedDirs[name]
}

// Result holds everything discovery produced for one root.
type Result struct {
	// Root is the normalized absolute root path.
	Root string

	// DocumentPaths is the sorted list of discovered markdown documents,
	// as root-relative slash paths.
	DocumentPaths []string

	// Assets is the set of every regular file under the root, as
	// root-relative slash paths. Documents appear here too.
	Assets map[string]struct{}

	// Truncated is true when the document budget stopped discovery early.
	Truncated bool

	// CaseInsensitiveFS is true when the root's filesystem does not
	// distinguish letter case in file names.
	CaseInsensitiveFS bool
}

// Walker discovers markdown documents and assets under a root.
//
// Design decision: We use fastwalk rather than filepath.WalkDir because
// documentation trees live inside repositories that can hold tens of
// thousands of asset files, and fastwalk parallelizes directory reads.
// The callback therefore guards shared state with a mutex.
type Walker struct {
	// maxDepth limits recursion below the root. Depth 0 is the root itself.
	maxDepth int

	// maxDocuments caps how many markdown documents are collected.
	maxDocuments int

	// extensions are the lowercase file extensions treated as markdown.
	extensions map[string]bool

	// ignorePatterns are glob patterns for paths to skip.
	ignorePatterns []string

	// followPatterns restrict documents to matching paths when non-empty.
	followPatterns []string

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxDepth sets the maximum recursion depth.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		w.maxDepth = depth
	}
}

// WithMaxDocuments sets the document budget.
func WithMaxDocuments(n int) Option {
	return func(w *Walker) {
		w.maxDocuments = n
	}
}

// WithExtensions sets the markdown file extensions (lowercase, with dot).
func WithExtensions(exts []string) Option {
	return func(w *Walker) {
		w.extensions = make(map[string]bool, len(exts))
		for _, e := range exts {
			w.extensions[e] = true
		}
	}
}

// WithIgnorePatterns sets glob patterns for paths to skip.
func WithIgnorePatterns(patterns []string) Option {
	return func(w *Walker) {
		w.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets glob patterns documents must match.
func WithFollowPatterns(patterns []string) Option {
	return func(w *Walker) {
		w.followPatterns = patterns
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// New creates a Walker with the given options.
func New(opts ...Option) *Walker {
	w := &Walker{
		maxDepth:     25,
		maxDocuments: 2000,
		extensions:   map[string]bool{".md": true, ".markdown": true, ".mdown": true},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NormalizeRoot validates a documentation root and returns its absolute path.
// The root must exist and be a directory.
func NormalizeRoot(root string) (string, error) {
	if root == "" {
		return "", errors.New("empty root path")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("documentation root does not exist: %s", abs)
		}
		return "", fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("documentation root is not a directory: %s", abs)
	}
	return abs, nil
}

// Walk discovers documents and assets under the given root.
// The root must already be normalized via NormalizeRoot.
func (w *Walker) Walk(ctx context.Context, root string) (*Result, error) {
	result := &Result{
		Root:   root,
		Assets: make(map[string]struct{}),
	}

	var mu sync.Mutex
	conf := fastwalk.Config{
		Follow: false, // Symlink loops would defeat the depth budget
	}

	err := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("walk error", "path", p, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if SkipDirName(d.Name()) {
				return filepath.SkipDir
			}
			if strings.Count(rel, "/")+1 > w.maxDepth {
				return filepath.SkipDir
			}
			if w.ignored(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if w.ignored(rel) {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()

		result.Assets[rel] = struct{}{}

		if !w.extensions[strings.ToLower(path.Ext(rel))] {
			return nil
		}
		if len(w.followPatterns) > 0 && !matchAny(w.followPatterns, rel) {
			return nil
		}
		if len(result.DocumentPaths) >= w.maxDocuments {
			result.Truncated = true
			return nil
		}
		result.DocumentPaths = append(result.DocumentPaths, rel)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	if errors.Is(err, context.Canceled) {
		return nil, err
	}

	sort.Strings(result.DocumentPaths)
	result.CaseInsensitiveFS = probeCaseInsensitive(root, result.DocumentPaths)

	w.logger.Info("discovery completed",
		"root", root,
		"documents", len(result.DocumentPaths),
		"assets", len(result.Assets),
		"truncated", result.Truncated,
	)

	return result, nil
}

// ignored reports whether the relative path matches an ignore pattern.
// Patterns without a slash also match against the base name.
func (w *Walker) ignored(rel string) bool {
	return matchAny(w.ignorePatterns, rel)
}

// matchAny reports whether the relative path matches any glob pattern.
func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, rel); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := path.Match(pattern, path.Base(strings.TrimSuffix(rel, "/"))); err == nil && ok {
				return true
			}
		}
		// Directory prefix patterns: "archive/*" should also hide
		// files nested deeper than one level.
		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "*")
			if strings.HasPrefix(rel, prefix) {
				return true
			}
		}
	}
	return false
}

// probeCaseInsensitive reports whether the filesystem under root treats
// letter case as insignificant. It stats a discovered file under a
// case-swapped name and compares identity.
func probeCaseInsensitive(root string, docs []string) bool {
	for _, rel := range docs {
		swapped := swapCase(rel)
		if swapped == rel {
			continue
		}
		origInfo, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		swappedInfo, err := os.Stat(filepath.Join(root, filepath.FromSlash(swapped)))
		if err != nil {
			return false
		}
		return os.SameFile(origInfo, swappedInfo)
	}
	return false
}

// swapCase inverts the case of every letter in s.
func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, s)
}
