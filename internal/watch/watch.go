package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nao1215/docscan/internal/walker"
)

// DefaultDebounce is the delay between the last observed file change and
// the rescan it triggers. Editors produce bursts of events per save, so
// changes are coalesced rather than handled one by one.
const DefaultDebounce = 250 * time.Millisecond

// ChangeFunc is invoked after the debounce window with the root-relative
// slash paths that changed, sorted and deduplicated.
type ChangeFunc func(ctx context.Context, paths []string)

// Watcher observes a documentation root and reports batched changes.
//
// Design decision: We watch every directory in the tree rather than just
// the root because inotify does not recurse. Directories created while
// watching are added on their Create event, so new subtrees are covered
// without rebuilding the watch list.
type Watcher struct {
	// root is the normalized absolute root path.
	root string

	// debounce is how long to wait after the last event before firing.
	debounce time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before changes are reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a Watcher for the given documentation root.
// The root is validated and normalized to an absolute path.
func New(root string, opts ...Option) (*Watcher, error) {
	normalized, err := walker.NormalizeRoot(root)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:     normalized,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Root returns the normalized root path being watched.
func (w *Watcher) Root() string {
	return w.root
}

// Run watches the root until the context is cancelled, invoking onChange
// after each debounced burst of file changes. It returns the context
// error on cancellation and any watcher setup failure immediately.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	if onChange == nil {
		return fmt.Errorf("watch %s: nil change callback", w.root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close() //nolint:errcheck // nothing to do about close errors on shutdown

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			rel, relevant := w.classify(event)
			if !relevant {
				continue
			}

			// New directories need their own watch before anything
			// written inside them can be seen.
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil

			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})

			w.logger.Info("documentation changed", "root", w.root, "paths", len(paths))
			onChange(ctx, paths)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "root", w.root, "error", err)
		}
	}
}

// addTree registers dir and every non-skipped subdirectory with the watcher.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("watch walk error", "path", p, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && walker.SkipDirName(d.Name()) {
			return filepath.SkipDir
		}
		if addErr := fw.Add(p); addErr != nil {
			return fmt.Errorf("failed to watch %s: %w", p, addErr)
		}
		return nil
	})
}

// classify maps an fsnotify event to a root-relative path and reports
// whether it should trigger a rescan. Chmod-only events and hidden
// files are ignored.
func (w *Watcher) classify(event fsnotify.Event) (string, bool) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return "", false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || walker.SkipDirName(base) {
		return "", false
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
