package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// PathHandler wraps an slog.Handler to rewrite user-identifying filesystem
// paths. It intercepts log records and replaces the user's home directory
// prefix in string attribute values with "~" before passing them to the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Callers keep logging real paths; only the output is rewritten
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the user's home directory, empty when it could not be determined.
	home string
}

// NewPathHandler creates a new PathHandler wrapping the given handler.
// If handler is nil, the returned PathHandler will use slog.Default().Handler().
func NewPathHandler(handler slog.Handler) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &PathHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewrittenAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewrittenAttrs[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewrittenAttrs), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewrittenAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewrittenAttrs[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewrittenAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, h.rewritePath(a.Value.String()))
	}

	return a
}

// rewritePath replaces the home directory prefix with "~".
// Only whole path components are matched: /home/alicex is not rewritten
// for home /home/alice.
func (h *PathHandler) rewritePath(value string) string {
	if h.home == "" || h.home == "/" {
		return value
	}
	if value == h.home {
		return "~"
	}
	if strings.HasPrefix(value, h.home+string(os.PathSeparator)) {
		return "~" + value[len(h.home):]
	}
	return value
}

// NewPathLogger creates a new slog.Logger with path rewriting.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewPathLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewPathHandler(textHandler))
}
