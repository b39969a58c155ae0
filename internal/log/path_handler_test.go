package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// newTestHandler returns a PathHandler with a fixed home directory and
// a buffer capturing the text output.
func newTestHandler(home string) (*PathHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	h := &PathHandler{
		handler: slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		home:    home,
	}
	return h, &buf
}

// TestPathHandlerRewritesHomePaths verifies home-prefixed string attributes
// are rewritten with a tilde.
func TestPathHandlerRewritesHomePaths(t *testing.T) {
	t.Parallel()

	h, buf := newTestHandler("/home/alice")
	logger := slog.New(h)

	logger.Info("scanning", "root", "/home/alice/thesis/docs")

	out := buf.String()
	if !strings.Contains(out, "~/thesis/docs") {
		t.Errorf("expected rewritten path in output, got %q", out)
	}
	if strings.Contains(out, "/home/alice/thesis") {
		t.Errorf("expected home prefix to be removed, got %q", out)
	}
}

// TestPathHandlerLeavesOtherValues verifies non-path values pass through.
func TestPathHandlerLeavesOtherValues(t *testing.T) {
	t.Parallel()

	h, buf := newTestHandler("/home/alice")
	logger := slog.New(h)

	logger.Info("scan done", "documents", 42, "root", "/srv/docs")

	out := buf.String()
	if !strings.Contains(out, "documents=42") {
		t.Errorf("expected numeric attr untouched, got %q", out)
	}
	if !strings.Contains(out, "/srv/docs") {
		t.Errorf("expected non-home path untouched, got %q", out)
	}
}

// TestPathHandlerWholeComponentMatch verifies sibling directories that share
// the home prefix as a string are not rewritten.
func TestPathHandlerWholeComponentMatch(t *testing.T) {
	t.Parallel()

	h, buf := newTestHandler("/home/alice")
	logger := slog.New(h)

	logger.Info("scanning", "root", "/home/alicex/docs")

	if strings.Contains(buf.String(), "~") {
		t.Errorf("expected no rewrite for /home/alicex, got %q", buf.String())
	}
}

// TestPathHandlerGroups verifies group attributes are rewritten recursively.
func TestPathHandlerGroups(t *testing.T) {
	t.Parallel()

	h, buf := newTestHandler("/home/alice")
	logger := slog.New(h)

	logger.Info("report written",
		slog.Group("output",
			slog.String("path", "/home/alice/report.md"),
		),
	)

	if !strings.Contains(buf.String(), "~/report.md") {
		t.Errorf("expected rewritten group attr, got %q", buf.String())
	}
}

// TestPathHandlerWithAttrs verifies pre-bound attributes are rewritten.
func TestPathHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	h, buf := newTestHandler("/home/alice")
	logger := slog.New(h).With("root", "/home/alice/docs")

	logger.Info("hello")

	if !strings.Contains(buf.String(), "~/docs") {
		t.Errorf("expected rewritten bound attr, got %q", buf.String())
	}
}

// TestPathHandlerEnabled verifies level delegation.
func TestPathHandlerEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewPathHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

// TestNewPathLogger verifies verbose toggles the level.
func TestNewPathLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewPathLogger(&buf, false)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug suppressed when not verbose, got %q", buf.String())
	}

	verbose := NewPathLogger(&buf, true)
	verbose.Debug("visible")
	if buf.Len() == 0 {
		t.Error("expected debug output in verbose mode")
	}
}
