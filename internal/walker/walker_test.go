package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file with parent directories under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// TestNormalizeRoot verifies root validation.
func TestNormalizeRoot(t *testing.T) {
	t.Parallel()

	t.Run("existing directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		abs, err := NormalizeRoot(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !filepath.IsAbs(abs) {
			t.Errorf("expected absolute path, got %s", abs)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		if _, err := NormalizeRoot(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected error for missing root")
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		file := filepath.Join(dir, "f.md")
		if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := NormalizeRoot(file); err == nil {
			t.Error("expected error for file root")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		if _, err := NormalizeRoot(""); err == nil {
			t.Error("expected error for empty root")
		}
	})
}

// TestWalkDiscovery verifies document and asset discovery.
func TestWalkDiscovery(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "index.md", "# Index\n")
	writeFile(t, root, "chapters/ch2.md", "# Chapter 2\n")
	writeFile(t, root, "figures/arch.png", "not really a png")
	writeFile(t, root, ".hidden/secret.md", "# Hidden\n")
	writeFile(t, root, "node_modules/pkg/readme.md", "# Dep\n")

	result, err := New().Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.DocumentPaths) != 2 {
		t.Fatalf("expected 2 documents, got %v", result.DocumentPaths)
	}
	if result.DocumentPaths[0] != "chapters/ch2.md" || result.DocumentPaths[1] != "index.md" {
		t.Errorf("unexpected sorted documents: %v", result.DocumentPaths)
	}
	if _, ok := result.Assets["figures/arch.png"]; !ok {
		t.Error("expected png to be indexed as asset")
	}
	if _, ok := result.Assets[".hidden/secret.md"]; ok {
		t.Error("expected dot directories to be skipped")
	}
	if _, ok := result.Assets["node_modules/pkg/readme.md"]; ok {
		t.Error("expected node_modules to be skipped")
	}
}

// TestWalkDocumentBudget verifies the max documents budget.
func TestWalkDocumentBudget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.md", "# A\n")
	writeFile(t, root, "b.md", "# B\n")
	writeFile(t, root, "c.md", "# C\n")

	result, err := New(WithMaxDocuments(2)).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.DocumentPaths) != 2 {
		t.Errorf("expected 2 documents, got %v", result.DocumentPaths)
	}
	if !result.Truncated {
		t.Error("expected truncation flag")
	}
}

// TestWalkIgnorePatterns verifies ignore globs.
func TestWalkIgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "index.md", "# Index\n")
	writeFile(t, root, "drafts/wip.md", "# WIP\n")
	writeFile(t, root, "CHANGELOG.md", "# Changes\n")

	result, err := New(WithIgnorePatterns([]string{"drafts/*", "CHANGELOG.md"})).
		Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.DocumentPaths) != 1 || result.DocumentPaths[0] != "index.md" {
		t.Errorf("expected only index.md, got %v", result.DocumentPaths)
	}
}

// TestWalkFollowPatterns verifies follow globs restrict documents but
// not the asset index.
func TestWalkFollowPatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "chapters/ch2.md", "# Ch2\n")
	writeFile(t, root, "notes.md", "# Notes\n")

	result, err := New(WithFollowPatterns([]string{"chapters/*"})).
		Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.DocumentPaths) != 1 || result.DocumentPaths[0] != "chapters/ch2.md" {
		t.Errorf("expected only chapters/ch2.md, got %v", result.DocumentPaths)
	}
	if _, ok := result.Assets["notes.md"]; !ok {
		t.Error("expected notes.md to remain in asset index")
	}
}

// TestWalkMaxDepth verifies depth limiting.
func TestWalkMaxDepth(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "top.md", "# Top\n")
	writeFile(t, root, "a/b/c/deep.md", "# Deep\n")

	result, err := New(WithMaxDepth(1)).Walk(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.DocumentPaths) != 1 || result.DocumentPaths[0] != "top.md" {
		t.Errorf("expected only top.md within depth 1, got %v", result.DocumentPaths)
	}
}

// TestWalkCancelled verifies context cancellation aborts the walk.
func TestWalkCancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.md", "# A\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Walk(ctx, root); err == nil {
		t.Error("expected error from cancelled context")
	}
}

// TestSwapCase verifies the case probe helper.
func TestSwapCase(t *testing.T) {
	t.Parallel()

	if got := swapCase("Readme.MD"); got != "rEADME.md" {
		t.Errorf("swapCase = %q", got)
	}
	if got := swapCase("123-_"); got != "123-_" {
		t.Errorf("expected non-letters untouched, got %q", got)
	}
}
