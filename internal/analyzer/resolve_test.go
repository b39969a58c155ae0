package analyzer

import "testing"

func TestResolveDest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		docPath string
		dest    string
		want    resolvedDest
	}{
		{
			name:    "sibling file",
			docPath: "guide/setup.md",
			dest:    "install.md",
			want:    resolvedDest{kind: destRelative, target: "guide/install.md"},
		},
		{
			name:    "parent directory",
			docPath: "guide/setup.md",
			dest:    "../README.md",
			want:    resolvedDest{kind: destRelative, target: "README.md"},
		},
		{
			name:    "escapes root",
			docPath: "setup.md",
			dest:    "../secrets.md",
			want:    resolvedDest{kind: destRelative, target: "../secrets.md", escapesRoot: true},
		},
		{
			name:    "fragment only",
			docPath: "setup.md",
			dest:    "#usage",
			want:    resolvedDest{kind: destFragment, fragment: "usage"},
		},
		{
			name:    "relative with fragment",
			docPath: "guide/setup.md",
			dest:    "install.md#step-2",
			want:    resolvedDest{kind: destRelative, target: "guide/install.md", fragment: "step-2"},
		},
		{
			name:    "percent encoded",
			docPath: "setup.md",
			dest:    "My%20File.md",
			want:    resolvedDest{kind: destRelative, target: "My File.md"},
		},
		{
			name:    "query string stripped",
			docPath: "setup.md",
			dest:    "install.md?raw=1",
			want:    resolvedDest{kind: destRelative, target: "install.md"},
		},
		{
			name:    "https url",
			docPath: "setup.md",
			dest:    "https://example.com/page",
			want:    resolvedDest{kind: destExternal},
		},
		{
			name:    "mailto url",
			docPath: "setup.md",
			dest:    "mailto:docs@example.com",
			want:    resolvedDest{kind: destExternal},
		},
		{
			name:    "absolute unix path",
			docPath: "setup.md",
			dest:    "/home/alice/docs/file.md",
			want:    resolvedDest{kind: destAbsolute},
		},
		{
			name:    "windows drive path",
			docPath: "setup.md",
			dest:    `C:\docs\file.md`,
			want:    resolvedDest{kind: destAbsolute},
		},
		{
			name:    "empty destination",
			docPath: "setup.md",
			dest:    "",
			want:    resolvedDest{kind: destEmpty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveDest(tt.docPath, tt.dest)
			if got != tt.want {
				t.Errorf("resolveDest(%q, %q) = %+v, want %+v", tt.docPath, tt.dest, got, tt.want)
			}
		})
	}
}

func TestTargetExists(t *testing.T) {
	t.Parallel()

	assets := map[string]struct{}{
		"README.md":          {},
		"guide/install.md":   {},
		"img/diagram.png":    {},
		"guide/sub/notes.md": {},
	}

	t.Run("existing file", func(t *testing.T) {
		t.Parallel()
		if !targetExists(assets, "guide/install.md") {
			t.Error("targetExists() = false, want true")
		}
	})

	t.Run("directory with contents", func(t *testing.T) {
		t.Parallel()
		if !targetExists(assets, "guide") {
			t.Error("targetExists() = false for directory, want true")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if targetExists(assets, "guide/missing.md") {
			t.Error("targetExists() = true, want false")
		}
	})
}

func TestFindCaseMismatch(t *testing.T) {
	t.Parallel()

	assets := map[string]struct{}{
		"README.md":        {},
		"guide/Install.md": {},
	}

	t.Run("case differs", func(t *testing.T) {
		t.Parallel()
		if got := findCaseMismatch(assets, "guide/install.md"); got != "guide/Install.md" {
			t.Errorf("findCaseMismatch() = %q, want %q", got, "guide/Install.md")
		}
	})

	t.Run("exact match is not a mismatch", func(t *testing.T) {
		t.Parallel()
		if got := findCaseMismatch(assets, "README.md"); got != "" {
			t.Errorf("findCaseMismatch() = %q, want empty", got)
		}
	})

	t.Run("no match at all", func(t *testing.T) {
		t.Parallel()
		if got := findCaseMismatch(assets, "missing.md"); got != "" {
			t.Errorf("findCaseMismatch() = %q, want empty", got)
		}
	})
}
