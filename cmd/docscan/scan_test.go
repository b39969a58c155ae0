package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/docscan/internal/config"
	"github.com/nao1215/docscan/internal/model"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan [docs-directory]..." {
			t.Errorf("expected use 'scan [docs-directory]...', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has depth flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("depth")
		if flag == nil {
			t.Fatal("expected depth flag")
		}
		if flag.Shorthand != "d" {
			t.Errorf("expected shorthand 'd', got %q", flag.Shorthand)
		}
	})

	t.Run("has max-docs flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("max-docs")
		if flag == nil {
			t.Fatal("expected max-docs flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", flag.Shorthand)
		}
	})

	t.Run("has batch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has report format flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("json") == nil {
			t.Error("expected json flag")
		}
		if cmd.Flags().Lookup("markdown") == nil {
			t.Error("expected markdown flag")
		}
		if cmd.Flags().Lookup("output") == nil {
			t.Error("expected output flag")
		}
	})

	t.Run("has fail-on flag with high default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("fail-on")
		if flag == nil {
			t.Fatal("expected fail-on flag")
		}
		if flag.DefValue != "high" {
			t.Errorf("expected default 'high', got %q", flag.DefValue)
		}
	})

	t.Run("has watch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("watch")
		if flag == nil {
			t.Fatal("expected watch flag")
		}
		if flag.Shorthand != "w" {
			t.Errorf("expected shorthand 'w', got %q", flag.Shorthand)
		}
	})

	t.Run("has exif flag enabled by default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("exif")
		if flag == nil {
			t.Fatal("expected exif flag")
		}
		if flag.DefValue != "true" {
			t.Errorf("expected default 'true', got %q", flag.DefValue)
		}
	})
}

// TestBuildConfig tests the flag to config translation.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		cfg, err := buildConfig(cmd, []string{"./docs"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}

		if cfg.MaxDepth != config.DefaultMaxDepth {
			t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, config.DefaultMaxDepth)
		}
		if cfg.MaxDocuments != config.DefaultMaxDocuments {
			t.Errorf("MaxDocuments = %d, want %d", cfg.MaxDocuments, config.DefaultMaxDocuments)
		}
		if cfg.BatchSize != config.DefaultBatchSize {
			t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, config.DefaultBatchSize)
		}
		if cfg.FailOn != model.SeverityHigh {
			t.Errorf("FailOn = %v, want %v", cfg.FailOn, model.SeverityHigh)
		}
		if !cfg.InspectEXIF {
			t.Error("InspectEXIF should default to true")
		}
		if !cfg.SaveToDB {
			t.Error("SaveToDB should default to true")
		}
		if len(cfg.Roots) != 1 || cfg.Roots[0] != "./docs" {
			t.Errorf("Roots = %v, want [./docs]", cfg.Roots)
		}
	})

	t.Run("no arguments scans current directory", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if len(cfg.Roots) != 1 || cfg.Roots[0] != "." {
			t.Errorf("Roots = %v, want [.]", cfg.Roots)
		}
	})

	t.Run("invalid fail-on severity", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("fail-on", "catastrophic"); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, nil); err == nil {
			t.Error("buildConfig() expected error for unknown severity")
		}
	})

	t.Run("fail-on accepts mixed case", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("fail-on", "Medium"); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.FailOn != model.SeverityMedium {
			t.Errorf("FailOn = %v, want %v", cfg.FailOn, model.SeverityMedium)
		}
	})

	t.Run("explicit missing config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		missing := filepath.Join(t.TempDir(), "nope.yaml")
		if err := cmd.Flags().Set("config", missing); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, nil); err == nil {
			t.Error("buildConfig() expected error for missing config file")
		}
	})

	t.Run("loads config file", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "docscan.yaml")
		content := `defaults:
  requiredFrontMatter:
    - title
collections:
  ./docs:
    disabledChecks:
      - orphans
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("config", configPath); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"./docs"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}

		cc := cfg.CollectionConfigs.GetCollectionConfig("./docs")
		if len(cc.RequiredFrontMatter) != 1 || cc.RequiredFrontMatter[0] != "title" {
			t.Errorf("RequiredFrontMatter = %v, want [title]", cc.RequiredFrontMatter)
		}
		if !cc.CheckDisabled("orphans") {
			t.Error("orphans check should be disabled for ./docs")
		}
	})
}

// TestReportExceedsThreshold tests the fail-on severity gate.
func TestReportExceedsThreshold(t *testing.T) {
	t.Parallel()

	report := model.NewDocScanReport("/docs")
	report.AddFinding(model.Finding{Type: "broken_link", Value: "missing.md", Location: "a.md"})

	if !reportExceedsThreshold(report, model.SeverityHigh) {
		t.Error("high finding should exceed high threshold")
	}
	if !reportExceedsThreshold(report, model.SeverityInfo) {
		t.Error("high finding should exceed info threshold")
	}
	if reportExceedsThreshold(report, model.SeverityCritical) {
		t.Error("high finding should not exceed critical threshold")
	}

	clean := model.NewDocScanReport("/docs")
	if reportExceedsThreshold(clean, model.SeverityInfo) {
		t.Error("empty report should never exceed any threshold")
	}
}

// TestScanRoot tests the end-to-end scan of a small documentation tree.
func TestScanRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	readme := "# Project\n\n[Guide](guide.md)\n[Broken](missing.md)\n"
	guide := "# Guide\n\nBack to [readme](README.md).\n"
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "guide.md"), []byte(guide), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewConfig()
	cfg.Roots = []string{dir}
	cfg.InspectEXIF = false

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	scanReport, err := scanRoot(context.Background(), cfg, dir, logger)
	if err != nil {
		t.Fatalf("scanRoot() error = %v", err)
	}

	if scanReport.DocumentCount != 2 {
		t.Errorf("DocumentCount = %d, want 2", scanReport.DocumentCount)
	}
	if scanReport.SimpleReport == nil {
		t.Fatal("SimpleReport is nil")
	}

	foundBroken := false
	for _, f := range scanReport.SimpleReport.Findings {
		if f.Type == "broken_link" && f.Value == "missing.md" {
			foundBroken = true
		}
	}
	if !foundBroken {
		t.Errorf("expected broken_link finding for missing.md, got %+v", scanReport.SimpleReport.Findings)
	}
}

// TestOutputReport tests report writing to a file.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	t.Run("json report to file", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), "nested", "report.json")
		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = outPath

		scanReport := model.NewDocScanReport("/docs")
		scanReport.AddFinding(model.Finding{Type: "bare_url", Value: "https://example.com", Location: "a.md"})

		if err := outputReport(cfg, scanReport); err != nil {
			t.Fatalf("outputReport() error = %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("report file is not valid JSON: %v", err)
		}
		if _, ok := decoded["version"]; !ok {
			t.Error("JSON report missing version field")
		}
	})

	t.Run("markdown report to file", func(t *testing.T) {
		t.Parallel()

		outPath := filepath.Join(t.TempDir(), "report.md")
		cfg := config.NewConfig()
		cfg.MarkdownReport = true
		cfg.ReportFile = outPath

		scanReport := model.NewDocScanReport("/docs")

		if err := outputReport(cfg, scanReport); err != nil {
			t.Fatalf("outputReport() error = %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(data), "# Documentation Scan Report") {
			t.Error("markdown report missing title")
		}
	})
}

// TestRunScanValidation tests argument validation in runScan.
func TestRunScanValidation(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	t.Run("no roots", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.SaveToDB = false

		if err := runScan(context.Background(), cfg, logger); err == nil {
			t.Error("runScan() expected error without roots")
		}
	})

	t.Run("watch with multiple roots", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.SaveToDB = false
		cfg.Watch = true
		cfg.Roots = []string{"./a", "./b"}

		if err := runScan(context.Background(), cfg, logger); err == nil {
			t.Error("runScan() expected error for watch with multiple roots")
		}
	})
}
