package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/docscan/internal/config"
	"github.com/nao1215/docscan/internal/database"
	"github.com/nao1215/docscan/internal/model"
)

// Constants for health direction and summary messages.
const (
	healthDirectionWorsened  = "worsened"
	healthDirectionImproved  = "improved"
	healthDirectionUnchanged = "unchanged"
	noFindingsMessage        = "No findings"
)

// NewCompareCmd creates the compare command.
// This command compares scan results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [docs-directory]",
		Short: "Compare scan results with historical data",
		Long: `Compare displays differences between the current and previous scan results.

This command retrieves historical scan data from the database and shows:
- New findings that appeared since the last scan
- Resolved findings that are no longer present
- Documents that were added, removed, or edited between scans

The comparison requires at least two scans in the database for the specified
documentation root. Use 'docscan scan' to perform scans and save results.

Examples:
  # Compare latest two scans for a documentation tree
  docscan compare ./docs

  # List all scan history for a documentation tree
  docscan compare --list ./docs

  # Compare with a specific historical scan by ID
  docscan compare --with-scan-id 5 ./docs

  # Compare scans since a specific date
  docscan compare --since "2026-01-01" ./docs

  # Output comparison in JSON format
  docscan compare --json ./docs

  # List all scanned roots in the database
  docscan compare --list-roots`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List scan history for the specified documentation root")
	cmd.Flags().BoolP("list-roots", "L", false,
		"List all scanned roots in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-scan-id", "i", 0,
		"Compare with a specific scan by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first scan after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-roots flag first (requires database but no root)
	listRoots, err := cmd.Flags().GetBool("list-roots")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-roots)
	// This prevents database lock issues when validation fails
	var root string
	if !listRoots {
		if len(args) == 0 {
			return errors.New("documentation root is required (use --list-roots to see scanned roots)")
		}

		// Scan reports store the absolute root path
		root, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid documentation root: %w", err)
		}
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	// Open database without creating it: compare is read-only
	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database (run 'docscan scan' first): %w", err)
	}
	defer db.Close() //nolint:errcheck // Best effort cleanup

	ctx := context.Background()

	// Handle --list-roots flag
	if listRoots {
		return listScannedRoots(ctx, db)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listScanHistory(ctx, db, root)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	// Get comparison target flags
	withScanID, err := cmd.Flags().GetInt64("with-scan-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	// Perform comparison
	return runComparison(ctx, db, root, withScanID, sinceDate, jsonOutput, markdownOutput)
}

// listScannedRoots lists all documentation roots with scan records.
func listScannedRoots(ctx context.Context, db *database.HistoryDB) error {
	roots, err := db.ListRoots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roots: %w", err)
	}

	if len(roots) == 0 {
		fmt.Println("No scanned roots found in the database.")
		fmt.Println("\nUse 'docscan scan <directory>' to scan a documentation tree.")
		return nil
	}

	fmt.Printf("Scanned roots (%d):\n\n", len(roots))
	for _, root := range roots {
		fmt.Printf("  • %s\n", root)
	}
	fmt.Println("\nUse 'docscan compare --list <directory>' to see scan history for a root.")

	return nil
}

// listScanHistory lists all scan records for a documentation root.
func listScanHistory(ctx context.Context, db *database.HistoryDB, root string) error {
	scans, err := db.ScanHistoryWithMetadata(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(scans) == 0 {
		fmt.Printf("No scan history found for %s\n", root)
		fmt.Println("\nUse 'docscan scan' to scan this documentation tree.")
		return nil
	}

	fmt.Printf("Scan history for %s (%d scans):\n\n", root, len(scans))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Date", "Findings Summary")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range scans {
		fmt.Printf("  %-6d  %-20s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			formatSeveritySummary(meta.SeveritySummary),
		)
	}

	fmt.Println("\nUse 'docscan compare <directory>' to compare the latest two scans.")
	fmt.Println("Use 'docscan compare --with-scan-id <id> <directory>' to compare with a specific scan.")

	return nil
}

// formatSeveritySummary formats the severity summary map into a human-readable string.
func formatSeveritySummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if v := summary["critical"]; v > 0 {
		parts = append(parts, fmt.Sprintf("C:%d", v))
	}
	if v := summary["high"]; v > 0 {
		parts = append(parts, fmt.Sprintf("H:%d", v))
	}
	if v := summary["medium"]; v > 0 {
		parts = append(parts, fmt.Sprintf("M:%d", v))
	}
	if v := summary["low"]; v > 0 {
		parts = append(parts, fmt.Sprintf("L:%d", v))
	}
	if v := summary["info"]; v > 0 {
		parts = append(parts, fmt.Sprintf("I:%d", v))
	}

	if len(parts) == 0 {
		return noFindingsMessage
	}
	return strings.Join(parts, " ")
}

// runComparison performs the actual comparison between scan reports.
func runComparison(ctx context.Context, db *database.HistoryDB, root string, withScanID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	// Get the scan history with IDs so document snapshots can be loaded
	scans, err := db.ScanHistoryWithMetadata(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(scans) == 0 {
		return fmt.Errorf("no scan history found for %s", root)
	}

	if len(scans) < 2 && withScanID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 scans are required for comparison (found %d)", len(scans))
	}

	// Latest scan is always the current one
	currentID := scans[0].ID

	var previousID int64
	switch {
	case withScanID > 0:
		found := false
		for _, meta := range scans {
			if meta.ID == withScanID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("scan with ID %d not found for %s", withScanID, root)
		}
		previousID = withScanID

	case sinceDate != "":
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Scans are sorted newest first, so iterate in reverse to find
		// the oldest scan at or after the date.
		for i := len(scans) - 1; i >= 0; i-- {
			if !scans[i].Timestamp.Before(parsedDate) {
				previousID = scans[i].ID
				break
			}
		}
		if previousID == 0 {
			return fmt.Errorf("no scans found since %s", sinceDate)
		}
		if previousID == currentID {
			return fmt.Errorf("only one scan found since %s; at least 2 scans are required for comparison", sinceDate)
		}

	default:
		previousID = scans[1].ID
	}

	previous, err := db.ScanReportByID(ctx, previousID)
	if err != nil {
		return fmt.Errorf("failed to load scan %d: %w", previousID, err)
	}
	current, err := db.ScanReportByID(ctx, currentID)
	if err != nil {
		return fmt.Errorf("failed to load scan %d: %w", currentID, err)
	}
	if previous == nil || current == nil {
		return errors.New("scan records disappeared while comparing")
	}

	previousDocs, err := db.DocumentsForScan(ctx, previousID)
	if err != nil {
		return fmt.Errorf("failed to load documents for scan %d: %w", previousID, err)
	}
	currentDocs, err := db.DocumentsForScan(ctx, currentID)
	if err != nil {
		return fmt.Errorf("failed to load documents for scan %d: %w", currentID, err)
	}

	// Generate comparison result
	comparison := compareReports(previous, current)
	comparison.DocumentChanges = compareDocuments(previousDocs, currentDocs)

	// Output the result
	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two scan reports.
type ComparisonResult struct {
	// Root is the compared documentation root.
	Root string `json:"root"`

	// PreviousScan contains metadata about the previous scan.
	PreviousScan ScanSummary `json:"previous_scan"`

	// CurrentScan contains metadata about the current scan.
	CurrentScan ScanSummary `json:"current_scan"`

	// NewFindings contains findings that are new in the current scan.
	NewFindings []model.Finding `json:"new_findings,omitempty"`

	// ResolvedFindings contains findings that were in the previous scan but not in current.
	ResolvedFindings []model.Finding `json:"resolved_findings,omitempty"`

	// UnchangedCount is the number of findings that remain unchanged.
	UnchangedCount int `json:"unchanged_count"`

	// HealthChange describes the overall change in documentation health.
	HealthChange HealthChange `json:"health_change"`

	// DocumentChanges describes how the document set changed between scans.
	DocumentChanges DocumentChanges `json:"document_changes"`
}

// ScanSummary contains metadata about a scan for comparison display.
type ScanSummary struct {
	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// TotalFindings is the total number of findings in this scan.
	TotalFindings int `json:"total_findings"`

	// CriticalCount is the number of critical findings.
	CriticalCount int `json:"critical_count"`

	// HighCount is the number of high severity findings.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity findings.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity findings.
	LowCount int `json:"low_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`
}

// HealthChange describes the change in documentation health between scans.
type HealthChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// CriticalDelta is the change in critical findings count.
	CriticalDelta int `json:"critical_delta"`

	// HighDelta is the change in high severity findings count.
	HighDelta int `json:"high_delta"`

	// MediumDelta is the change in medium severity findings count.
	MediumDelta int `json:"medium_delta"`

	// LowDelta is the change in low severity findings count.
	LowDelta int `json:"low_delta"`

	// InfoDelta is the change in informational findings count.
	InfoDelta int `json:"info_delta"`
}

// DocumentChanges lists how documents moved between two scans, based on
// content hashes recorded with each scan.
type DocumentChanges struct {
	// Added are document paths present only in the current scan.
	Added []string `json:"added,omitempty"`

	// Removed are document paths present only in the previous scan.
	Removed []string `json:"removed,omitempty"`

	// Edited are documents present in both scans with different content.
	Edited []string `json:"edited,omitempty"`
}

// compareReports compares two scan reports and generates a comparison result.
func compareReports(previous, current *model.DocScanReport) *ComparisonResult {
	result := &ComparisonResult{
		Root: current.Root,
	}

	result.PreviousScan = summarizeScan(previous)
	result.CurrentScan = summarizeScan(current)

	// Build finding maps for comparison
	previousFindings := make(map[string]model.Finding)
	currentFindings := make(map[string]model.Finding)

	if previous.SimpleReport != nil {
		for _, f := range previous.SimpleReport.Findings {
			previousFindings[findingKey(f)] = f
		}
	}
	if current.SimpleReport != nil {
		for _, f := range current.SimpleReport.Findings {
			currentFindings[findingKey(f)] = f
		}
	}

	// Find new findings (in current but not in previous)
	for key, finding := range currentFindings {
		if _, exists := previousFindings[key]; !exists {
			result.NewFindings = append(result.NewFindings, finding)
		}
	}

	// Find resolved findings (in previous but not in current)
	for key, finding := range previousFindings {
		if _, exists := currentFindings[key]; !exists {
			result.ResolvedFindings = append(result.ResolvedFindings, finding)
		} else {
			result.UnchangedCount++
		}
	}

	// Map iteration order is random; sort so repeated runs print the
	// same comparison.
	sortFindingsByKey(result.NewFindings)
	sortFindingsByKey(result.ResolvedFindings)

	result.HealthChange = calculateHealthChange(result.PreviousScan, result.CurrentScan)

	return result
}

// summarizeScan extracts display metadata from a stored scan report.
func summarizeScan(scanReport *model.DocScanReport) ScanSummary {
	if scanReport.SimpleReport == nil {
		return ScanSummary{DateScanned: scanReport.DateScanned}
	}
	return ScanSummary{
		DateScanned:   scanReport.DateScanned,
		TotalFindings: len(scanReport.SimpleReport.Findings),
		CriticalCount: scanReport.SimpleReport.CriticalCount,
		HighCount:     scanReport.SimpleReport.HighCount,
		MediumCount:   scanReport.SimpleReport.MediumCount,
		LowCount:      scanReport.SimpleReport.LowCount,
		InfoCount:     scanReport.SimpleReport.InfoCount,
	}
}

// findingKey generates a unique key for a finding for comparison purposes.
// Line numbers are excluded so that an unrelated edit above a finding does
// not report it as both resolved and new.
func findingKey(f model.Finding) string {
	return f.Type + "|" + f.Value + "|" + f.Location
}

// sortFindingsByKey orders findings by their comparison key.
func sortFindingsByKey(findings []model.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		return findingKey(findings[i]) < findingKey(findings[j])
	})
}

// compareDocuments diffs the document snapshots of two scans by content hash.
func compareDocuments(previous, current []database.DocumentRecord) DocumentChanges {
	previousByPath := make(map[string]database.DocumentRecord, len(previous))
	for _, doc := range previous {
		previousByPath[doc.Path] = doc
	}
	currentByPath := make(map[string]database.DocumentRecord, len(current))
	for _, doc := range current {
		currentByPath[doc.Path] = doc
	}

	var changes DocumentChanges
	for _, doc := range current {
		prev, existed := previousByPath[doc.Path]
		switch {
		case !existed:
			changes.Added = append(changes.Added, doc.Path)
		case prev.Hash != doc.Hash:
			changes.Edited = append(changes.Edited, doc.Path)
		}
	}
	for _, doc := range previous {
		if _, exists := currentByPath[doc.Path]; !exists {
			changes.Removed = append(changes.Removed, doc.Path)
		}
	}

	return changes
}

// calculateHealthChange calculates the change in documentation health
// between two scans.
func calculateHealthChange(previous, current ScanSummary) HealthChange {
	change := HealthChange{
		CriticalDelta: current.CriticalCount - previous.CriticalCount,
		HighDelta:     current.HighCount - previous.HighCount,
		MediumDelta:   current.MediumCount - previous.MediumCount,
		LowDelta:      current.LowCount - previous.LowCount,
		InfoDelta:     current.InfoCount - previous.InfoCount,
	}

	// Determine overall direction based on weighted score
	// Critical and High severity changes have more weight
	previousScore := previous.CriticalCount*100 + previous.HighCount*50 + previous.MediumCount*10 + previous.LowCount*5 + previous.InfoCount
	currentScore := current.CriticalCount*100 + current.HighCount*50 + current.MediumCount*10 + current.LowCount*5 + current.InfoCount

	if currentScore < previousScore {
		change.Direction = healthDirectionImproved
	} else if currentScore > previousScore {
		change.Direction = healthDirectionWorsened
	} else {
		change.Direction = healthDirectionUnchanged
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult) error {
	fmt.Printf("# Scan Comparison: %s\n\n", result.Root)

	// Health change summary
	fmt.Println("## Summary")
	fmt.Printf("\n**Documentation Health:** %s\n\n", formatHealthDirection(result.HealthChange.Direction))

	// Scan metadata table
	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousScan.DateScanned.Format("2006-01-02 15:04"),
		result.CurrentScan.DateScanned.Format("2006-01-02 15:04"))
	fmt.Printf("| Critical | %d | %d | %s |\n",
		result.PreviousScan.CriticalCount,
		result.CurrentScan.CriticalCount,
		formatDelta(result.HealthChange.CriticalDelta))
	fmt.Printf("| High | %d | %d | %s |\n",
		result.PreviousScan.HighCount,
		result.CurrentScan.HighCount,
		formatDelta(result.HealthChange.HighDelta))
	fmt.Printf("| Medium | %d | %d | %s |\n",
		result.PreviousScan.MediumCount,
		result.CurrentScan.MediumCount,
		formatDelta(result.HealthChange.MediumDelta))
	fmt.Printf("| Low | %d | %d | %s |\n",
		result.PreviousScan.LowCount,
		result.CurrentScan.LowCount,
		formatDelta(result.HealthChange.LowDelta))
	fmt.Printf("| Info | %d | %d | %s |\n",
		result.PreviousScan.InfoCount,
		result.CurrentScan.InfoCount,
		formatDelta(result.HealthChange.InfoDelta))
	fmt.Printf("| **Total** | **%d** | **%d** | **%s** |\n",
		result.PreviousScan.TotalFindings,
		result.CurrentScan.TotalFindings,
		formatDelta(result.CurrentScan.TotalFindings-result.PreviousScan.TotalFindings))

	// Document changes
	if len(result.DocumentChanges.Added) > 0 {
		fmt.Printf("\n## Added Documents (%d)\n\n", len(result.DocumentChanges.Added))
		for _, path := range result.DocumentChanges.Added {
			fmt.Printf("- `%s`\n", path)
		}
	}
	if len(result.DocumentChanges.Removed) > 0 {
		fmt.Printf("\n## Removed Documents (%d)\n\n", len(result.DocumentChanges.Removed))
		for _, path := range result.DocumentChanges.Removed {
			fmt.Printf("- ~~`%s`~~\n", path)
		}
	}
	if len(result.DocumentChanges.Edited) > 0 {
		fmt.Printf("\n## Edited Documents (%d)\n\n", len(result.DocumentChanges.Edited))
		for _, path := range result.DocumentChanges.Edited {
			fmt.Printf("- `%s`\n", path)
		}
	}

	// New findings
	if len(result.NewFindings) > 0 {
		fmt.Printf("\n## New Findings (%d)\n\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("- **[%s]** %s: %s\n", f.SeverityText, f.Title, f.Value)
			if f.Location != "" {
				fmt.Printf("  - Location: `%s`\n", f.Location)
			}
		}
	}

	// Resolved findings
	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\n## Resolved Findings (%d)\n\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("- ~~**[%s]** %s: %s~~\n", f.SeverityText, f.Title, f.Value)
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d findings unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Scan Comparison: %s\n", result.Root)
	fmt.Println(strings.Repeat("=", 60))

	// Health change summary
	fmt.Printf("\nDocumentation Health: %s\n", formatHealthDirection(result.HealthChange.Direction))

	// Scan dates
	fmt.Printf("\nPrevious scan: %s\n", result.PreviousScan.DateScanned.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current scan:  %s\n", result.CurrentScan.DateScanned.Format("2006-01-02 15:04:05"))

	// Summary table
	fmt.Println("\nFindings Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Critical",
		result.PreviousScan.CriticalCount, result.CurrentScan.CriticalCount,
		formatDelta(result.HealthChange.CriticalDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "High",
		result.PreviousScan.HighCount, result.CurrentScan.HighCount,
		formatDelta(result.HealthChange.HighDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Medium",
		result.PreviousScan.MediumCount, result.CurrentScan.MediumCount,
		formatDelta(result.HealthChange.MediumDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Low",
		result.PreviousScan.LowCount, result.CurrentScan.LowCount,
		formatDelta(result.HealthChange.LowDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Info",
		result.PreviousScan.InfoCount, result.CurrentScan.InfoCount,
		formatDelta(result.HealthChange.InfoDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousScan.TotalFindings, result.CurrentScan.TotalFindings,
		formatDelta(result.CurrentScan.TotalFindings-result.PreviousScan.TotalFindings))

	// Document changes
	if len(result.DocumentChanges.Added) > 0 {
		fmt.Printf("\nAdded Documents (%d):\n", len(result.DocumentChanges.Added))
		for _, path := range result.DocumentChanges.Added {
			fmt.Printf("  [+] %s\n", path)
		}
	}
	if len(result.DocumentChanges.Removed) > 0 {
		fmt.Printf("\nRemoved Documents (%d):\n", len(result.DocumentChanges.Removed))
		for _, path := range result.DocumentChanges.Removed {
			fmt.Printf("  [-] %s\n", path)
		}
	}
	if len(result.DocumentChanges.Edited) > 0 {
		fmt.Printf("\nEdited Documents (%d):\n", len(result.DocumentChanges.Edited))
		for _, path := range result.DocumentChanges.Edited {
			fmt.Printf("  [~] %s\n", path)
		}
	}

	// New findings
	if len(result.NewFindings) > 0 {
		fmt.Printf("\nNew Findings (%d):\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("  [+] [%s] %s: %s\n", f.SeverityText, f.Title, f.Value)
			if f.Location != "" {
				fmt.Printf("      Location: %s\n", f.Location)
			}
		}
	}

	// Resolved findings
	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\nResolved Findings (%d):\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("  [-] [%s] %s: %s\n", f.SeverityText, f.Title, f.Value)
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d findings\n", result.UnchangedCount)
	}

	return nil
}

// formatHealthDirection formats the health change direction for display.
func formatHealthDirection(direction string) string {
	switch direction {
	case healthDirectionImproved:
		return "IMPROVED (fewer problems)"
	case healthDirectionWorsened:
		return "WORSENED (more problems)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
