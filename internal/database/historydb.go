package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/docscan/internal/model"
)

// HistoryDB provides SQLite-based storage for scan results.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all documentation
// roots rather than one file per root. This simplifies cross-root queries
// and backup/restore operations.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "docscan.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Scans store complete scan results as JSON
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL,
		severity_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_scans_root ON scans(root);
	CREATE INDEX IF NOT EXISTS idx_scans_timestamp ON scans(timestamp);

	-- Per-document snapshots enable change detection between scans
	CREATE TABLE IF NOT EXISTS scan_documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_id INTEGER NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		title TEXT,
		hash TEXT,
		word_count INTEGER DEFAULT 0,
		UNIQUE(scan_id, path)
	);

	CREATE INDEX IF NOT EXISTS idx_docs_scan ON scan_documents(scan_id);
	CREATE INDEX IF NOT EXISTS idx_docs_path ON scan_documents(path);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveScanReport saves a complete scan report as JSON together with a
// per-document snapshot. It returns the new scan's database ID.
func (hdb *HistoryDB) SaveScanReport(ctx context.Context, report *model.DocScanReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	// Severity summary for cheap history listings
	summary := map[string]int{
		"critical": 0,
		"high":     0,
		"medium":   0,
		"low":      0,
		"info":     0,
	}
	if report.SimpleReport != nil {
		summary["critical"] = report.SimpleReport.CriticalCount
		summary["high"] = report.SimpleReport.HighCount
		summary["medium"] = report.SimpleReport.MediumCount
		summary["low"] = report.SimpleReport.LowCount
		summary["info"] = report.SimpleReport.InfoCount
	}
	summaryJSON, _ := json.Marshal(summary) //nolint:errcheck,errchkjson // summary is a simple map; Marshal won't fail

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx,
		`INSERT INTO scans (root, report_json, severity_summary) VALUES (?, ?, ?)`,
		report.Root,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan: %w", err)
	}

	scanID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read scan id: %w", err)
	}

	for _, doc := range report.Documents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scan_documents (scan_id, path, title, hash, word_count) VALUES (?, ?, ?, ?, ?)`,
			scanID,
			doc.Path,
			doc.Title,
			doc.Hash,
			doc.WordCount,
		); err != nil {
			return 0, fmt.Errorf("failed to save document snapshot %s: %w", doc.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scan: %w", err)
	}

	return scanID, nil
}

// LatestScanReport retrieves the most recent scan report for a root.
// Returns nil without error when the root has never been scanned.
func (hdb *HistoryDB) LatestScanReport(ctx context.Context, root string) (*model.DocScanReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, root).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.DocScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListRoots returns every documentation root that has at least one scan.
func (hdb *HistoryDB) ListRoots(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT root FROM scans
	ORDER BY root
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		roots = append(roots, root)
	}

	return roots, rows.Err()
}

// ScanHistory retrieves all scan reports for a root, newest first.
func (hdb *HistoryDB) ScanHistory(ctx context.Context, root string) ([]*model.DocScanReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}
	defer rows.Close()

	var reports []*model.DocScanReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.DocScanReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// ScanMetadata contains summary information about a stored scan.
// This is used for displaying scan history without loading the full report.
type ScanMetadata struct {
	// ID is the unique identifier of the scan in the database.
	ID int64

	// Root is the scanned documentation root.
	Root string

	// Timestamp is when the scan was performed.
	Timestamp time.Time

	// SeveritySummary contains counts of findings by severity level.
	SeveritySummary map[string]int
}

// ScanHistoryWithMetadata retrieves scan metadata for a root, newest first.
// This is more efficient than ScanHistory when only metadata is needed.
func (hdb *HistoryDB) ScanHistoryWithMetadata(ctx context.Context, root string) ([]ScanMetadata, error) {
	query := `
	SELECT id, root, timestamp, severity_summary
	FROM scans
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}
	defer rows.Close()

	var results []ScanMetadata
	for rows.Next() {
		var meta ScanMetadata
		var timestamp string
		var summaryJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.Root, &timestamp, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.SeveritySummary); err != nil {
				meta.SeveritySummary = make(map[string]int)
			}
		} else {
			meta.SeveritySummary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// ScanReportByID retrieves a scan report by its database ID.
// Returns nil without error when no scan has that ID.
func (hdb *HistoryDB) ScanReportByID(ctx context.Context, id int64) (*model.DocScanReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.DocScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// DocumentRecord is a per-document snapshot stored alongside a scan.
type DocumentRecord struct {
	// Path is the document path relative to the root.
	Path string

	// Title is the document's title heading at scan time.
	Title string

	// Hash is the SHA-256 content hash at scan time.
	Hash string

	// WordCount is the approximate prose word count at scan time.
	WordCount int
}

// DocumentsForScan retrieves the document snapshot of a stored scan,
// ordered by path.
func (hdb *HistoryDB) DocumentsForScan(ctx context.Context, scanID int64) ([]DocumentRecord, error) {
	query := `
	SELECT path, title, hash, word_count
	FROM scan_documents
	WHERE scan_id = ?
	ORDER BY path
	`

	rows, err := hdb.db.QueryContext(ctx, query, scanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document snapshot: %w", err)
	}
	defer rows.Close()

	var records []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		var title, hash sql.NullString

		if err := rows.Scan(&rec.Path, &title, &hash, &rec.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan document record: %w", err)
		}
		rec.Title = title.String
		rec.Hash = hash.String
		records = append(records, rec)
	}

	return records, rows.Err()
}

// LatestScanID returns the database ID of the most recent scan for a root,
// and false when the root has never been scanned.
func (hdb *HistoryDB) LatestScanID(ctx context.Context, root string) (int64, bool, error) {
	query := `
	SELECT id FROM scans
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var id int64
	err := hdb.db.QueryRowContext(ctx, query, root).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get latest scan id: %w", err)
	}
	return id, true, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	return time.Time{}
}
