// Package database provides SQLite-based storage for scan history.
// Every completed scan can be persisted together with a per-document
// snapshot, which makes cross-scan comparison and trend queries possible
// without keeping raw reports on disk.
package database
