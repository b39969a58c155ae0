// Package model defines the core data structures for docscan.
// It contains the scan report, document representation, findings,
// and severity classification shared across all packages.
package model
