// Package analyzer implements the documentation checks.
// Each check is a CheckAnalyzer that inspects parsed documents and
// produces severity-rated findings; the Analyzer coordinator runs the
// registered checks, deduplicates their findings, and attaches severity
// metadata.
//
// Checks never touch the network: link targets are resolved against the
// asset index built during discovery, and image bytes are read through
// an injected file reader limited to the scanned root.
package analyzer
