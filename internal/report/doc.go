// Package report renders scan results in multiple output formats.
// The simple writer targets terminals, the JSON writer targets tool
// integration, and the markdown writer produces a shareable document
// with a severity chart.
package report
