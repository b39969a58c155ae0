// Package main provides the entry point for the docscan CLI.
//
// docscan audits markdown documentation trees. It verifies that every
// link and image target exists, that heading hierarchies are well-formed,
// and that embedded assets carry no unwanted metadata.
//
// Usage:
//
//	docscan scan <docs-directory>
//	docscan scan --watch <docs-directory>
//
// See --help for all available options.
package main

// main is the entry point for docscan.
func main() {
	Execute()
}
