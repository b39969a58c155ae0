// Package main provides the entry point for the docscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for docscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docscan",
		Short: "Auditing tool for markdown documentation trees",
		Long: `docscan audits markdown documentation trees for broken references and
structural problems. It verifies that every link and image target exists,
that heading hierarchies are well-formed, and that embedded images carry
no unwanted metadata.

Scan results are stored locally so later runs can be compared against
earlier ones.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
