// Package log provides logging functionality with automatic rewriting of
// user-identifying filesystem paths, built on top of the standard slog package.
//
// docscan logs file paths constantly (documents, roots, report files).
// When users attach verbose logs to bug reports, absolute paths leak the
// local username and directory layout. The PathHandler rewrites any
// attribute value that starts with the user's home directory to use a
// "~" prefix before the record reaches the underlying handler.
//
// # Usage
//
//	logger := log.NewPathLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("scanning root",
//	    "root", "/home/alice/thesis/docs", // Logged as "~/thesis/docs"
//	)
//
//	slog.SetDefault(logger)
package log
