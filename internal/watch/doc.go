// Package watch re-runs documentation scans when files under the root change.
package watch
