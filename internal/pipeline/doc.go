// Package pipeline orchestrates the scan workflow as an ordered sequence
// of steps: discovery, parsing, analysis, and summarization. Each step
// receives the accumulated report and may enrich it. The batch processor
// runs the same pipeline over multiple documentation roots concurrently.
package pipeline
