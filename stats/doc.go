// Package stats measures Python source files and compares snapshots.
// It collects per-file line counts and token density for a directory tree
// and computes per-file deltas between two such snapshots.
package stats
