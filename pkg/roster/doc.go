// Package roster provides roster sources for the duty scheduler.
//
// Static keeps a fixed list in memory. File reads a YAML roster from disk on
// every fetch, so edits take effect on the next lookup without a restart.
// The database package provides the table-backed source used in production.
package roster
