// Package splitstore persists prepared reference splits and evaluation run
// history in SQLite.
//
// Reference normalization is the expensive one-time step of split
// preparation; the store caches its output keyed by split name and manifest
// checksum so repeat evaluations skip it. Every scoring and latency run is
// recorded with its report for later inspection.
package splitstore
