// Package manifest reads the CSV tables the evaluation pipeline consumes:
// the split manifest, per-submission hypothesis tables, the forced-alignment
// speech-start table, and the optional manual correction table.
//
// A required column missing from a table header is a SchemaError and fatal
// for that table; no partial processing is attempted.
package manifest
