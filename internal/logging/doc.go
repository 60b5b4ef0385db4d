// Package logging constructs the slog loggers used by asrscore.
//
// Two output formats are supported: a human-oriented console format for
// interactive use and line-delimited JSON for captured logs. Level and
// format come from configuration; the console handler promotes the
// component and utterance_id attributes into the header line.
package logging
