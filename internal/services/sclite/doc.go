// Package sclite wraps the NIST SCTK sclite alignment tool as an alternative
// scoring backend.
//
// References and hypotheses are written as trn files with sequential wsj-style
// tags, sclite emits an SGML alignment, and the PATH blocks are parsed back
// into per-utterance results. Annotator UNK tokens are resolved during parsing
// so a word the annotator could not hear never counts against the hypothesis.
package sclite
