// Package services provides the shared error taxonomy and context
// annotation helpers used across evaluation components.
//
// Components tag failures with one of the exported sentinel errors via
// Wrap so callers can classify them with errors.Is without depending on
// component-specific error types. Per-utterance errors are collected and
// reported; they never abort a batch.
package services
