// Command asrscore scores ASR competition submissions: it builds normalized
// reference sets from manifests, computes min-two-refs WER/CER for hypothesis
// submissions, and measures streaming latency from partial-result events.
package main
