// Package report builds per-area EMO expiration reports from validated
// records: grouping by area, classifying each record against a reference
// date and lookahead window, and computing the cross-area totals and
// priority breakdown consumed by the exporter.
package report
