// Package exporter turns a computed ResultSet into its published forms:
// human-readable formatted strings, the JSON results artifact that lets a
// later run skip recomputation, and per-table CSV reports.
//
// Formatting is strictly a presentation step. Aggregates carry full float
// precision until they reach this package; nothing upstream rounds.
package exporter
