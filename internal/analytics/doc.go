// Package analytics computes the derived tables of the fuel-market
// pipeline: station counts, average prices and their deviations from the
// national mean, top-N rankings, sales-volume totals, market-value
// estimates and per-capita/per-station ratios.
//
// Every operation is a pure function over the cleaned inputs. State-level
// tables are always keyed by the canonical state roster: counting contexts
// zero-fill absent states, averaging contexts report "no data" instead,
// and the two are never conflated. Aggregate functions never fail for
// data-quality reasons; absence is encoded in the result shape.
//
// All means are arithmetic and unweighted. The national average for a fuel
// is the mean over all stations selling it, not a mean of per-state means.
// No rounding happens here; rendering belongs to the exporter.
package analytics
