// Package dataprocessing prepares the raw datasets for aggregation.
//
// It covers the three cleaning stages of the pipeline:
//
//   - station reconciliation: deduplication by place ID and completion
//     against the canonical state roster
//   - price cleaning: the percentile-plus-business-rule outlier policy,
//     applied independently per fuel type
//   - volume normalization: sub-product collapse into the three fuel types
//
// Every stage is a pure function over its inputs. Data-quality problems
// (unknown states, unmapped sub-products, non-numeric cells) are recorded
// in the returned reports and logged; they never abort the pipeline.
package dataprocessing
