// Package app wires the pipeline together: dataset loading, cleaning,
// aggregation, export, and the optional results server. Commands under cmd/
// stay thin and delegate here.
package app
