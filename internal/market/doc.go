// Package market implements the contract registry.
//
// The registry owns the mutable "currently believed active" cache, one entry
// per asset and cadence. Window arithmetic itself is stateless and lives in
// package contract; this package decides when to recompute, verifies predicted
// slugs against the Gamma catalogue, and falls back to a catalogue scan when a
// predicted slug is not listed yet.
package market
