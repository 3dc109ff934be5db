// Package writer implements the snapshot sinks.
//
// Each sink consumes one router buffer, accumulates rows into a batch, and
// flushes either when the batch is full or on the flush ticker (60 seconds by
// default, matching the persistence cadence of the collector). Two sinks
// exist: a CSV sink writing one file per asset per UTC day, and an optional
// Postgres sink batching inserts with ON CONFLICT DO NOTHING.
package writer
