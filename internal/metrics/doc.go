// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Snapshot throughput per asset and cadence
//   - Poll errors per upstream source
//   - Registry catalogue refreshes and containment misses
//   - Last observed spot price per asset
package metrics
