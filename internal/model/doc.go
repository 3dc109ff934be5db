// Package model defines shared data types used across the gatherer.
//
// Conventions:
//   - Prices: float64 dollars (Polymarket shares trade in $0.00-$1.00)
//   - Timestamps: int64 microseconds since Unix epoch
//   - IDs: string for slugs and CLOB token ids, uuid.UUID for the run id
package model
