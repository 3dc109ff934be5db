// Package database provides the PostgreSQL connection pool for the gatherer.
//
// One pool backs the snapshots table. The pool is optional at runtime: when
// the Postgres sink is disabled the gatherer runs CSV-only and never connects.
package database
