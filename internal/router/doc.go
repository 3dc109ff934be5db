// Package router fans collected snapshots out to the configured sinks.
//
// The collector publishes each snapshot once; the router copies it into one
// growable buffer per sink (CSV, Postgres) so a slow sink never blocks
// collection or a faster sink.
package router
