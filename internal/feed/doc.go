// Package feed maintains a live spot price cache over a websocket stream.
//
// The feed subscribes to the exchange's combined trade stream, keeps the last
// traded price per asset, and reconnects with exponential backoff when the
// connection drops. The collector consults the cache before falling back to
// the REST ticker; a price older than StaleAfter is treated as absent.
package feed
