// Package poller implements the quote collector.
//
// Every collection tick (1 second by default) the collector samples "now"
// once, walks the registry's active entries, and fetches the CLOB book plus
// the spot price for each with bounded concurrency. A tick whose cached
// window no longer contains the sampled instant is skipped and the registry
// is nudged to re-resolve that slot.
package poller
