// Package civil converts between absolute instants and wall-clock time in the
// reference market timezone (US Eastern).
//
// All contract windows are defined in Eastern wall-clock time, so every
// component that reasons about windows goes through this package. The UTC
// offset is always derived from the calendar date being converted, never from
// the date of the call; this is what keeps conversions correct across the
// daylight-saving transitions.
package civil
