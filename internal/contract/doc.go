// Package contract implements the temporal market window resolver for
// Polymarket crypto up/down contracts.
//
// An up/down contract covers one time bucket of a fixed cadence (15-minute,
// hourly, or daily) for one asset. The package answers three questions:
//
//   - which slug names the contract tradable right now (ActiveSlug)
//   - what window an arbitrary catalogue slug refers to (DecodeSlug)
//   - whether an instant falls inside a window (Window.Contains)
//
// Everything is evaluated in Eastern wall-clock time via the civil package.
// Daily contracts roll over at noon Eastern, not midnight: at 12:00 ET the
// tradable daily contract is already labelled with tomorrow's date.
//
// The package is pure. It performs no I/O, holds no state, and is safe for
// concurrent use. Callers should sample "now" once per resolution pass and
// thread the same instant through encode, decode, and containment checks.
package contract
