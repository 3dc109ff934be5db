// Package api provides REST clients for the gatherer's external price sources.
//
// Endpoints:
//   - Gamma (market catalogue): https://gamma-api.polymarket.com
//   - CLOB (order books / midpoints): https://clob.polymarket.com
//   - Spot (reference exchange): https://api.binance.com
//
// All endpoints used here are public and unauthenticated. Clients share the
// same retry/backoff behavior and surface HTTP failures as *APIError.
package api
