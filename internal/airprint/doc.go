// Package airprint provides an HTTP client for the AirPrint sharing daemon.
//
// # Overview
//
// The daemon detects local USB printers and publishes selected ones over
// IPP/mDNS. This package is the client side of its small JSON API:
//
//   - GET  /api/printers: every detected printer
//   - GET  /api/printers/shared: printers currently published
//   - POST /api/printers/{id}/share: publish, returns a confirmation message
//   - POST /api/printers/{id}/unshare: stop publishing
//   - PUT  /api/language: switch the daemon's message language
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: airshare/0.1
//   - Carry a fresh X-Request-ID so daemon logs can be correlated
//   - Have a 5-second timeout unless NewClientWithTimeout says otherwise
//
// Failures come back as wrapped errors. Non-2xx responses are *APIError
// values carrying the daemon's own error text, which callers surface to the
// user verbatim:
//
//	var apiErr *airprint.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("daemon said: %s", apiErr.Message)
//	}
//
// # Status Decoding
//
// The daemon serializes printer status as a tagged enum: unit variants are
// plain strings ("Online", "Busy") and the error variant is an object
// ({"Error": "paper jam"}). RawStatus accepts both and Device.Online compares
// the normalized value against "online".
//
// # Design Rationale
//
// No retries and no caching live here. Refresh cadence belongs to the app
// poller and retry policy to the caller.
package airprint
