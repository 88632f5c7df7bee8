// Package client is the single gateway between the portal and the
// pre-screen REST backend.
//
// # Overview
//
// HTTPClient resolves every path against one configured base URL and
// attaches, uniformly:
//   - Authorization: Bearer <token>, taken from a TokenSource per request,
//   - X-Request-ID, a fresh UUID used to correlate portal and backend logs.
//
// Request bodies are JSON or multipart; responses are decoded as JSON or
// returned as a binary Blob for document previews.
//
// # Error Handling
//
// Non-2xx responses become *APIError values that wrap one of the sentinel
// errors, so callers match with errors.Is: ErrUnauthorized, ErrValidation,
// ErrNotFound, ErrConflict, ErrRejected, ErrUnavailable. The human message
// is pulled from the JSON body ("message", then "error") when present; use
// Message(err) to read it. Transport failures wrap ErrUnavailable.
//
// No retries are performed anywhere.
//
// # Metrics
//
// Every call is counted and timed in the default Prometheus registry
// (portal_gateway_requests_total, portal_gateway_request_duration_seconds).
package client
