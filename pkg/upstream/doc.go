// Package upstream implements the gateway's upstream router: it turns a
// typed request spec into exactly one HTTP call against one of the
// configured backend targets and returns the raw outcome for translation.
//
// Forwarding is at-most-once by contract. The router never retries: a
// network-level failure is reported as *UnavailableError and the caller
// decides how to surface it.
package upstream
