// Package session resolves the authenticated caller for identity-gated
// routes and owns the gateway's view of the external identity/data store:
// session lookup, expiry enforcement, stored mail-credential clearing, and
// scheduled pruning of expired sessions.
//
// Resolution fails closed: any store failure is treated as "no identity".
package session
