package session

import (
	"log/slog"
	"net/http"
	"time"
)

// CookieName is the browser cookie carrying the session ID.
const CookieName = "vendorlink_session"

// Resolver resolves the authenticated identity for an inbound request.
// It calls the store exactly once per invocation, never retries, and has
// no side effects. Expired rows are left in place for the pruner.
type Resolver struct {
	store  Store
	logger *slog.Logger

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{
		store:  store,
		logger: slog.Default().With("component", "session.resolver"),
		now:    time.Now,
	}
}

// Resolve returns the caller's identity, or nil when there is none.
// A missing cookie, an unknown or expired session, and a store failure all
// resolve to nil: authorization checks fail closed.
func (r *Resolver) Resolve(req *http.Request) *Identity {
	cookie, err := req.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := r.store.GetSession(req.Context(), cookie.Value)
	if err != nil {
		r.logger.Warn("session lookup failed, treating as unauthenticated", "error", err)
		return nil
	}
	if sess == nil {
		return nil
	}

	if sess.Expired(r.now()) {
		return nil
	}

	return &Identity{Email: sess.Email, UserID: sess.UserID}
}
