package session

import "time"

// Identity is the authenticated caller resolved from a session. It is
// resolved once per inbound request and never cached across requests.
type Identity struct {
	// Email is the caller's account email.
	Email string

	// UserID is the caller's stable user identifier.
	UserID string
}

// Session is one row in the session store.
type Session struct {
	// ID is the opaque session identifier carried by the browser cookie.
	ID string

	// UserID is the authenticated user's identifier.
	UserID string

	// Email is the authenticated user's email.
	Email string

	// CreatedAt is when the session was established.
	CreatedAt time.Time

	// ExpiresAt is when the session stops being valid. Expired sessions
	// resolve to no identity and are eligible for pruning.
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
