package session

import (
	"context"
	"fmt"
)

// Store is the narrow interface the gateway needs from the external
// identity/data store: read sessions, clear stored mail credentials, and
// prune expired rows. Session creation belongs to the login flow, which
// lives outside this gateway; PutSession exists so that flow (and tests)
// can populate the store.
type Store interface {
	// GetSession returns the session with the given ID, or nil if it does
	// not exist.
	GetSession(ctx context.Context, id string) (*Session, error)

	// PutSession inserts or replaces a session.
	PutSession(ctx context.Context, s *Session) error

	// DeleteSession removes a session by ID. Deleting a missing session is
	// not an error.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes all sessions past their expiry and
	// returns how many were removed.
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// ClearMailCredentials nulls the stored provider email and OAuth tokens
	// for the account with the given email. The record itself is kept.
	ClearMailCredentials(ctx context.Context, email string) error

	// Close releases the underlying store resources.
	Close() error
}

// StoreError wraps a failure of the external store with the operation that
// failed, so callers can log something more useful than the bare SQL error.
type StoreError struct {
	// Op is the store operation that failed ("get_session", "clear_mail_credentials", ...).
	Op string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("session store %s failed: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *StoreError) Unwrap() error {
	return e.Cause
}
