package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "sessions.db")

	store, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess := &Session{
		ID:        "abc123",
		UserID:    "user-1",
		Email:     "u@x.com",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		ExpiresAt: time.Now().UTC().Add(time.Hour).Truncate(time.Second),
	}

	if err := store.PutSession(ctx, sess); err != nil {
		t.Fatalf("PutSession() error = %v", err)
	}

	got, err := store.GetSession(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetSession() = nil, want session")
	}
	if got.UserID != sess.UserID || got.Email != sess.Email {
		t.Errorf("GetSession() = %+v, want %+v", got, sess)
	}
}

func TestSQLiteStoreGetMissingSession(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetSession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetSession() = %+v, want nil for missing session", got)
	}
}

func TestSQLiteStoreDeleteSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess := &Session{
		ID: "gone", UserID: "u", Email: "u@x.com",
		CreatedAt: time.Now().UTC(), ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if err := store.PutSession(ctx, sess); err != nil {
		t.Fatalf("PutSession() error = %v", err)
	}

	if err := store.DeleteSession(ctx, "gone"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	got, err := store.GetSession(ctx, "gone")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got != nil {
		t.Error("session still present after delete")
	}

	// Deleting again is not an error.
	if err := store.DeleteSession(ctx, "gone"); err != nil {
		t.Errorf("DeleteSession() on missing session error = %v", err)
	}
}

func TestSQLiteStoreDeleteExpiredSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	sessions := []*Session{
		{ID: "live", UserID: "u1", Email: "a@x.com", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		{ID: "dead1", UserID: "u2", Email: "b@x.com", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		{ID: "dead2", UserID: "u3", Email: "c@x.com", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
	}
	for _, s := range sessions {
		if err := store.PutSession(ctx, s); err != nil {
			t.Fatalf("PutSession(%s) error = %v", s.ID, err)
		}
	}

	removed, err := store.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	live, err := store.GetSession(ctx, "live")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if live == nil {
		t.Error("live session was pruned")
	}
}

func TestSQLiteStoreClearMailCredentials(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO mail_credentials (email, provider_email, access_token, refresh_token, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		"u@x.com", "u@outlook.com", "at-123", "rt-456", time.Now().UTC())
	if err != nil {
		t.Fatalf("seed credentials: %v", err)
	}

	if err := store.ClearMailCredentials(ctx, "u@x.com"); err != nil {
		t.Fatalf("ClearMailCredentials() error = %v", err)
	}

	var providerEmail, accessToken, refreshToken *string
	row := store.db.QueryRowContext(ctx,
		`SELECT provider_email, access_token, refresh_token FROM mail_credentials WHERE email = ?`,
		"u@x.com")
	if err := row.Scan(&providerEmail, &accessToken, &refreshToken); err != nil {
		t.Fatalf("read back credentials: %v", err)
	}

	if providerEmail != nil || accessToken != nil || refreshToken != nil {
		t.Errorf("credentials not cleared: provider=%v access=%v refresh=%v",
			providerEmail, accessToken, refreshToken)
	}
}
