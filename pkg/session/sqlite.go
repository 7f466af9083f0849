package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// schema creates the two tables the gateway touches: sessions and the
// per-account mail credentials written by the Outlook connect flow.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    email TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);

CREATE TABLE IF NOT EXISTS mail_credentials (
    email TEXT PRIMARY KEY,
    provider_email TEXT,
    access_token TEXT,
    refresh_token TEXT,
    updated_at TIMESTAMP NOT NULL
);
`

// SQLiteConfig contains configuration for the SQLite session store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// BusyTimeout is how long a statement waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default store configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/sessions.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the database, enables WAL mode, and
// applies the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, &StoreError{Op: "open", Cause: err}
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		logger: slog.Default().With("component", "session.store"),
	}

	if err := s.initialize(config); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("session store ready", "path", config.Path)
	return s, nil
}

// initialize enables WAL mode, sets the busy timeout, and creates tables.
func (s *SQLiteStore) initialize(config *SQLiteConfig) error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return &StoreError{Op: "enable_wal", Cause: err}
	}

	busyMillis := int64(config.BusyTimeout / time.Millisecond)
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", busyMillis)); err != nil {
		return &StoreError{Op: "set_busy_timeout", Cause: err}
	}

	if _, err := s.db.Exec(schema); err != nil {
		return &StoreError{Op: "create_schema", Cause: err}
	}

	return nil
}

// GetSession implements Store.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, email, created_at, expires_at FROM sessions WHERE id = ?`, id)

	var sess Session
	err := row.Scan(&sess.ID, &sess.UserID, &sess.Email, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "get_session", Cause: err}
	}
	return &sess, nil
}

// PutSession implements Store.
func (s *SQLiteStore) PutSession(ctx context.Context, sess *Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, user_id, email, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.Email, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return &StoreError{Op: "put_session", Cause: err}
	}
	return nil
}

// DeleteSession implements Store.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return &StoreError{Op: "delete_session", Cause: err}
	}
	return nil
}

// DeleteExpiredSessions implements Store.
func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, &StoreError{Op: "delete_expired_sessions", Cause: err}
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, &StoreError{Op: "delete_expired_sessions", Cause: err}
	}
	return removed, nil
}

// ClearMailCredentials implements Store. The row is kept with nulled
// provider fields so reconnecting later is an update, not an insert.
func (s *SQLiteStore) ClearMailCredentials(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE mail_credentials
		 SET provider_email = NULL, access_token = NULL, refresh_token = NULL, updated_at = ?
		 WHERE email = ?`,
		time.Now().UTC(), email)
	if err != nil {
		return &StoreError{Op: "clear_mail_credentials", Cause: err}
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
