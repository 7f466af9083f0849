package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeStore is an in-memory Store for resolver tests.
type fakeStore struct {
	sessions map[string]*Session
	getErr   error
	deleted  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*Session)}
}

func (f *fakeStore) GetSession(ctx context.Context, id string) (*Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.sessions[id], nil
}

func (f *fakeStore) PutSession(ctx context.Context, s *Session) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeStore) DeleteSession(ctx context.Context, id string) error {
	delete(f.sessions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeStore) ClearMailCredentials(ctx context.Context, email string) error {
	return nil
}

func (f *fakeStore) Close() error { return nil }

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/projects/list", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	}
	return req
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		setup  func(*fakeStore)
		cookie string
		wantID *Identity
	}{
		{
			name:   "no cookie",
			setup:  func(f *fakeStore) {},
			cookie: "",
			wantID: nil,
		},
		{
			name:   "unknown session",
			setup:  func(f *fakeStore) {},
			cookie: "missing",
			wantID: nil,
		},
		{
			name: "valid session",
			setup: func(f *fakeStore) {
				f.sessions["s1"] = &Session{
					ID: "s1", UserID: "u1", Email: "u@x.com",
					ExpiresAt: now.Add(time.Hour),
				}
			},
			cookie: "s1",
			wantID: &Identity{Email: "u@x.com", UserID: "u1"},
		},
		{
			name: "expired session is rejected",
			setup: func(f *fakeStore) {
				f.sessions["s2"] = &Session{
					ID: "s2", UserID: "u2", Email: "old@x.com",
					ExpiresAt: now.Add(-time.Minute),
				}
			},
			cookie: "s2",
			wantID: nil,
		},
		{
			name: "store failure fails closed",
			setup: func(f *fakeStore) {
				f.getErr = errors.New("store down")
			},
			cookie: "s1",
			wantID: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			tt.setup(store)

			resolver := NewResolver(store)
			resolver.now = func() time.Time { return now }

			got := resolver.Resolve(requestWithCookie(tt.cookie))

			if tt.wantID == nil {
				if got != nil {
					t.Fatalf("Resolve() = %+v, want nil", got)
				}
			} else {
				if got == nil {
					t.Fatal("Resolve() = nil, want identity")
				}
				if got.Email != tt.wantID.Email || got.UserID != tt.wantID.UserID {
					t.Errorf("Resolve() = %+v, want %+v", got, tt.wantID)
				}
			}

		})
	}
}

func TestResolveCallsStoreOnce(t *testing.T) {
	store := newFakeStore()
	calls := 0
	counting := &countingStore{Store: store, calls: &calls}

	resolver := NewResolver(counting)
	store.sessions["s1"] = &Session{
		ID: "s1", UserID: "u1", Email: "u@x.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	resolver.Resolve(requestWithCookie("s1"))

	if calls != 1 {
		t.Errorf("store called %d times, want exactly 1", calls)
	}
}

func TestResolveExpiredHasNoSideEffects(t *testing.T) {
	store := newFakeStore()
	store.sessions["s2"] = &Session{
		ID: "s2", UserID: "u2", Email: "old@x.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	gets := 0
	resolver := NewResolver(&countingStore{Store: store, calls: &gets})

	if got := resolver.Resolve(requestWithCookie("s2")); got != nil {
		t.Fatalf("Resolve() = %+v, want nil", got)
	}
	if gets != 1 {
		t.Errorf("GetSession called %d times, want exactly 1", gets)
	}
	if len(store.deleted) != 0 {
		t.Errorf("Resolve deleted %v; expired rows belong to the pruner", store.deleted)
	}
}

// countingStore counts GetSession calls.
type countingStore struct {
	Store
	calls *int
}

func (c *countingStore) GetSession(ctx context.Context, id string) (*Session, error) {
	*c.calls++
	return c.Store.GetSession(ctx, id)
}
