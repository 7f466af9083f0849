package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vendorlink/gateway/pkg/session"
	"vendorlink/gateway/pkg/upstream"
)

// upstreamDouble is a scripted upstream server that records calls.
type upstreamDouble struct {
	server *httptest.Server
	calls  atomic.Int32

	status   int
	body     string
	header   http.Header
	lastPath atomic.Value // string: path?query of last request
}

func newUpstreamDouble(t *testing.T, status int, body string) *upstreamDouble {
	t.Helper()

	d := &upstreamDouble{status: status, body: body, header: http.Header{}}
	d.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.calls.Add(1)
		d.lastPath.Store(r.URL.RequestURI())
		for k, vals := range d.header {
			for _, v := range vals {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(d.status)
		w.Write([]byte(d.body))
	}))
	t.Cleanup(d.server.Close)
	return d
}

func (d *upstreamDouble) path() string {
	p, _ := d.lastPath.Load().(string)
	return p
}

// newTestRouter points both targets at the same upstream double.
func newTestRouter(t *testing.T, d *upstreamDouble) *upstream.Router {
	t.Helper()

	router := upstream.NewRouter(upstream.Targets{
		Backend: upstream.TargetConfig{BaseURL: d.server.URL},
		AI:      upstream.TargetConfig{BaseURL: d.server.URL, FunctionKey: "test-key"},
	}, 5*time.Second)
	t.Cleanup(func() { router.Close() })
	return router
}

// deadRouter points at a closed server so every forward fails at transport level.
func deadRouter(t *testing.T) *upstream.Router {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	router := upstream.NewRouter(upstream.Targets{
		Backend: upstream.TargetConfig{BaseURL: srv.URL},
		AI:      upstream.TargetConfig{BaseURL: srv.URL},
	}, time.Second)
	t.Cleanup(func() { router.Close() })
	return router
}

// memoryStore is an in-memory session.Store for handler tests.
type memoryStore struct {
	sessions map[string]*session.Session
	cleared  []string
	clearErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]*session.Session)}
}

func (m *memoryStore) GetSession(ctx context.Context, id string) (*session.Session, error) {
	return m.sessions[id], nil
}

func (m *memoryStore) PutSession(ctx context.Context, s *session.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memoryStore) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *memoryStore) ClearMailCredentials(ctx context.Context, email string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = append(m.cleared, email)
	return nil
}

func (m *memoryStore) Close() error { return nil }

// authedRequest returns a request carrying a valid session cookie for u@x.com.
func authedRequest(t *testing.T, store *memoryStore, method, target string) *http.Request {
	t.Helper()

	store.sessions["sess-1"] = &session.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Email:     "u@x.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sess-1"})
	return req
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
