package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vendorlink/gateway/pkg/session"
	"vendorlink/gateway/pkg/telemetry/logging"
)

func newProjectsHandler(t *testing.T, d *upstreamDouble, store *memoryStore) *ProjectsHandler {
	t.Helper()

	var router = deadRouter(t)
	if d != nil {
		router = newTestRouter(t, d)
	}
	return NewProjectsHandler(router, session.NewResolver(store), testLogger(), nil)
}

func TestDetailsRequiresIdentity(t *testing.T) {
	d := newUpstreamDouble(t, 200, "{}")
	h := newProjectsHandler(t, d, newMemoryStore())

	rec := httptest.NewRecorder()
	h.Details(rec, httptest.NewRequest("GET", "/projects/details?project_id=p1", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if d.calls.Load() != 0 {
		t.Errorf("upstream calls = %d, want 0", d.calls.Load())
	}
}

func TestDetailsRequiresProjectID(t *testing.T) {
	d := newUpstreamDouble(t, 200, "{}")
	store := newMemoryStore()
	h := newProjectsHandler(t, d, store)

	rec := httptest.NewRecorder()
	h.Details(rec, authedRequest(t, store, "GET", "/projects/details"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "project_id is required") {
		t.Errorf("body = %q", rec.Body.String())
	}
	if d.calls.Load() != 0 {
		t.Errorf("upstream calls = %d, want 0", d.calls.Load())
	}
}

func TestDetailsForwardsToAIBackend(t *testing.T) {
	d := newUpstreamDouble(t, 200, `{"project":"p1"}`)
	store := newMemoryStore()
	h := newProjectsHandler(t, d, store)

	rec := httptest.NewRecorder()
	h.Details(rec, authedRequest(t, store, "GET", "/projects/details?project_id=p1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := d.path(); got != "/api/get_project?project_id=p1" {
		t.Errorf("upstream path = %q", got)
	}
}

func TestListScopedToCallerEmail(t *testing.T) {
	d := newUpstreamDouble(t, 200, `[]`)
	store := newMemoryStore()
	h := newProjectsHandler(t, d, store)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(t, store, "GET", "/projects/list"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := d.path(); got != "/api/list_projects?user_email=u%40x.com" {
		t.Errorf("upstream path = %q", got)
	}
}

func TestListStampsEmailIntoRequestContext(t *testing.T) {
	d := newUpstreamDouble(t, 200, `[]`)
	store := newMemoryStore()
	h := newProjectsHandler(t, d, store)

	req := authedRequest(t, store, "GET", "/projects/list")
	h.List(httptest.NewRecorder(), req)

	if got := logging.UserEmailFrom(req.Context()); got != "u@x.com" {
		t.Errorf("request context email = %q, want %q", got, "u@x.com")
	}
}

func TestListRequiresIdentity(t *testing.T) {
	d := newUpstreamDouble(t, 200, `[]`)
	h := newProjectsHandler(t, d, newMemoryStore())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/projects/list", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if d.calls.Load() != 0 {
		t.Errorf("upstream calls = %d, want 0", d.calls.Load())
	}
}

func TestCancelIndexingRequiresProjectID(t *testing.T) {
	d := newUpstreamDouble(t, 200, "{}")
	h := newProjectsHandler(t, d, newMemoryStore())

	rec := httptest.NewRecorder()
	h.CancelIndexing(rec, httptest.NewRequest("POST", "/projects/cancel-indexing", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "project_id is required") {
		t.Errorf("body = %q", rec.Body.String())
	}
	if d.calls.Load() != 0 {
		t.Errorf("upstream calls = %d, want 0", d.calls.Load())
	}
}

func TestCancelIndexingForwards(t *testing.T) {
	d := newUpstreamDouble(t, 202, `{"cancelled":true}`)
	h := newProjectsHandler(t, d, newMemoryStore())

	rec := httptest.NewRecorder()
	h.CancelIndexing(rec, httptest.NewRequest("POST", "/projects/cancel-indexing?project_id=p9", nil))

	if rec.Code != 202 {
		t.Fatalf("status = %d, want upstream 202 passed through", rec.Code)
	}
	if got := d.path(); got != "/api/cancel?project_id=p9" {
		t.Errorf("upstream path = %q", got)
	}
}

func TestIndexForwardsBody(t *testing.T) {
	d := newUpstreamDouble(t, 200, `{"queued":true}`)
	h := newProjectsHandler(t, d, newMemoryStore())

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest("POST", "/projects/index", strings.NewReader(`{"project_id":"p3"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := d.path(); got != "/api/index" {
		t.Errorf("upstream path = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "queued") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestProjectsUpstreamUnavailable(t *testing.T) {
	store := newMemoryStore()
	h := newProjectsHandler(t, nil, store)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(t, store, "GET", "/projects/list"))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Backend unavailable") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
