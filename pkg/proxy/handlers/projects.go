package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"vendorlink/gateway/pkg/proxy"
	"vendorlink/gateway/pkg/session"
	"vendorlink/gateway/pkg/telemetry/metrics"
	"vendorlink/gateway/pkg/upstream"
)

// ProjectsHandler serves the project routes that are not plain pass-through:
// the AI-backend lookups keyed by project or user, and indexing control.
type ProjectsHandler struct {
	router   *upstream.Router
	resolver *session.Resolver
	logger   *slog.Logger
	metrics  *metrics.Collector
}

// NewProjectsHandler creates the projects handler.
func NewProjectsHandler(router *upstream.Router, resolver *session.Resolver, logger *slog.Logger, m *metrics.Collector) *ProjectsHandler {
	return &ProjectsHandler{
		router:   router,
		resolver: resolver,
		logger:   logger,
		metrics:  m,
	}
}

// Details proxies GET /projects/details to the AI backend's project lookup.
// Requires identity and a project_id query parameter.
func (h *ProjectsHandler) Details(w http.ResponseWriter, r *http.Request) {
	if requireIdentity(h.resolver, h.metrics, w, r) == nil {
		return
	}

	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		proxy.WriteError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	outcome, err := forward(r.Context(), h.router, h.metrics, upstream.RequestSpec{
		Target: upstream.TargetAI,
		Method: http.MethodGet,
		Path:   "/api/get_project?project_id=" + url.QueryEscape(projectID),
	})
	if err != nil {
		proxy.WriteForwardError(h.logger, w, err)
		return
	}

	proxy.WriteUpstream(w, outcome)
}

// List proxies GET /projects/list to the AI backend, scoped to the caller's
// own email. Requires identity.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := requireIdentity(h.resolver, h.metrics, w, r)
	if identity == nil {
		return
	}

	outcome, err := forward(r.Context(), h.router, h.metrics, upstream.RequestSpec{
		Target: upstream.TargetAI,
		Method: http.MethodGet,
		Path:   "/api/list_projects?user_email=" + url.QueryEscape(identity.Email),
	})
	if err != nil {
		proxy.WriteForwardError(h.logger, w, err)
		return
	}

	proxy.WriteUpstream(w, outcome)
}

// Index proxies POST /projects/index to the backend's indexing endpoint.
func (h *ProjectsHandler) Index(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		proxy.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := forward(r.Context(), h.router, h.metrics, upstream.RequestSpec{
		Target: upstream.TargetBackend,
		Method: http.MethodPost,
		Path:   "/api/index",
		Body:   body,
	})
	if err != nil {
		proxy.WriteForwardError(h.logger, w, err)
		return
	}

	proxy.WriteUpstream(w, outcome)
}

// CancelIndexing proxies POST /projects/cancel-indexing to the backend's
// cancel endpoint. Requires a project_id query parameter; no upstream call
// is made without one.
func (h *ProjectsHandler) CancelIndexing(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		proxy.WriteError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		proxy.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := forward(r.Context(), h.router, h.metrics, upstream.RequestSpec{
		Target: upstream.TargetBackend,
		Method: http.MethodPost,
		Path:   "/api/cancel?project_id=" + url.QueryEscape(projectID),
		Body:   body,
	})
	if err != nil {
		proxy.WriteForwardError(h.logger, w, err)
		return
	}

	proxy.WriteUpstream(w, outcome)
}
