package server

import (
	"net/http"

	"vendorlink/gateway/pkg/proxy"
	"vendorlink/gateway/pkg/proxy/handlers"
	"vendorlink/gateway/pkg/proxy/middleware"
	"vendorlink/gateway/pkg/upstream"
)

// Handler builds the full route table and middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	backendProxy := handlers.NewProxyHandler(s.router, upstream.TargetBackend, s.logger, s.metrics)
	projects := handlers.NewProjectsHandler(s.router, s.resolver, s.logger, s.metrics)
	segments := handlers.NewSegmentsHandler(s.router, s.logger, s.metrics)
	email := handlers.NewEmailHandler(s.router, s.resolver, s.store, s.logger, s.metrics)

	// Chats: authorization delegated to the backend.
	mux.Handle("GET /chats/{chat_id}/messages", backendProxy)
	mux.Handle("POST /chats/{chat_id}/messages", backendProxy)
	mux.Handle("GET /chats/{chat_id}", backendProxy)
	mux.Handle("PUT /chats/{chat_id}", backendProxy)
	mux.Handle("DELETE /chats/{chat_id}", backendProxy)
	mux.Handle("POST /chats/{chat_id}/summary", backendProxy)
	mux.Handle("GET /chats/{chat_id}/context", backendProxy)

	// Outlook mail integration.
	mux.HandleFunc("GET /email/outlook/callback", email.Callback)
	mux.HandleFunc("POST /email/outlook/disconnect", email.Disconnect)

	// Backend health, proxied.
	mux.Handle("GET /health", backendProxy)

	// Projects. Literal paths take precedence over the wildcard patterns.
	mux.HandleFunc("POST /projects/cancel-indexing", projects.CancelIndexing)
	mux.HandleFunc("GET /projects/details", projects.Details)
	mux.HandleFunc("GET /projects/list", projects.List)
	mux.HandleFunc("POST /projects/index", projects.Index)
	mux.Handle("GET /projects/{project_id}/chats", backendProxy)
	mux.Handle("POST /projects/{project_id}/chats", backendProxy)
	mux.Handle("GET /projects/{project_id}/quotes", backendProxy)
	mux.Handle("POST /projects/{project_id}/quotes", backendProxy)

	mux.Handle("GET /quotes/{quote_id}", backendProxy)

	mux.Handle("GET /segments", segments)

	mux.Handle("GET /vendor-services", backendProxy)
	mux.Handle("POST /vendor-services", backendProxy)
	mux.Handle("PUT /vendor-services/{id}", backendProxy)
	mux.Handle("DELETE /vendor-services/{id}", backendProxy)

	mux.Handle("GET /vendors/me/leads", backendProxy)
	mux.Handle("GET /vendors/me/billing", backendProxy)

	// Gateway-local endpoints.
	mux.HandleFunc("GET /healthz", handleHealthz)
	if s.cfg.Telemetry.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Telemetry.Metrics.Path, s.metrics.Handler())
	}

	var handler http.Handler = mux
	if s.cfg.Telemetry.Metrics.Enabled {
		handler = middleware.MetricsMiddleware(s.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(s.logger)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(s.logger)(handler)

	return handler
}

// handleHealthz reports gateway liveness without touching any upstream.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	proxy.WriteJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}
