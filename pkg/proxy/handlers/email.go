package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"vendorlink/gateway/pkg/proxy"
	"vendorlink/gateway/pkg/session"
	"vendorlink/gateway/pkg/telemetry/metrics"
	"vendorlink/gateway/pkg/upstream"
)

const (
	// accountPath is where OAuth failures land the browser.
	accountPath = "/account"

	// oauthFailedCode is the error code attached to every failed callback redirect.
	oauthFailedCode = "outlook_auth_failed"
)

// oauthCallbackFallback is returned when the backend's non-redirect response
// body is not valid JSON.
var oauthCallbackFallback = json.RawMessage(`{"error":"OAuth callback failed"}`)

// EmailHandler serves the Outlook mail integration routes: the OAuth
// callback relay and credential disconnect.
type EmailHandler struct {
	router   *upstream.Router
	resolver *session.Resolver
	store    session.Store
	logger   *slog.Logger
	metrics  *metrics.Collector
}

// NewEmailHandler creates the email handler.
func NewEmailHandler(router *upstream.Router, resolver *session.Resolver, store session.Store, logger *slog.Logger, m *metrics.Collector) *EmailHandler {
	return &EmailHandler{
		router:   router,
		resolver: resolver,
		store:    store,
		logger:   logger,
		metrics:  m,
	}
}

// Callback handles the provider's OAuth redirect. It never performs the
// token exchange itself: it relays code and state to the backend with
// redirects disabled, then either replays the backend's redirect to the
// browser verbatim or returns the backend's JSON error. Every path ends in
// a navigable page or JSON, never a raw transport error.
func (h *EmailHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if providerErr := q.Get("error"); providerErr != "" {
		h.logger.Warn("oauth provider returned error", "error", providerErr)
		h.redirectAccountError(w, r, providerErr)
		return
	}

	code := q.Get("code")
	if code == "" {
		h.redirectAccountError(w, r, "missing_code")
		return
	}

	path := "/api/email/outlook/callback?code=" + url.QueryEscape(code)
	if state := q.Get("state"); state != "" {
		path += "&state=" + url.QueryEscape(state)
	}

	outcome, err := forward(r.Context(), h.router, h.metrics, upstream.RequestSpec{
		Target:           upstream.TargetBackend,
		Method:           http.MethodGet,
		Path:             path,
		DisableRedirects: true,
	})
	if err != nil {
		h.logger.Error("oauth callback exchange failed", "error", err)
		h.redirectAccountError(w, r, "server_error")
		return
	}

	if location := outcome.Header.Get("Location"); outcome.StatusCode == http.StatusFound && location != "" {
		// Replay the backend's redirect verbatim.
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusFound)
		return
	}

	proxy.WriteJSON(w, outcome.StatusCode, proxy.TryDecodeDefault(outcome.Body, oauthCallbackFallback))
}

// Disconnect clears the caller's stored mail credentials. Requires identity.
func (h *EmailHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	identity := requireIdentity(h.resolver, h.metrics, w, r)
	if identity == nil {
		return
	}

	if err := h.store.ClearMailCredentials(r.Context(), identity.Email); err != nil {
		h.logger.Error("failed to clear mail credentials", "email", identity.Email, "error", err)
		proxy.WriteError(w, http.StatusInternalServerError, "Failed to disconnect")
		return
	}

	proxy.WriteJSON(w, http.StatusOK, successBody{Success: true})
}

// redirectAccountError sends the browser to the account page with the
// failure code and message in the query string.
func (h *EmailHandler) redirectAccountError(w http.ResponseWriter, r *http.Request, message string) {
	v := url.Values{}
	v.Set("error", oauthFailedCode)
	v.Set("message", message)
	http.Redirect(w, r, accountPath+"?"+v.Encode(), http.StatusFound)
}
