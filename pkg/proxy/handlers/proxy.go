package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"vendorlink/gateway/pkg/proxy"
	"vendorlink/gateway/pkg/telemetry/metrics"
	"vendorlink/gateway/pkg/upstream"
)

// upstreamPrefix is prepended to every inbound path when building the
// general backend's upstream path.
const upstreamPrefix = "/api"

// ProxyHandler forwards a matched route to an upstream target and passes the
// response through unchanged. It carries no per-route logic: the upstream
// path is the inbound path under /api, with the query string preserved.
type ProxyHandler struct {
	router  *upstream.Router
	target  upstream.Target
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewProxyHandler creates a pass-through handler for the given target.
func NewProxyHandler(router *upstream.Router, target upstream.Target, logger *slog.Logger, m *metrics.Collector) *ProxyHandler {
	return &ProxyHandler{
		router:  router,
		target:  target,
		logger:  logger,
		metrics: m,
	}
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := upstreamPrefix + r.URL.Path
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	var body []byte
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			proxy.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		body = b
	}

	outcome, err := forward(r.Context(), h.router, h.metrics, upstream.RequestSpec{
		Target: h.target,
		Method: r.Method,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		proxy.WriteForwardError(h.logger, w, err)
		return
	}

	proxy.WriteUpstream(w, outcome)
}
