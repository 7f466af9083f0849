package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"vendorlink/gateway/pkg/proxy"
	"vendorlink/gateway/pkg/telemetry/metrics"
	"vendorlink/gateway/pkg/upstream"
)

// segmentsCacheControl is the public cache directive attached to successful
// segment listings. Segments change rarely, so clients and shared caches may
// serve them stale while revalidating.
const segmentsCacheControl = "public, max-age=300, stale-while-revalidate=600"

// SegmentsHandler serves GET /segments. It is the one route with response
// reshaping: a successful upstream body is wrapped as {"data": <body>} and
// marked cacheable. Upstream errors pass through unreshaped and uncached.
type SegmentsHandler struct {
	router  *upstream.Router
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewSegmentsHandler creates the segments handler.
func NewSegmentsHandler(router *upstream.Router, logger *slog.Logger, m *metrics.Collector) *SegmentsHandler {
	return &SegmentsHandler{
		router:  router,
		logger:  logger,
		metrics: m,
	}
}

func (h *SegmentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	outcome, err := forward(r.Context(), h.router, h.metrics, upstream.RequestSpec{
		Target: upstream.TargetBackend,
		Method: http.MethodGet,
		Path:   "/api/segments",
	})
	if err != nil {
		proxy.WriteForwardError(h.logger, w, err)
		return
	}

	if outcome.StatusCode != http.StatusOK {
		proxy.WriteUpstream(w, outcome)
		return
	}

	w.Header().Set("Cache-Control", segmentsCacheControl)
	proxy.WriteJSON(w, http.StatusOK, struct {
		Data json.RawMessage `json:"data"`
	}{Data: proxy.TryDecode(outcome.Body)})
}
