package middleware

import (
	"net/http"
	"time"

	"vendorlink/gateway/pkg/telemetry/metrics"
)

// MetricsMiddleware records a request count and duration per matched route
// pattern. Using the pattern rather than the raw path keeps label
// cardinality bounded.
func MetricsMiddleware(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			collector.RecordRequest(route, r.Method, rw.statusCode, time.Since(start))
		})
	}
}
