package handlers

import (
	"context"
	"net/http"

	"vendorlink/gateway/pkg/proxy"
	"vendorlink/gateway/pkg/session"
	"vendorlink/gateway/pkg/telemetry/logging"
	"vendorlink/gateway/pkg/telemetry/metrics"
	"vendorlink/gateway/pkg/upstream"
)

// successBody is the JSON shape of mutation acknowledgements.
type successBody struct {
	Success bool `json:"success"`
}

// forward sends the request through the router and records the upstream
// outcome. The collector may be nil in tests.
func forward(ctx context.Context, router *upstream.Router, m *metrics.Collector, spec upstream.RequestSpec) (*upstream.Outcome, error) {
	outcome, err := router.Forward(ctx, spec)
	if m != nil {
		if err != nil {
			m.RecordUpstreamFailure(string(spec.Target))
		} else {
			m.RecordUpstream(string(spec.Target), outcome.StatusCode)
		}
	}
	return outcome, err
}

// requireIdentity resolves the caller's identity and writes the unauthorized
// response when there is none. Returns nil after writing the response.
// On success the email is stamped into the request context in place, so the
// logging middleware sees it after the handler returns.
func requireIdentity(resolver *session.Resolver, m *metrics.Collector, w http.ResponseWriter, r *http.Request) *session.Identity {
	identity := resolver.Resolve(r)
	if identity == nil || identity.Email == "" {
		if m != nil {
			m.RecordSessionResolution("miss")
		}
		proxy.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}
	if m != nil {
		m.RecordSessionResolution("hit")
	}
	*r = *r.WithContext(logging.WithUserEmail(r.Context(), identity.Email))
	return identity
}
