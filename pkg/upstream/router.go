package upstream

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// TargetConfig holds the connection settings for one upstream target.
type TargetConfig struct {
	// BaseURL is the target's base URL, e.g. "http://localhost:7072".
	BaseURL string

	// FunctionKey is the function key sent in the FunctionKeyHeader.
	// Only the AI target uses it; empty means no key header is sent.
	FunctionKey string
}

// Targets is the fixed set of upstreams the router forwards to.
type Targets struct {
	Backend TargetConfig
	AI      TargetConfig
}

// Router forwards request specs to the configured upstream targets.
// Targets can be swapped atomically at runtime (config reload); everything
// else is immutable after construction.
type Router struct {
	mu      sync.RWMutex
	targets Targets

	client     *http.Client
	noRedirect *http.Client
}

// NewRouter creates a router with connection pooling shared across both
// targets. A zero timeout means the transport default (no client timeout).
func NewRouter(targets Targets, timeout time.Duration) *Router {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Router{
		targets: targets,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		noRedirect: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// SetTargets atomically replaces the upstream target set. In-flight
// requests keep the targets they resolved at forward time.
func (r *Router) SetTargets(targets Targets) {
	r.mu.Lock()
	r.targets = targets
	r.mu.Unlock()

	slog.Info("upstream targets updated",
		"backend_base_url", targets.Backend.BaseURL,
		"ai_base_url", targets.AI.BaseURL,
	)
}

// lookup resolves a target name to its current configuration.
func (r *Router) lookup(target Target) (TargetConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch target {
	case TargetBackend:
		return r.targets.Backend, nil
	case TargetAI:
		return r.targets.AI, nil
	default:
		return TargetConfig{}, &UnknownTargetError{Target: target}
	}
}

// Forward issues exactly one HTTP request for the given spec and returns
// the raw outcome. It never retries. Network failures are reported as
// *UnavailableError; HTTP error statuses are NOT errors here, they are
// outcomes for the translator to pass through.
func (r *Router) Forward(ctx context.Context, spec RequestSpec) (*Outcome, error) {
	target, err := r.lookup(spec.Target)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(target.BaseURL, "/") + spec.Path

	// GET and DELETE never carry a body, even if the caller supplied one.
	var bodyReader io.Reader
	if len(spec.Body) > 0 && (spec.Method == http.MethodPost || spec.Method == http.MethodPut) {
		bodyReader = bytes.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, url, bodyReader)
	if err != nil {
		return nil, &UnavailableError{Target: spec.Target, Cause: err}
	}

	req.Header.Set("Content-Type", "application/json")
	if spec.Target == TargetAI && target.FunctionKey != "" {
		req.Header.Set(FunctionKeyHeader, target.FunctionKey)
	}
	for key, value := range spec.Header {
		req.Header.Set(key, value)
	}

	client := r.client
	if spec.DisableRedirects {
		client = r.noRedirect
	}

	slog.Debug("forwarding to upstream",
		"target", spec.Target,
		"method", spec.Method,
		"path", spec.Path,
	)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Target: spec.Target, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Target: spec.Target, Cause: err}
	}

	return &Outcome{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Close releases idle connections held by the shared transport.
func (r *Router) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
