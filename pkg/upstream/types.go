package upstream

import "net/http"

// Target identifies which configured upstream a request is routed to.
type Target string

const (
	// TargetBackend is the general application backend.
	TargetBackend Target = "backend"

	// TargetAI is the AI/indexing backend. Requests to it carry the
	// configured function key header.
	TargetAI Target = "ai"
)

// FunctionKeyHeader is the authorization header sent to the AI backend.
const FunctionKeyHeader = "x-functions-key"

// RequestSpec describes a single upstream call. It is built fresh per
// inbound request and never reused.
type RequestSpec struct {
	// Target selects the upstream base URL (and credentials).
	Target Target

	// Path is the upstream path, including any query string. It is
	// concatenated onto the target's base URL unchanged.
	Path string

	// Method is the HTTP method (GET, POST, PUT, DELETE).
	Method string

	// Body is the already-encoded JSON request body. It is sent only for
	// POST and PUT; GET and DELETE ignore it even when supplied.
	Body []byte

	// Header contains extra headers to set on the upstream request.
	// Content-Type and the AI function key are set by the router itself.
	Header map[string]string

	// DisableRedirects makes the router return redirect responses as data
	// instead of following them. The OAuth callback flow inspects the
	// backend's 302 and replays it to the browser verbatim.
	DisableRedirects bool
}

// Outcome is the raw result of an upstream call, before translation into
// the client-facing contract.
type Outcome struct {
	// StatusCode is the upstream HTTP status.
	StatusCode int

	// Header contains the upstream response headers.
	Header http.Header

	// Body is the raw response body.
	Body []byte
}
