package proxy

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vendorlink/gateway/pkg/upstream"
)

// ErrorBody is the JSON shape of every error response the gateway produces.
type ErrorBody struct {
	Error string `json:"error"`
}

// emptyObject is the fallback for upstream bodies that are not valid JSON.
var emptyObject = json.RawMessage(`{}`)

// TryDecode returns b when it is valid JSON and an empty JSON object
// otherwise. Lenient decoding is a deliberate policy: an empty or non-JSON
// upstream body must never break a handler.
func TryDecode(b []byte) json.RawMessage {
	return TryDecodeDefault(b, emptyObject)
}

// TryDecodeDefault is TryDecode with a caller-supplied fallback value.
func TryDecodeDefault(b []byte, fallback json.RawMessage) json.RawMessage {
	if len(b) == 0 || !json.Valid(b) {
		return fallback
	}
	return json.RawMessage(b)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing useful can be written.
		slog.Default().Error("failed to encode response body", "error", err)
	}
}

// WriteError writes a standard error body with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Error: message})
}

// WriteUpstream passes an upstream outcome through to the client: the
// upstream's status unchanged, and its body leniently decoded as JSON.
func WriteUpstream(w http.ResponseWriter, outcome *upstream.Outcome) {
	WriteJSON(w, outcome.StatusCode, TryDecode(outcome.Body))
}

// WriteForwardError converts a forwarding failure into a client response.
// An unreachable upstream becomes 503; anything else is an internal error.
// The client never sees a raw transport error.
func WriteForwardError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var unavailable *upstream.UnavailableError
	if errors.As(err, &unavailable) {
		logger.Warn("upstream unavailable",
			"target", string(unavailable.Target),
			"error", unavailable.Cause,
		)
		WriteError(w, http.StatusServiceUnavailable, "Backend unavailable")
		return
	}

	logger.Error("upstream forwarding failed", "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
