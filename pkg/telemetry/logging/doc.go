// Package logging builds the gateway's structured logger on top of log/slog
// and carries request-scoped fields through context.
package logging
