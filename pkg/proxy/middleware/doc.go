// Package middleware provides the HTTP middleware chain of the gateway:
// request IDs, structured request logging, panic recovery, and request
// metrics. Middleware composes outermost-first: recovery wraps everything so
// a panic anywhere in the chain still yields a JSON 500.
package middleware
