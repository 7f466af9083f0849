// Package server provides the gateway's HTTP server: the route table, the
// middleware chain, and graceful shutdown.
package server
