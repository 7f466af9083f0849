// Package metrics defines the gateway's Prometheus metrics: request counts
// and latencies by route, upstream outcomes by target, and session activity.
// All metrics live in a private registry exposed through Handler.
package metrics
