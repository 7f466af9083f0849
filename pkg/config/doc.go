// Package config defines the gateway's configuration: the HTTP server,
// the two upstream targets, the session store, and telemetry. Configuration
// is loaded once at startup from an optional YAML file, filled with
// defaults, overridden by GATEWAY_* environment variables, validated, and
// passed explicitly to the components that need it.
package config
