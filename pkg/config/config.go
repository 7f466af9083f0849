package config

import "time"

// Config is the root configuration structure for the VendorLink gateway.
type Config struct {
	// Server contains HTTP server configuration: listen address, timeouts,
	// and connection limits.
	Server ServerConfig `yaml:"server"`

	// Upstreams contains the base URLs and credentials of the two backends
	// the gateway forwards to.
	Upstreams UpstreamsConfig `yaml:"upstreams"`

	// Session contains session-store configuration.
	Session SessionConfig `yaml:"session"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the gateway's HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port". Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// UpstreamsConfig contains the configured upstream targets.
type UpstreamsConfig struct {
	// Backend is the general application backend.
	Backend BackendConfig `yaml:"backend"`

	// AI is the AI/indexing backend.
	AI AIConfig `yaml:"ai"`

	// Timeout is the HTTP client timeout for upstream calls. Zero means
	// no client-level timeout (transport defaults apply).
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`
}

// BackendConfig contains settings for the general application backend.
type BackendConfig struct {
	// BaseURL is the backend's base URL.
	// Default: "http://localhost:7072"
	BaseURL string `yaml:"base_url"`
}

// AIConfig contains settings for the AI/indexing backend.
type AIConfig struct {
	// BaseURL is the AI backend's base URL.
	// Default: "http://localhost:7071"
	BaseURL string `yaml:"base_url"`

	// FunctionKey is sent in the x-functions-key header on every request
	// to the AI backend. Empty means no key header.
	// Default: ""
	FunctionKey string `yaml:"function_key"`
}

// SessionConfig contains session-store configuration.
type SessionConfig struct {
	// StorePath is the SQLite database file holding sessions and mail
	// credentials.
	// Default: "data/sessions.db"
	StorePath string `yaml:"store_path"`

	// PruneSchedule is a cron expression for pruning expired sessions.
	// Empty disables pruning.
	// Default: "0 * * * *" (hourly)
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the Prometheus metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "vendorlink"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "gateway"
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for request
	// duration in seconds.
	// Default: [0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
