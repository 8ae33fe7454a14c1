// Package config defines the scan run configuration and its loading
// abstractions. Concurrency limits and timeouts are first-class settings
// here, never library defaults buried in call sites.
package config

import "time"

// ExtractorConfig holds the extraction service connection settings.
type ExtractorConfig struct {
	// BaseURL is the root URL of the content extraction service.
	BaseURL string `yaml:"base_url"`

	// RequestTimeoutSeconds bounds one extraction round trip.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// RequestsPerSecond and Burst throttle scan workers against the service.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// RequestTimeout returns the request timeout as a duration.
func (c ExtractorConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Config represents the top-level scan configuration.
type Config struct {
	// Workers bounds the scan worker pool. Zero means the CPU count.
	Workers int `yaml:"workers"`

	// ScanTimeoutSeconds is the global wall-clock budget for the batch.
	ScanTimeoutSeconds int `yaml:"scan_timeout_seconds"`

	Extractor ExtractorConfig `yaml:"extractor"`

	// MetricsAddr enables the /metrics endpoint while a scan runs when set.
	MetricsAddr string `yaml:"metrics_addr"`

	// OTLPEndpoint enables trace export when set; empty means no-op tracing.
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// ScanTimeout returns the global scan budget as a duration.
func (c Config) ScanTimeout() time.Duration {
	return time.Duration(c.ScanTimeoutSeconds) * time.Second
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		ScanTimeoutSeconds: 180,
		Extractor: ExtractorConfig{
			BaseURL:               "http://localhost:9998",
			RequestTimeoutSeconds: 30,
			RequestsPerSecond:     50,
			Burst:                 10,
		},
	}
}
