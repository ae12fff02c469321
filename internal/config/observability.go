package config

import (
	"fmt"
)

// ServiceName identifies this service in logs, traces and APM dashboards.
const ServiceName = "contactd"

// ObservabilityConfig groups all configuration related to logging and
// runtime visibility.
//
// It is optional at the root level (pointer in Config). If omitted,
// DefaultObservabilityConfig is injected.
type ObservabilityConfig struct {
	// ServiceName is always overwritten with the ServiceName constant.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment mirrors Primary.Env (production, development, local, test).
	Environment string `koanf:"environment" validate:"required"`

	// Logging controls the structured logger and its persistent file target.
	Logging LoggingConfig `koanf:"logging" validate:"required"`

	// NewRelic controls APM and tracing. An empty license key disables it.
	NewRelic NewRelicConfig `koanf:"new_relic"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the stderr format: "console" or "json".
	// The persistent file target is always line-oriented text.
	Format string `koanf:"format"`

	// File is the append-only log target. Rotated by size.
	File string `koanf:"file" validate:"required"`

	// MaxSizeMB, MaxBackups and MaxAgeDays tune file rotation.
	MaxSizeMB  int `koanf:"max_size_mb" validate:"min=1"`
	MaxBackups int `koanf:"max_backups" validate:"min=0"`
	MaxAgeDays int `koanf:"max_age_days" validate:"min=0"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
type NewRelicConfig struct {
	// LicenseKey is the New Relic ingest key. Empty means "not configured".
	LicenseKey string `koanf:"license_key"`

	// AppLogForwardingEnabled forwards application logs to New Relic.
	AppLogForwardingEnabled bool `koanf:"app_log_forwarding_enabled"`

	// DistributedTracingEnabled enables distributed tracing.
	DistributedTracingEnabled bool `koanf:"distributed_tracing_enabled"`

	// DebugLogging enables the agent's own debug output.
	DebugLogging bool `koanf:"debug_logging"`
}

// DefaultObservabilityConfig provides the defaults used when
// Config.Observability is not provided.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Format:     "console",
			File:       "submissions.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 90,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // keeps agent output out of the log file
		},
	}
}

// applyDefaults fills empty fields of a partially provided block, e.g.
// when only LOG_LEVEL is set in the environment.
func (c *ObservabilityConfig) applyDefaults() {
	defaults := DefaultObservabilityConfig()

	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Logging.File == "" {
		c.Logging.File = defaults.Logging.File
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = defaults.Logging.MaxAgeDays
	}

	// No env var maps onto the New Relic toggles.
	c.NewRelic.AppLogForwardingEnabled = defaults.NewRelic.AppLogForwardingEnabled
	c.NewRelic.DistributedTracingEnabled = defaults.NewRelic.DistributedTracingEnabled
}

// Validate applies custom validation rules that go beyond struct tags.
//
// Returns:
//   - nil if configuration is valid
//   - an error describing the first validation failure
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"":      true, // resolved by GetLogLevel
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid logging format: %s (must be console or json)", c.Logging.Format)
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// An unset level defaults by environment: debug for development and
// local, info everywhere else.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}

	switch c.Environment {
	case "development", "local":
		return "debug"
	default:
		return "info"
	}
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// NewRelicEnabled reports whether an APM license key was configured.
func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelic.LicenseKey != ""
}
