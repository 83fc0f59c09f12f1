package collector

import "time"

// CollectorConfig contains configurable parameters for the system collector.
// Use DefaultCollectorConfig() to get sensible defaults, then override as needed.
type CollectorConfig struct {
	// Timeout bounds one full sample (default: 2s)
	Timeout time.Duration

	// PollInterval is how often the dashboard asks for a sample (default: 1s)
	PollInterval time.Duration

	// Collection limits
	TopProcessCount int // Number of top processes by CPU (default: 10)
	HistoryCapacity int // Samples kept for line charts (default: 60)

	// Mountpoints reported as partitions when present (default: /, /var/log, /home)
	Mountpoints []string

	// Feature flags
	EnableProcessMetrics bool // Whether to list processes (default: true)
	EnablePartitions     bool // Whether to report partitions (default: true)
}

// DefaultCollectorConfig returns a CollectorConfig with sensible defaults.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		Timeout:      2 * time.Second,
		PollInterval: 1 * time.Second,

		TopProcessCount: 10,
		HistoryCapacity: 60,

		Mountpoints: []string{"/", "/var/log", "/home"},

		EnableProcessMetrics: true,
		EnablePartitions:     true,
	}
}

// WithTimeout returns a copy of the config with modified sample timeout.
func (c CollectorConfig) WithTimeout(d time.Duration) CollectorConfig {
	c.Timeout = d
	return c
}

// WithPollInterval returns a copy of the config with modified poll interval.
func (c CollectorConfig) WithPollInterval(d time.Duration) CollectorConfig {
	c.PollInterval = d
	return c
}

// WithTopProcessCount returns a copy of the config with a new process limit.
func (c CollectorConfig) WithTopProcessCount(n int) CollectorConfig {
	c.TopProcessCount = n
	return c
}

// WithMountpoints returns a copy of the config watching other mountpoints.
func (c CollectorConfig) WithMountpoints(mounts ...string) CollectorConfig {
	c.Mountpoints = append([]string(nil), mounts...)
	return c
}

// WithProcessMetrics returns a copy of the config with process listing enabled/disabled.
func (c CollectorConfig) WithProcessMetrics(enabled bool) CollectorConfig {
	c.EnableProcessMetrics = enabled
	return c
}

// Validate checks if the configuration is valid and returns an error if not.
func (c CollectorConfig) Validate() error {
	if c.Timeout <= 0 {
		return &ConfigError{Field: "Timeout", Message: "must be positive"}
	}
	if c.PollInterval <= 0 {
		return &ConfigError{Field: "PollInterval", Message: "must be positive"}
	}
	if c.TopProcessCount <= 0 {
		return &ConfigError{Field: "TopProcessCount", Message: "must be positive"}
	}
	if c.HistoryCapacity < 2 {
		return &ConfigError{Field: "HistoryCapacity", Message: "must be at least 2"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
