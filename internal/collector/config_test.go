package collector

import (
	"testing"
	"time"
)

func TestDefaultCollectorConfig(t *testing.T) {
	cfg := DefaultCollectorConfig()

	if cfg.Timeout != 2*time.Second {
		t.Errorf("Expected Timeout 2s, got %v", cfg.Timeout)
	}
	if cfg.PollInterval != 1*time.Second {
		t.Errorf("Expected PollInterval 1s, got %v", cfg.PollInterval)
	}
	if cfg.TopProcessCount != 10 {
		t.Errorf("Expected TopProcessCount 10, got %d", cfg.TopProcessCount)
	}
	if cfg.HistoryCapacity != 60 {
		t.Errorf("Expected HistoryCapacity 60, got %d", cfg.HistoryCapacity)
	}
	if len(cfg.Mountpoints) != 3 || cfg.Mountpoints[0] != "/" {
		t.Errorf("Expected default mountpoints, got %v", cfg.Mountpoints)
	}
	if !cfg.EnableProcessMetrics {
		t.Error("Expected EnableProcessMetrics to be true by default")
	}
	if !cfg.EnablePartitions {
		t.Error("Expected EnablePartitions to be true by default")
	}
}

func TestCollectorConfig_Validate(t *testing.T) {
	valid := DefaultCollectorConfig()

	tests := []struct {
		name    string
		cfg     CollectorConfig
		wantErr bool
	}{
		{
			name:    "valid default config",
			cfg:     valid,
			wantErr: false,
		},
		{
			name:    "invalid timeout",
			cfg:     valid.WithTimeout(0),
			wantErr: true,
		},
		{
			name:    "invalid poll interval",
			cfg:     valid.WithPollInterval(-time.Second),
			wantErr: true,
		},
		{
			name:    "invalid process count",
			cfg:     valid.WithTopProcessCount(0),
			wantErr: true,
		},
		{
			name: "history too short",
			cfg: func() CollectorConfig {
				c := valid
				c.HistoryCapacity = 1
				return c
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCollectorConfig_WithMethods(t *testing.T) {
	cfg := DefaultCollectorConfig()

	newCfg := cfg.WithTimeout(5 * time.Second)
	if newCfg.Timeout != 5*time.Second {
		t.Errorf("WithTimeout failed, got %v", newCfg.Timeout)
	}
	// Original should be unchanged
	if cfg.Timeout != 2*time.Second {
		t.Error("WithTimeout mutated original config")
	}

	newCfg = cfg.WithMountpoints("/data")
	if len(newCfg.Mountpoints) != 1 || newCfg.Mountpoints[0] != "/data" {
		t.Errorf("WithMountpoints failed, got %v", newCfg.Mountpoints)
	}
	if len(cfg.Mountpoints) != 3 {
		t.Error("WithMountpoints mutated original config")
	}

	newCfg = cfg.WithProcessMetrics(false)
	if newCfg.EnableProcessMetrics {
		t.Error("WithProcessMetrics(false) failed")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "config error: TestField test message"
	if err.Error() != expected {
		t.Errorf("Expected error '%s', got '%s'", expected, err.Error())
	}
}

func TestCollectorConfig_Chaining(t *testing.T) {
	cfg := DefaultCollectorConfig().
		WithTimeout(3 * time.Second).
		WithPollInterval(500 * time.Millisecond).
		WithTopProcessCount(5)

	if cfg.Timeout != 3*time.Second {
		t.Errorf("Chained Timeout failed")
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("Chained PollInterval failed")
	}
	if cfg.TopProcessCount != 5 {
		t.Errorf("Chained TopProcessCount failed")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Chained config should be valid, got error: %v", err)
	}
}
