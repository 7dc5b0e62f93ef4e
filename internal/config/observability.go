package config

import (
	"fmt"

	"github.com/nimbushr/syncengine/internal/env"
)

// ObservabilityConfig gates OTel export (§9 "ambient stack"). Standard
// OTEL_EXPORTER_OTLP_* variables configure the exporters themselves once
// enabled.
type ObservabilityConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED"`
	ServiceName string `env:"OTEL_SERVICE_NAME"`
}

// Validate applies defaults.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		c.ServiceName = "syncengine"
	}
	return nil
}

// LoadObservabilityConfig loads and validates observability configuration.
func LoadObservabilityConfig() (*ObservabilityConfig, error) {
	cfg := &ObservabilityConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load observability config: %w", err)
	}
	return cfg, nil
}
