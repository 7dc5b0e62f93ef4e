package config

import (
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/env"
)

// ServerConfig configures the HTTP dispatcher server (§6).
type ServerConfig struct {
	Port int `env:"PORT"`

	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT"`

	// MaxBodyBytes bounds inbound webhook/task payloads (§6, guards against
	// a misbehaving upstream flooding the dispatcher).
	MaxBodyBytes int64 `env:"SERVER_MAX_BODY_BYTES"`
}

// Validate applies defaults.
func (c *ServerConfig) Validate() error {
	if c.Port <= 0 {
		c.Port = 8080
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20 // 1 MiB
	}
	return nil
}

// LoadServerConfig loads and validates HTTP server configuration.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	return cfg, nil
}
