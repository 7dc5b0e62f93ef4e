package config

import (
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/env"
)

// PlannerConfig configures the resource-planning adapter (§4.1 "Planner").
type PlannerConfig struct {
	BaseURL string `env:"PLANNER_BASE_URL"`
	APIKey  string `env:"PLANNER_API_KEY"`

	RequestTimeout time.Duration `env:"PLANNER_REQUEST_TIMEOUT"`

	// RateLimitRequests/RateLimitWindow define the token-bucket limiter
	// protecting this adapter (§4.1, default 100 req / 60s).
	RateLimitRequests int           `env:"PLANNER_RATE_LIMIT_REQUESTS"`
	RateLimitWindow    time.Duration `env:"PLANNER_RATE_LIMIT_WINDOW"`

	// PersonCacheTTL is the TTL cache window for person-by-email lookups
	// (§4.1, default 300s).
	PersonCacheTTL time.Duration `env:"PLANNER_PERSON_CACHE_TTL"`

	// AnnualHours is the authoritative divisor for cost-per-hour
	// (§4.3.4, §9 Open Question: env var wins over any hardcoded value).
	AnnualHours float64 `env:"ANNUAL_HOURS"`
}

// Validate applies defaults.
func (c *PlannerConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("planner: %w", ErrMissingBaseURL)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.RateLimitRequests <= 0 {
		c.RateLimitRequests = 100
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = 60 * time.Second
	}
	if c.PersonCacheTTL <= 0 {
		c.PersonCacheTTL = 300 * time.Second
	}
	if c.AnnualHours <= 0 {
		c.AnnualHours = 1856
	}
	return nil
}

// LoadPlannerConfig loads and validates planner adapter configuration.
func LoadPlannerConfig() (*PlannerConfig, error) {
	cfg := &PlannerConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load planner config: %w", err)
	}
	return cfg, nil
}
