package config

import (
	"fmt"

	"github.com/nimbushr/syncengine/internal/env"
)

// ReconcileConfig configures the windowed cron batches (`/cron/onboarding`,
// `/cron/timeoff`, §6).
type ReconcileConfig struct {
	// OnboardingLookaheadDays bounds how far ahead of the reference date
	// PersonOnboardingBatch looks for people starting soon.
	OnboardingLookaheadDays int `env:"RUNN_ONBOARDING_LOOKAHEAD_DAYS"`

	// TimeOffLookbackDays/TimeOffLookaheadDays bound the window
	// TimeOffSyncBatch scans around the reference date.
	TimeOffLookbackDays  int `env:"RUNN_TIMEOFF_LOOKBACK_DAYS"`
	TimeOffLookaheadDays int `env:"RUNN_TIMEOFF_LOOKAHEAD_DAYS"`
}

// Validate applies defaults.
func (c *ReconcileConfig) Validate() error {
	if c.OnboardingLookaheadDays <= 0 {
		c.OnboardingLookaheadDays = 14
	}
	if c.TimeOffLookbackDays <= 0 {
		c.TimeOffLookbackDays = 7
	}
	if c.TimeOffLookaheadDays <= 0 {
		c.TimeOffLookaheadDays = 30
	}
	return nil
}

// LoadReconcileConfig loads and validates the windowed cron batch
// configuration.
func LoadReconcileConfig() (*ReconcileConfig, error) {
	cfg := &ReconcileConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load reconcile config: %w", err)
	}
	return cfg, nil
}
