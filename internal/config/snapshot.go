package config

import (
	"fmt"

	"github.com/nimbushr/syncengine/internal/env"
)

// ExportMode selects full-versus-delta snapshot export semantics (§4.5).
type ExportMode string

const (
	ExportModeFull  ExportMode = "full"
	ExportModeDelta ExportMode = "delta"
)

// SnapshotConfig configures the snapshot & warehouse-batch export (§4.5,
// §9 "Missing manifest" resolution).
type SnapshotConfig struct {
	// ExportMode is "full" or "delta" (§6 env var EXPORT_MODE); defaults to
	// "delta" since that is the steady-state nightly mode.
	ExportMode string `env:"EXPORT_MODE"`

	// StateBucket/StateObject locate the manifest blob in C2 (§4.2, §4.5).
	StateBucket string `env:"STATE_BUCKET"`
	StateObject string `env:"STATE_OBJECT"`
}

// Mode returns the validated export mode, defaulting to delta.
func (c *SnapshotConfig) Mode() ExportMode {
	if ExportMode(c.ExportMode) == ExportModeFull {
		return ExportModeFull
	}
	return ExportModeDelta
}

// Validate applies defaults and checks required fields.
func (c *SnapshotConfig) Validate() error {
	if c.ExportMode == "" {
		c.ExportMode = string(ExportModeDelta)
	}
	if c.ExportMode != string(ExportModeFull) && c.ExportMode != string(ExportModeDelta) {
		return fmt.Errorf("snapshot: EXPORT_MODE must be %q or %q, got %q", ExportModeFull, ExportModeDelta, c.ExportMode)
	}
	if c.StateBucket == "" || c.StateObject == "" {
		return fmt.Errorf("snapshot: STATE_BUCKET and STATE_OBJECT are required")
	}
	return nil
}

// LoadSnapshotConfig loads and validates snapshot export configuration.
func LoadSnapshotConfig() (*SnapshotConfig, error) {
	cfg := &SnapshotConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load snapshot config: %w", err)
	}
	return cfg, nil
}
