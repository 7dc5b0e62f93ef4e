package config

import (
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/env"
)

// WarehouseConfig configures the BigQuery-backed warehouse mirror (§4.1
// "Warehouse", §4.6).
type WarehouseConfig struct {
	Project  string `env:"WAREHOUSE_PROJECT"`
	Dataset  string `env:"WAREHOUSE_DATASET"`
	Location string `env:"WAREHOUSE_LOCATION"`

	// StagingDataset holds the per-run staging tables MERGEd into Dataset.
	// Defaults to Dataset when unset (teacher convention: staging lives
	// alongside the target unless split out for quota isolation).
	StagingDataset string `env:"WAREHOUSE_STAGING_DATASET"`

	// LoadTimeout bounds a single staging-load + MERGE job (§4.6 default
	// 60s; collections with large fact tables may need more, set per
	// deployment).
	LoadTimeout time.Duration `env:"WAREHOUSE_LOAD_TIMEOUT"`

	// WindowDays/OverlapDays drive the fact-collection date window and the
	// delta-checkpoint overlap (§4.6).
	WindowDays  int `env:"WINDOW_DAYS"`
	OverlapDays int `env:"OVERLAP_DAYS"`

	// FanOut bounds concurrent per-collection fetches (§5, ≤4 workers).
	FanOut int `env:"WAREHOUSE_FANOUT"`
}

// Validate applies defaults and checks required fields.
func (c *WarehouseConfig) Validate() error {
	if c.Project == "" || c.Dataset == "" {
		return fmt.Errorf("warehouse: project and dataset are required")
	}
	if c.Location == "" {
		c.Location = "US"
	}
	if c.StagingDataset == "" {
		c.StagingDataset = c.Dataset
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = 60 * time.Second
	}
	if c.WindowDays <= 0 {
		c.WindowDays = 90
	}
	if c.OverlapDays <= 0 {
		c.OverlapDays = 7
	}
	if c.FanOut <= 0 {
		c.FanOut = 4
	}
	if c.FanOut > 4 {
		c.FanOut = 4
	}
	return nil
}

// LoadWarehouseConfig loads and validates warehouse mirror configuration.
func LoadWarehouseConfig() (*WarehouseConfig, error) {
	cfg := &WarehouseConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load warehouse config: %w", err)
	}
	return cfg, nil
}
