package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/env"
)

// ErrMissingBaseURL is returned by Validate when a remote's base URL is
// unset.
var ErrMissingBaseURL = errors.New("base URL is required")

// HRISConfig configures the HRIS adapter (§4.1 "HRIS").
type HRISConfig struct {
	// BaseURLV2 is the HRIS v2 API used for people listing (from-cursor
	// pagination) and job get/patch. BaseURLV1 is the legacy API used for
	// batched time-off-enrichment person lookups (§4.1).
	BaseURLV2 string `env:"HRIS_V2_BASE_URL"`
	BaseURLV1 string `env:"HRIS_V1_BASE_URL"`
	APIToken  string `env:"HRIS_API_TOKEN"`
	OrgID     string `env:"HRIS_ORG_ID"`

	// RequestTimeout is the per-request deadline (§4.1 default 30s).
	RequestTimeout time.Duration `env:"HRIS_REQUEST_TIMEOUT"`

	// PageSize is the initial people-listing page size; the adapter halves
	// it on a persistent "limit"/"page size" 4xx (§4.1).
	PageSize int `env:"HRIS_PAGE_SIZE"`
}

// Validate applies defaults and checks required fields.
func (c *HRISConfig) Validate() error {
	if c.BaseURLV2 == "" || c.BaseURLV1 == "" {
		return fmt.Errorf("hris: %w", ErrMissingBaseURL)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.PageSize <= 0 {
		c.PageSize = 200
	}
	return nil
}

// LoadHRISConfig loads and validates HRIS adapter configuration.
func LoadHRISConfig() (*HRISConfig, error) {
	cfg := &HRISConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load HRIS config: %w", err)
	}
	return cfg, nil
}
