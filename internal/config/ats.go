package config

import (
	"fmt"
	"time"

	"github.com/nimbushr/syncengine/internal/env"
)

// ATSConfig configures the ATS adapter and webhook signature verification
// (§4.1 "ATS", §4.4, §6).
type ATSConfig struct {
	BaseURL string `env:"ATS_BASE_URL"`
	APIKey  string `env:"ATS_API_KEY"`

	// WebhookSigningKey verifies the Teamtailor-Signature header. Empty
	// disables verification (§6 "missing key disables verification") —
	// that is an explicit spec allowance for local/dev environments, not a
	// silent security hole: production deployments must set this.
	WebhookSigningKey string `env:"ATS_WEBHOOK_SIGNING_KEY"`

	RequestTimeout time.Duration `env:"ATS_REQUEST_TIMEOUT"`

	// CorpEmailDomain drives the hire flow's generated work email
	// (§4.3.7, §6). AutoAssignWorkEmail is loaded and passed on to the
	// reconciler, but the hire flow does not read it: it always generates
	// the work email.
	CorpEmailDomain     string `env:"CORP_EMAIL_DOMAIN"`
	AutoAssignWorkEmail bool   `env:"AUTO_ASSIGN_WORK_EMAIL"`

	// CreatePlannerOnHire gates the optional planner-person-upsert step of
	// the hire flow (§4.3.7 scenario 1).
	CreatePlannerOnHire bool `env:"RUNN_CREATE_ON_HIRE"`
}

// Validate applies defaults.
func (c *ATSConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("ats: %w", ErrMissingBaseURL)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	return nil
}

// LoadATSConfig loads and validates ATS adapter configuration.
func LoadATSConfig() (*ATSConfig, error) {
	cfg := &ATSConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load ATS config: %w", err)
	}
	return cfg, nil
}
