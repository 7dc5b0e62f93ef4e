package config

import (
	"errors"
	"fmt"

	"github.com/nimbushr/syncengine/internal/env"
)

// ErrMissingRegion is returned when the task-queue region is unset. The
// retrieved source carried two conflicting region values (us-central1 vs.
// northamerica-south1) across its history; §9 resolves that by requiring
// explicit configuration rather than picking one as a default.
var ErrMissingRegion = errors.New("task queue region must be set explicitly, no default")

// QueueConfig configures Cloud Tasks enqueueing for the dispatcher (§4.4
// "Enqueue contract").
type QueueConfig struct {
	Project string `env:"QUEUE_PROJECT"`

	// Region has no default; see ErrMissingRegion.
	Region string `env:"QUEUE_REGION"`
	Name   string `env:"QUEUE_NAME"`

	// ServiceURL is the base URL the enqueued task POSTs back to; Audience
	// defaults to ServiceURL when unset (§4.4: "audience = service base
	// URL").
	ServiceURL     string `env:"QUEUE_SERVICE_URL"`
	ServiceAccount string `env:"QUEUE_SERVICE_ACCOUNT"`
	Audience       string `env:"QUEUE_AUDIENCE"`
}

// Validate applies defaults and checks required fields.
func (c *QueueConfig) Validate() error {
	if c.Region == "" {
		return ErrMissingRegion
	}
	if c.Project == "" || c.Name == "" || c.ServiceURL == "" || c.ServiceAccount == "" {
		return fmt.Errorf("queue: project, name, service_url, and service_account are required")
	}
	if c.Audience == "" {
		c.Audience = c.ServiceURL
	}
	return nil
}

// LoadQueueConfig loads and validates task-queue configuration.
func LoadQueueConfig() (*QueueConfig, error) {
	cfg := &QueueConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load queue config: %w", err)
	}
	return cfg, nil
}
