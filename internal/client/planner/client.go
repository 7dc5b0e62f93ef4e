// Package planner adapts the resource-planning remote (people, roles,
// contracts, and time off) behind typed Go methods (spec.md §4.1
// "Planner"). Every call is rate-limited by a shared token bucket and
// person-by-email lookups are cached with a TTL (§4.1).
package planner

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/httpx"
)

// Client is the planner adapter.
type Client struct {
	baseURL string
	apiKey  string

	httpClient *http.Client
	retrier    *httpx.Retrier
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter

	personByEmail *httpx.Cache[*domain.Person]
	roles         *httpx.Cache[[]Role]

	annualHours float64
}

// NewClient builds a planner adapter from loaded configuration.
func NewClient(cfg *config.PlannerConfig) *Client {
	return &Client{
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		httpClient:    httpx.NewClient(cfg.RequestTimeout),
		retrier:       httpx.NewRetrier(),
		breaker:       httpx.NewBreaker("planner"),
		limiter:       httpx.NewTokenBucket(cfg.RateLimitRequests, cfg.RateLimitWindow),
		personByEmail: httpx.NewCache[*domain.Person](cfg.PersonCacheTTL),
		roles:         httpx.NewCache[[]Role](24 * time.Hour),
		annualHours:   cfg.AnnualHours,
	}
}

// AnnualHours returns the configured divisor for cost-per-hour (§4.3.4).
func (c *Client) AnnualHours() float64 {
	return c.annualHours
}

func (c *Client) authHeader(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}
