// Package hris adapts the HRIS remote (people, jobs, time off, and the CSV
// import pipeline) behind typed Go methods (spec.md §4.1 "HRIS").
package hris

import (
	"net/http"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/httpx"
)

// Client is the HRIS adapter. The v2 API serves people listing, job
// get/patch, and time-off get; the legacy v1 API serves batched
// person-by-id lookups used to enrich time-off rows with an email.
type Client struct {
	baseURLV2 string
	baseURLV1 string
	apiToken  string
	orgID     string

	httpClient *http.Client
	retrier    *httpx.Retrier
	breaker    *gobreaker.CircuitBreaker

	mu       sync.Mutex
	pageSize int // mutated by halvePageSize on a persistent "limit" 4xx
}

// NewClient builds an HRIS adapter from loaded configuration.
func NewClient(cfg *config.HRISConfig) *Client {
	return &Client{
		baseURLV2:  cfg.BaseURLV2,
		baseURLV1:  cfg.BaseURLV1,
		apiToken:   cfg.APIToken,
		orgID:      cfg.OrgID,
		httpClient: httpx.NewClient(cfg.RequestTimeout),
		retrier:    httpx.NewRetrier(),
		breaker:    httpx.NewBreaker("hris"),
		pageSize:   cfg.PageSize,
	}
}

func (c *Client) currentPageSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageSize
}

// halvePageSize implements §4.1's "on a persistent 4xx mentioning
// limit/page size, halve the page size and restart the page attempt".
// Never drops below 1.
func (c *Client) halvePageSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageSize = max(c.pageSize/2, 1)
	return c.pageSize
}

func (c *Client) authHeader(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")
	if c.orgID != "" {
		req.Header.Set("X-Org-Id", c.orgID)
	}
}
