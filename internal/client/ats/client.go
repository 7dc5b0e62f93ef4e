// Package ats adapts the ATS remote (applications, jobs, custom fields,
// and webhook signature verification) behind typed Go methods (spec.md
// §4.1 "ATS", §4.3.7 "Hire").
package ats

import (
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/httpx"
)

// Client is the ATS adapter.
type Client struct {
	baseURL string
	apiKey  string

	httpClient *http.Client
	retrier    *httpx.Retrier
	breaker    *gobreaker.CircuitBreaker
}

// NewClient builds an ATS adapter from loaded configuration.
func NewClient(cfg *config.ATSConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpx.NewClient(cfg.RequestTimeout),
		retrier:    httpx.NewRetrier(),
		breaker:    httpx.NewBreaker("ats"),
	}
}

func (c *Client) authHeader(req *http.Request) {
	req.Header.Set("Authorization", "Token token="+c.apiKey)
	req.Header.Set("Accept", "application/vnd.api+json")
}
