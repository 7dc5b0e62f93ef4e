package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/httpx"
)

// source fetches raw collection pages from the resource-planning remote
// (§4.5.2 "Collection catalog"/"Fetch"). It is a sibling of
// internal/client/planner rather than a reuse of it: the planner adapter
// exposes typed person/role/contract operations, while the warehouse
// mirror walks arbitrary collection paths generically and never decodes
// into a domain type, so it gets its own thin client over the same
// remote and the same httpx building blocks (retrier, breaker, limiter).
type source struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retrier    *httpx.Retrier
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
}

func newSource(cfg *config.PlannerConfig) *source {
	return &source{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpx.NewClient(cfg.RequestTimeout),
		retrier:    httpx.NewRetrier(),
		breaker:    httpx.NewBreaker("warehouse-source"),
		limiter:    httpx.NewTokenBucket(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}
}

// page is one fetched collection page: raw objects plus the cursor for
// the next page ("" means no more pages).
type page struct {
	Items      []map[string]any
	NextCursor string
}

// fetchPage issues one GET against path with params, decoding the
// response as either {"items": [...], "nextCursor": "..."} or a bare
// array (the "single_object" collections wrap a lone object themselves
// before this is called).
func (s *source) fetchPage(ctx context.Context, path string, params url.Values) (page, error) {
	if err := httpx.WaitIfNeeded(ctx, s.limiter); err != nil {
		return page{}, fmt.Errorf("warehouse: source rate limiter: %w", err)
	}

	reqURL := s.baseURL + "/" + path
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	return httpx.Do(ctx, s.retrier, func() (page, error) {
		return httpx.Guard(s.breaker, func() (page, error) {
			return s.fetchOnce(ctx, reqURL)
		})
	})
}

func (s *source) fetchOnce(ctx context.Context, reqURL string) (page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return page{}, fmt.Errorf("warehouse: build source request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return page{}, fmt.Errorf("%w: %w", httpx.ErrTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return page{}, fmt.Errorf("%w: reading source response: %w", httpx.ErrTransient, err)
	}
	if clsErr := httpx.ClassifyStatus("warehouse-source", resp.StatusCode, string(body)); clsErr != nil {
		return page{}, clsErr
	}

	var envelope struct {
		Items      []map[string]any `json:"items"`
		NextCursor string           `json:"nextCursor"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && (envelope.Items != nil || envelope.NextCursor != "") {
		return page{Items: envelope.Items, NextCursor: envelope.NextCursor}, nil
	}

	// Some collections return a bare array with no cursor envelope.
	var bare []map[string]any
	if err := json.Unmarshal(body, &bare); err == nil {
		return page{Items: bare}, nil
	}

	// single_object collections return one bare object.
	var obj map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&obj); err != nil {
		return page{}, fmt.Errorf("warehouse: decode source response: %w", err)
	}
	return page{Items: []map[string]any{obj}}, nil
}
