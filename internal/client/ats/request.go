package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nimbushr/syncengine/internal/httpx"
)

func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	_, err := httpx.Do(ctx, c.retrier, func() (struct{}, error) {
		return struct{}{}, httpx.Guard(c.breaker, func() (struct{}, error) {
			return struct{}{}, c.doOnce(ctx, method, url, body, out)
		})
	})
	return err
}

func (c *Client) doOnce(ctx context.Context, method, url string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ats: encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("ats: build request: %w", err)
	}
	c.authHeader(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/vnd.api+json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", httpx.ErrTransient, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", httpx.ErrTransient, err)
	}

	if clsErr := httpx.ClassifyStatus("ats", resp.StatusCode, string(respBody)); clsErr != nil {
		return clsErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("ats: decode response: %w", err)
	}
	return nil
}
