package hris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/nimbushr/syncengine/internal/httpx"
)

// doJSON issues a request through the retrier and breaker, decoding a JSON
// response body into out (if non-nil). A 429/5xx response with a
// Retry-After header is surfaced to the retrier as a RetryAfterError so
// the backoff honors the upstream's requested delay (§4.1).
func (c *Client) doJSON(ctx context.Context, method, url string, body any, out any) error {
	_, err := httpx.Do(ctx, c.retrier, func() (struct{}, error) {
		return struct{}{}, httpx.Guard(c.breaker, func() (struct{}, error) {
			return struct{}{}, c.doOnce(ctx, method, url, body, out)
		})
	})
	return err
}

func (c *Client) doOnce(ctx context.Context, method, url string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("hris: encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("hris: build request: %w", err)
	}
	c.authHeader(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
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

	if clsErr := httpx.ClassifyStatus("hris", resp.StatusCode, string(respBody)); clsErr != nil {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			if d, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
				return &httpx.RetryAfterError{Err: clsErr, After: d}
			}
		}
		return clsErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("hris: decode response: %w", err)
	}
	return nil
}

// retryAfter parses a Retry-After header in either delta-seconds or
// HTTP-date form.
func retryAfter(header string) (time.Duration, bool) {
	if header == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(header); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(header); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// isPageSizeError reports whether a 4xx response body looks like the
// upstream is complaining about the requested page size (§4.1: "on a
// persistent 4xx mentioning limit/page size").
func isPageSizeError(err error) bool {
	var se *httpx.StatusError
	if !asStatusError(err, &se) {
		return false
	}
	if se.StatusCode < 400 || se.StatusCode >= 500 {
		return false
	}
	return containsAny(se.Body, "limit", "page size", "page_size", "pageSize")
}
