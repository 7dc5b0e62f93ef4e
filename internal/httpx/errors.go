package httpx

import (
	"errors"
	"fmt"
)

// The error taxonomy every adapter method maps its remote's HTTP status
// onto (§7). Handlers in internal/reconcile branch on errors.Is against
// these sentinels rather than inspecting status codes directly.
var (
	// ErrTransient marks a failure the caller should retry: 429, 5xx,
	// connection resets, timeouts.
	ErrTransient = errors.New("transient upstream error")

	// ErrNotFound marks a 404 or equivalent "no such entity" response.
	ErrNotFound = errors.New("entity not found upstream")

	// ErrValidation marks a 400/422 the caller sent a malformed request
	// for; retrying verbatim will not help.
	ErrValidation = errors.New("request rejected as invalid")

	// ErrConflict marks a 409 or equivalent state conflict (e.g. a
	// duplicate time-off already covering the same window).
	ErrConflict = errors.New("conflicting upstream state")
)

// StatusError wraps a non-2xx HTTP response with the remote and status
// code, classified against one of the sentinels above via Unwrap.
type StatusError struct {
	Remote     string
	StatusCode int
	Body       string
	class      error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Remote, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.class
}

// ClassifyStatus maps an HTTP status code to one of the taxonomy
// sentinels. Any 2xx code returns nil (not an error); everything else not
// explicitly classified, 3xx included, falls back to
// ErrTransient, since upstreams in this domain more often fail with
// undocumented 5xx variants than with a response a retry cannot fix.
func ClassifyStatus(remote string, statusCode int, body string) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	se := &StatusError{Remote: remote, StatusCode: statusCode, Body: body}

	switch {
	case statusCode == 404:
		se.class = ErrNotFound
	case statusCode == 409:
		se.class = ErrConflict
	case statusCode == 400 || statusCode == 422:
		se.class = ErrValidation
	case statusCode == 429 || statusCode >= 500:
		se.class = ErrTransient
	default:
		se.class = ErrTransient
	}

	return se
}
