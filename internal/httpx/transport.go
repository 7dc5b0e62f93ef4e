package httpx

import (
	"net"
	"net/http"
	"time"
)

// NewClient builds a pooled http.Client sized for a handful of concurrent
// remotes (HRIS, ATS, Planner), not a fan-out crawler — each adapter gets
// its own client via NewClient rather than sharing http.DefaultClient, so
// one remote's connection pool can't starve another's.
func NewClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          8,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
