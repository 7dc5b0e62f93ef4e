// Package middleware holds chi-compatible HTTP middleware shared by the
// dispatcher (internal/dispatch), adapted from the teacher's
// internal/infrastructure/http/middleware package.
package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
)

// payloadTooLargeJSON is a pre-marshaled 413 response, used instead of
// json.Marshal so the body is always writable even under memory pressure.
const payloadTooLargeJSON = `{"error":{"code":"PAYLOAD_TOO_LARGE","message":"request body exceeds size limit","details":[]}}`

// MaxBodyBytes bounds inbound request bodies (§6, guarding the
// dispatcher's webhook and task routes against a flooding upstream).
// Two-phase: a fast Content-Length check, then an http.MaxBytesReader
// read to also catch chunked or spoofed-length bodies.
func MaxBodyBytes(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > 0 && r.ContentLength > maxBytes {
				writeTooLarge(w, r, maxBytes)
				return
			}

			body := http.MaxBytesReader(w, r.Body, maxBytes)
			buf, err := io.ReadAll(body)
			if err != nil {
				slog.WarnContext(r.Context(), "request body size limit exceeded",
					"method", r.Method, "path", r.URL.Path, "limit", maxBytes, "error", err)
				writeTooLarge(w, r, maxBytes)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(buf))
			next.ServeHTTP(w, r)
		})
	}
}

func writeTooLarge(w http.ResponseWriter, r *http.Request, maxBytes int64) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusRequestEntityTooLarge)
	if _, err := w.Write([]byte(payloadTooLargeJSON)); err != nil {
		slog.ErrorContext(r.Context(), "failed to write payload too large response", "error", err)
	}
}
