package dispatch

import (
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/idtoken"
)

// requireOIDC verifies the bearer token Cloud Tasks attaches to its HTTP
// task requests against audience (the same audience the enqueuer minted
// the OidcToken with). An empty audience disables verification, matching
// the webhook signing key's own "empty disables" allowance — useful for
// local/dev runs that never go through Cloud Tasks.
func requireOIDC(audience string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if audience == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			if _, err := idtoken.Validate(r.Context(), token, audience); err != nil {
				slog.WarnContext(r.Context(), "rejected task request with invalid OIDC token", "error", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
