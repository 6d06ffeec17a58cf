package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/scancart-backend/api/responses"
	"github.com/angelmondragon/scancart-backend/api/validators"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
)

// APIKeyParam is the route and query parameter carrying the shared key.
const APIKeyParam = "apikey"

type apiKeyVerifier interface {
	Verify(ctx context.Context, key string) error
}

// APIKey gates a route on the shared key found in the path or query string.
// Failures are written as bare text.
func APIKey(verifier apiKeyVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := validators.PathOrQueryParam(r, APIKeyParam)
			if err := verifier.Verify(r.Context(), key); err != nil {
				responses.WriteTextError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
