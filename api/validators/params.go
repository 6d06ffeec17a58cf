package validators

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PathParam returns the trimmed chi URL parameter.
func PathParam(r *http.Request, key string) string {
	return SanitizeString(chi.URLParam(r, key), 256)
}

// PathOrQueryParam prefers the chi URL parameter and falls back to the query
// string, so /api/cart/{apikey}/{Userid} and ?apikey= both resolve.
func PathOrQueryParam(r *http.Request, key string) string {
	if v := PathParam(r, key); v != "" {
		return v
	}
	return SanitizeString(r.URL.Query().Get(key), 256)
}
