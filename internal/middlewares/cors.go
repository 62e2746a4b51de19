package middlewares

import (
	"net/http"
	"slices"
	"strings"
)

// Headers the document API accepts cross-origin: JSON bodies, the bearer
// token and the correlation ID.
const corsAllowedHeaders = "Content-Type, Authorization, X-Request-ID"

// CORSMiddleware answers preflight requests and stamps CORS headers for the
// configured origins. Requests from origins outside the list get no CORS
// headers at all, leaving the browser to block them.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := resolveOrigin(r.Header.Get("Origin"), allowedOrigins); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Max-Age", "3600")
				if origin != "*" {
					// The response differs per origin, so caches must key on it
					w.Header().Add("Vary", "Origin")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolveOrigin returns the Access-Control-Allow-Origin value for the request
// origin: "*" when everything is allowed, the origin itself when listed, and
// "" when the request carries no origin or an unlisted one.
func resolveOrigin(requestOrigin string, allowedOrigins []string) string {
	if requestOrigin == "" {
		return ""
	}

	if slices.Contains(allowedOrigins, "*") {
		return "*"
	}

	if slices.ContainsFunc(allowedOrigins, func(allowed string) bool {
		return strings.EqualFold(requestOrigin, allowed)
	}) {
		return requestOrigin
	}

	return ""
}
