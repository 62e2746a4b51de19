package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/docuvault/backend/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// RoleLookup resolves a role by ID so the middleware can derive the admin flag
type RoleLookup interface {
	GetByID(ctx context.Context, roleID int) (*models.Role, error)
}

// Middleware validates the bearer token and puts the caller's Identity into the
// request context. The admin flag is derived from the role title, so a deleted
// or demoted role drops admin rights on the next request.
func Middleware(tokenGenerator *TokenGenerator, roles RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			var token string
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"; a bare token is accepted too
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				} else if len(parts) == 1 {
					token = parts[0]
				}
			}

			// If no token found, return 401
			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Please Login!"}`))
				return
			}

			// Validate token and extract userID and roleID
			userID, roleID, err := tokenGenerator.ValidateToken(token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Invalid Authentication Details"}`))
				return
			}

			identity := models.Identity{UserID: userID, RoleID: roleID}

			// Resolve the role title to derive the admin flag. A missing role is
			// not an authentication failure; the caller simply has no admin rights.
			if role, err := roles.GetByID(r.Context(), roleID); err == nil {
				identity.IsAdmin = role.RoleTitle == models.AdminRoleTitle
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity returns a context carrying the identity
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the caller's identity from context
func GetIdentity(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// RequireAdmin rejects requests whose identity is not an admin. It must run
// after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok || !identity.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"Unauthorised User"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
