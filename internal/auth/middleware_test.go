package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docuvault/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRoleLookup serves a fixed role set for deriving the admin flag
type mockRoleLookup struct {
	roles map[int]string
}

func (m *mockRoleLookup) GetByID(_ context.Context, roleID int) (*models.Role, error) {
	title, ok := m.roles[roleID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &models.Role{ID: roleID, RoleTitle: title}, nil
}

func newTestRoleLookup() *mockRoleLookup {
	return &mockRoleLookup{roles: map[int]string{
		1: models.AdminRoleTitle,
		2: models.RegularRoleTitle,
	}}
}

func identityEcho(t *testing.T, captured *models.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		require.True(t, ok)
		*captured = identity
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	tokenGenerator := NewTokenGenerator("test-secret", time.Hour)
	middleware := Middleware(tokenGenerator, newTestRoleLookup())

	t.Run("missing token asks to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		w := httptest.NewRecorder()

		middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not be reached")
		})).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Please Login!"}`, w.Body.String())
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not be reached")
		})).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Invalid Authentication Details"}`, w.Body.String())
	})

	t.Run("valid bearer token yields the identity", func(t *testing.T) {
		token, err := tokenGenerator.GenerateToken(5, 2)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		var identity models.Identity
		middleware(identityEcho(t, &identity)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, identity.UserID)
		assert.Equal(t, 2, identity.RoleID)
		assert.False(t, identity.IsAdmin)
	})

	t.Run("bare token without the bearer prefix is accepted", func(t *testing.T) {
		token, err := tokenGenerator.GenerateToken(5, 2)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		req.Header.Set("Authorization", token)
		w := httptest.NewRecorder()

		var identity models.Identity
		middleware(identityEcho(t, &identity)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, identity.UserID)
	})

	t.Run("admin role title sets the admin flag", func(t *testing.T) {
		token, err := tokenGenerator.GenerateToken(1, 1)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		var identity models.Identity
		middleware(identityEcho(t, &identity)).ServeHTTP(w, req)

		assert.True(t, identity.IsAdmin)
	})

	t.Run("deleted role keeps the caller authenticated without admin rights", func(t *testing.T) {
		token, err := tokenGenerator.GenerateToken(5, 42)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		var identity models.Identity
		middleware(identityEcho(t, &identity)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, identity.IsAdmin)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("non-admin is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = req.WithContext(WithIdentity(req.Context(), models.Identity{UserID: 5, RoleID: 2}))
		w := httptest.NewRecorder()

		RequireAdmin(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not be reached")
		})).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"Unauthorised User"}`, w.Body.String())
	})

	t.Run("admin passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = req.WithContext(WithIdentity(req.Context(), models.Identity{UserID: 1, RoleID: 1, IsAdmin: true}))
		w := httptest.NewRecorder()

		reached := false
		RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(w, req)

		assert.True(t, reached)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
