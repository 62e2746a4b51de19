package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/docuvault/backend/internal/auth"
	"github.com/docuvault/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for registration and login.
type AuthService interface {
	// Method Register creates a new user account and returns a bearer token for it.
	//
	// "req" parameter contains username, names, email, password and an optional role.
	//
	// If the credentials are invalid or collide with an existing user, the error will be returned together with empty token and "nil" user.
	Register(ctx context.Context, req *models.RegisterRequest) (string, *models.User, error)
	// Method Login authenticates a user by email or username.
	//
	// If the credentials do not match, models.ErrInvalidCredentials will be returned together with empty token and "nil" user.
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error)
}

// UserService is the interface that wraps methods for user profile management.
type UserService interface {
	// Method GetByID retrieves a user profile.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetAll retrieves every user.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method Update patches a user profile; only the user themselves or an admin may do it.
	//
	// If the identity may not act on the user, models.ErrUnauthorized will be returned together with "nil" value.
	Update(ctx context.Context, identity models.Identity, userID int, req *models.UpdateUserRequest) (*models.User, error)
	// Method Delete removes a user account along with their documents.
	//
	// Please reference Update method for the error values.
	Delete(ctx context.Context, identity models.Identity, userID int) error
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	BaseHandler
	authService AuthService
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService AuthService, userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
		userService: userService,
	}
}

// RegisterPublicRoutes registers the routes that need no token
func (h *UserHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/users", h.Register)
	r.Post("/users/login", h.Login)
}

// RegisterRoutes registers the authenticated user routes; the router must
// already run the auth middleware
func (h *UserHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.With(adminOnly).Get("/", h.GetAll)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Register handles POST /users
// @Summary Register a new user
// @Description Register a new user and return a bearer token. The role defaults to "regular".
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration payload"
// @Success 201 {object} map[string]any "User created"
// @Failure 400 {object} map[string]string "Invalid or duplicate credentials"
// @Router /users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		if statusFromError(err) == http.StatusInternalServerError {
			h.Logger.Error("failed to register user", zap.Error(err))
		}
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "User created",
		"token":   token,
		"user":    user,
	})
}

// Login handles POST /users/login
// @Summary Login
// @Description Authenticate with email or username plus password and return a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login payload"
// @Success 200 {object} map[string]any "Login successful"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.RespondError(w, http.StatusUnauthorized, "Invalid login credentials")
			return
		}
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GetAll handles GET /users (admin only)
// @Summary List users
// @Description List every registered user. Admin only.
// @Tags users
// @Produce json
// @Success 200 {array} models.User "Users"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Router /users [get]
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("failed to get users", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// GetByID handles GET /users/{id}
// @Summary Get a user
// @Description Get a user profile by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User "User"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.Error("failed to get user", zap.Error(err), zap.Int("userId", id))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Update handles PUT /users/{id}
// @Summary Update a user
// @Description Update a user profile; allowed for the user themselves or an admin
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User "Updated user"
// @Failure 403 {object} map[string]string "Caller may not update this user"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Please Login!")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), identity, id, &req)
	if err != nil {
		if statusFromError(err) == http.StatusInternalServerError {
			h.Logger.Error("failed to update user", zap.Error(err), zap.Int("userId", id))
		}
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}
// @Summary Delete a user
// @Description Delete a user account and their documents; allowed for the user themselves or an admin
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string "User deleted"
// @Failure 403 {object} map[string]string "Caller may not delete this user"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Please Login!")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.userService.Delete(r.Context(), identity, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "User not found")
			return
		}
		if statusFromError(err) == http.StatusInternalServerError {
			h.Logger.Error("failed to delete user", zap.Error(err), zap.Int("userId", id))
		}
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
