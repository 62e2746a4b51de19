package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/docuvault/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RoleService is the interface that wraps methods for role management.
type RoleService interface {
	// Method Create stores a new role; titles are unique.
	//
	// If the title collides with an existing role, models.ErrDuplicateEntry will be returned together with "nil" value.
	Create(ctx context.Context, req *models.CreateRoleRequest) (*models.Role, error)
	// Method GetAll retrieves every role.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Role, error)
}

// RoleHandler handles role-related HTTP requests
type RoleHandler struct {
	BaseHandler
	roleService RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		BaseHandler: BaseHandler{Logger: logger},
		roleService: roleService,
	}
}

// RegisterRoutes registers all role handler routes; creation is admin only
func (h *RoleHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Route("/roles", func(r chi.Router) {
		r.With(adminOnly).Post("/", h.Create)
		r.Get("/", h.GetAll)
	})
}

// Create handles POST /roles (admin only)
// @Summary Create a role
// @Description Create a new role that documents can be scoped to. Admin only.
// @Tags roles
// @Accept json
// @Produce json
// @Param request body models.CreateRoleRequest true "Role payload"
// @Success 201 {object} models.Role "Role created"
// @Failure 400 {object} map[string]string "Missing or duplicate title"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Router /roles [post]
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.roleService.Create(r.Context(), &req)
	if err != nil {
		if statusFromError(err) == http.StatusInternalServerError {
			h.Logger.Error("failed to create role", zap.Error(err))
		}
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, role)
}

// GetAll handles GET /roles
// @Summary List roles
// @Description List every role
// @Tags roles
// @Produce json
// @Success 200 {array} models.Role "Roles"
// @Router /roles [get]
func (h *RoleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("failed to get roles", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, roles)
}
