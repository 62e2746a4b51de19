package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuvault/backend/internal/models"
	"go.uber.org/zap"
)

// roleService implements role management
type roleService struct {
	roleRepo RoleRepository
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo RoleRepository, logger *zap.Logger) *roleService {
	return &roleService{
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Create stores a new role; titles are unique
func (s *roleService) Create(ctx context.Context, req *models.CreateRoleRequest) (*models.Role, error) {
	title := strings.TrimSpace(req.RoleTitle)
	if title == "" {
		return nil, fmt.Errorf("%w: roleTitle is required", models.ErrValidation)
	}

	role := &models.Role{RoleTitle: title}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		s.logger.Error("failed to create role", zap.Error(err), zap.String("roleTitle", title))
		return nil, err
	}

	return role, nil
}

// GetAll retrieves every role
func (s *roleService) GetAll(ctx context.Context) ([]models.Role, error) {
	roles, err := s.roleRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get roles", zap.Error(err))
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	return roles, nil
}
