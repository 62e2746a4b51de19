package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/docuvault/backend/internal/models"
	"go.uber.org/zap"
)

// roleRepository implements RoleRepository
type roleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *sql.DB, logger *zap.Logger) *roleRepository {
	return &roleRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new role into the database
func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (role_title, created_at, updated_at)
		VALUES (?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query, role.RoleTitle)
	if err != nil {
		r.logger.Error("failed to create role", zap.Error(err), zap.String("roleTitle", role.RoleTitle))
		return fmt.Errorf("failed to create role: %w", translateError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	role.ID = int(id)
	return nil
}

// GetByID retrieves a role by ID
func (r *roleRepository) GetByID(ctx context.Context, roleID int) (*models.Role, error) {
	query := `
		SELECT id, role_title, created_at, updated_at
		FROM roles
		WHERE id = ?
		LIMIT 1
	`

	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, roleID).Scan(
		&role.ID,
		&role.RoleTitle,
		&role.CreatedAt,
		&role.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get role by id", zap.Error(err), zap.Int("roleId", roleID))
		return nil, fmt.Errorf("failed to get role by id: %w", err)
	}

	return role, nil
}

// GetByTitle retrieves a role by its unique title
func (r *roleRepository) GetByTitle(ctx context.Context, title string) (*models.Role, error) {
	query := `
		SELECT id, role_title, created_at, updated_at
		FROM roles
		WHERE role_title = ?
		LIMIT 1
	`

	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, title).Scan(
		&role.ID,
		&role.RoleTitle,
		&role.CreatedAt,
		&role.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get role by title", zap.Error(err), zap.String("roleTitle", title))
		return nil, fmt.Errorf("failed to get role by title: %w", err)
	}

	return role, nil
}

// GetAll retrieves all roles ordered by id
func (r *roleRepository) GetAll(ctx context.Context) ([]models.Role, error) {
	query := `
		SELECT id, role_title, created_at, updated_at
		FROM roles
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query roles", zap.Error(err))
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.RoleTitle, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return roles, nil
}
