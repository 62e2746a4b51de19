package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/docuvault/backend/internal/auth"
	"github.com/docuvault/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetByEmailOrUsername retrieves a user by email or username.
	//
	// "login" parameter is matched against both the email and username columns.
	//
	// If no user matches, models.ErrNotFound will be returned together with "nil" value.
	GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method GetAll retrieves all users ordered by id.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method Update persists the mutable user fields.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned.
	Update(ctx context.Context, user *models.User) error
	// Method Delete removes a user; owned documents cascade.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned.
	Delete(ctx context.Context, userID int) error
}

// RoleRepository is the interface that wraps methods for Role table data access
type RoleRepository interface {
	// Method Create inserts a new role into the database.
	//
	// "role" parameter is used to create a new role; its ID is set on success.
	//
	// If some error occurs during role creation, the error will be returned.
	Create(ctx context.Context, role *models.Role) error
	// Method GetByID retrieves a role by ID.
	//
	// If role with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, roleID int) (*models.Role, error)
	// Method GetByTitle retrieves a role by its unique title.
	//
	// If role with such title does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByTitle(ctx context.Context, title string) (*models.Role, error)
	// Method GetAll retrieves all roles ordered by id.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Role, error)
}

// authService implements registration and login
type authService struct {
	userRepo       UserRepository
	roleRepo       RoleRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, roleRepo RoleRepository, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Register creates a new user account and returns a bearer token for it.
//
// The role defaults to "regular" when the request names none; a request naming
// a role that does not exist fails instead of silently nulling the reference.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, *models.User, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))
	normalizedUsername := strings.TrimSpace(req.Username)

	if normalizedUsername == "" {
		return "", nil, fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if req.FirstName == "" || req.LastName == "" {
		return "", nil, fmt.Errorf("%w: firstName and lastName are required", models.ErrValidation)
	}
	if !emailRegex.MatchString(normalizedEmail) {
		return "", nil, fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}
	if len(req.Password) < 8 {
		return "", nil, fmt.Errorf("%w: password must be at least 8 characters long", models.ErrValidation)
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, normalizedEmail)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailExists {
		return "", nil, fmt.Errorf("%w: email", models.ErrDuplicateEntry)
	}

	usernameExists, err := s.userRepo.ExistsByUsername(ctx, normalizedUsername)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameExists {
		return "", nil, fmt.Errorf("%w: username", models.ErrDuplicateEntry)
	}

	roleID := req.RoleID
	if roleID == 0 {
		role, err := s.roleRepo.GetByTitle(ctx, models.RegularRoleTitle)
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve default role: %w", err)
		}
		roleID = role.ID
	} else if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: roleId %d does not exist", models.ErrForeignKey, roleID)
		}
		return "", nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     normalizedUsername,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		RoleID:       roleID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err), zap.String("username", normalizedUsername))
		return "", nil, err
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user by email or username and returns a bearer token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	login := strings.TrimSpace(req.Login)
	if login == "" {
		return "", nil, fmt.Errorf("%w: login cannot be empty", models.ErrValidation)
	}
	if req.Password == "" {
		return "", nil, fmt.Errorf("%w: password cannot be empty", models.ErrValidation)
	}

	user, err := s.userRepo.GetByEmailOrUsername(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}
