package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docuvault/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// userService implements user profile management
type userService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetByID retrieves a user profile
func (s *userService) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", models.ErrValidation)
	}
	return s.userRepo.GetByID(ctx, userID)
}

// GetAll retrieves every user; the handler restricts this to admins
func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get users", zap.Error(err))
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// Update patches a user profile. Only the user themselves or an admin may do
// it; a supplied password is rehashed before storage.
func (s *userService) Update(ctx context.Context, identity models.Identity, userID int, req *models.UpdateUserRequest) (*models.User, error) {
	if !identity.IsAdmin && identity.UserID != userID {
		return nil, models.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if !emailRegex.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", models.ErrValidation)
		}
		user.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters long", models.ErrValidation)
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(passwordHash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user", zap.Error(err), zap.Int("userId", userID))
		return nil, err
	}

	return user, nil
}

// Delete removes a user account along with their documents. Only the user
// themselves or an admin may do it.
func (s *userService) Delete(ctx context.Context, identity models.Identity, userID int) error {
	if !identity.IsAdmin && identity.UserID != userID {
		return models.ErrUnauthorized
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to delete user", zap.Error(err), zap.Int("userId", userID))
		}
		return err
	}

	return nil
}
