// Seed populates the database with fixture roles, users and documents.
// Intended for local development and demo environments.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/docuvault/backend/internal/config"
	"github.com/docuvault/backend/internal/logger"
	"github.com/docuvault/backend/internal/models"
	"github.com/docuvault/backend/internal/repositories"
	"github.com/docuvault/backend/internal/services"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Logger.Fatal("Failed to ping database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, db); err != nil {
		logger.Logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Logger.Info("Seeding complete")
}

// seed creates two users (one admin, one regular) and a batch of documents
// covering every access class
func seed(ctx context.Context, db *sql.DB) error {
	roleRepo := repositories.NewRoleRepository(db, logger.Logger)
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	documentRepo := repositories.NewDocumentRepository(db, logger.Logger)

	adminRole, err := roleRepo.GetByTitle(ctx, models.AdminRoleTitle)
	if err != nil {
		return fmt.Errorf("admin role missing, run migrations first: %w", err)
	}
	regularRole, err := roleRepo.GetByTitle(ctx, models.RegularRoleTitle)
	if err != nil {
		return fmt.Errorf("regular role missing, run migrations first: %w", err)
	}

	admin, err := seedUser(ctx, userRepo, &models.User{
		Username:  "vaultadmin",
		FirstName: "Ada",
		LastName:  "Keeper",
		Email:     "admin@docuvault.local",
		RoleID:    adminRole.ID,
	}, "ChangeMe-1")
	if err != nil {
		return err
	}

	author, err := seedUser(ctx, userRepo, &models.User{
		Username:  "firstauthor",
		FirstName: "Toni",
		LastName:  "Writer",
		Email:     "author@docuvault.local",
		RoleID:    regularRole.ID,
	}, "ChangeMe-2")
	if err != nil {
		return err
	}

	docs := []models.Document{
		{Title: "Welcome", Content: "Public onboarding notes", OwnerID: admin.ID, Access: models.AccessPublic},
		{Title: "Admin runbook", Content: "Private operational notes", OwnerID: admin.ID, Access: models.AccessPrivate},
		{Title: "Team brief", Content: "Visible to regular members only", OwnerID: admin.ID, Access: models.AccessRole, RoleID: regularRole.ID},
		{Title: "Draft essay", Content: "Work in progress", OwnerID: author.ID, Access: models.AccessPrivate},
		{Title: "Published essay", Content: "Readable by everyone", OwnerID: author.ID, Access: models.AccessPublic},
	}

	if err := documentRepo.BulkCreate(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed documents: %w", err)
	}

	logger.Logger.Info("Seeded fixtures",
		zap.Int("adminUserId", admin.ID),
		zap.Int("authorUserId", author.ID),
		zap.Int("documents", len(docs)),
	)
	return nil
}

// seedUser creates a user unless the username is already taken
func seedUser(ctx context.Context, userRepo services.UserRepository, user *models.User, password string) (*models.User, error) {
	existing, err := userRepo.GetByEmailOrUsername(ctx, user.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user %q: %w", user.Username, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)

	if err := userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to seed user %q: %w", user.Username, err)
	}
	return user, nil
}
