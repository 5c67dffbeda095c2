package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/rahulk/vaxportal/internal/app/models"
	"github.com/rahulk/vaxportal/internal/app/repositories"
	"github.com/rahulk/vaxportal/internal/pkg/auth"
)

// Default coordinator credentials created on first startup. The password is
// meant to be changed immediately in any real deployment.
const (
	defaultCoordinatorName     = "School Coordinator"
	defaultCoordinatorEmail    = "admin@school.edu"
	defaultCoordinatorPassword = "changeme123"
)

// CreateDefaultData creates the default coordinator account when the users
// table is empty, so a fresh install is immediately usable.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	existing, err := userRepo.GetByEmail(ctx, defaultCoordinatorEmail)
	if err != nil {
		return fmt.Errorf("failed to check for default coordinator: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(defaultCoordinatorPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default coordinator password: %w", err)
	}

	coordinator := &models.User{
		Name:         defaultCoordinatorName,
		Email:        defaultCoordinatorEmail,
		PasswordHash: hash,
	}
	if err := userRepo.Create(ctx, coordinator); err != nil {
		return fmt.Errorf("failed to create default coordinator: %w", err)
	}

	lgr.Info().Str("email", defaultCoordinatorEmail).Msg("Default coordinator account created")
	return nil
}
