package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/classroom/schoolapi/internal/app/models"
	appRepos "github.com/classroom/schoolapi/internal/app/repositories"
	"github.com/classroom/schoolapi/internal/config"
	"github.com/classroom/schoolapi/internal/pkg/auth"
)

// CreateDefaultData seeds the superadmin account if it does not exist.
// Regular accounts start inactive; the superadmin is the one account that
// can activate them, so it must exist before the first request.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.SuperadminEmail == "" || cfg.Seed.SuperadminPassword == "" {
		lgr.Info().Msg("Superadmin seed not configured, skipping")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, cfg.Seed.SuperadminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if superadmin exists")
		return err
	}
	if exists {
		return nil
	}

	lgr.Info().Str("email", cfg.Seed.SuperadminEmail).Msg("Creating superadmin account...")

	hashedPassword, err := auth.HashPassword(cfg.Seed.SuperadminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing superadmin password")
		return err
	}

	superadmin := &appModels.User{
		Email:       cfg.Seed.SuperadminEmail,
		Password:    hashedPassword,
		FirstName:   "Super",
		LastName:    "Admin",
		Role:        appModels.RoleSuperAdmin,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}

	if err := userRepo.Create(ctx, superadmin); err != nil {
		lgr.Error().Err(err).Msg("Error creating superadmin account")
		return err
	}

	lgr.Info().Int64("userID", superadmin.ID).Msg("Superadmin account created")
	return nil
}
