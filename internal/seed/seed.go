package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/etchegaray/integria-connect/internal/app/models"
	appRepos "github.com/etchegaray/integria-connect/internal/app/repositories"
)

const defaultManagerEmail = "manager@integria.org"

// CreateDefaultData seeds the default manager account so a fresh
// installation has at least one account able to administer the rest.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default manager account...")

	exists, err := userRepo.EmailExists(ctx, defaultManagerEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if default manager exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Default manager already exists, skipping creation")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Manager123!"), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default manager password")
		return err
	}

	manager := &appModels.User{
		Email:     defaultManagerEmail,
		Password:  string(hashedPassword),
		FirstName: "System",
		LastName:  "Manager",
		RoleType:  appModels.RoleManager,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	managerID, err := userRepo.Create(ctx, manager)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default manager")
		return errors.Join(errors.New("failed to seed default manager"), err)
	}

	lgr.Info().Int64("managerID", managerID).Msg("Default manager account created")
	return nil
}
