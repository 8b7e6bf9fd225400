package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/etchegaray/integria-connect/internal/app/controllers"
	appMigrations "github.com/etchegaray/integria-connect/internal/app/migrations"
	appRepos "github.com/etchegaray/integria-connect/internal/app/repositories"
	appRoutes "github.com/etchegaray/integria-connect/internal/app/routes"
	appServices "github.com/etchegaray/integria-connect/internal/app/services"
	"github.com/etchegaray/integria-connect/internal/config"
	"github.com/etchegaray/integria-connect/internal/db"
	appMiddleware "github.com/etchegaray/integria-connect/internal/middleware"
	pkgAuth "github.com/etchegaray/integria-connect/internal/pkg/auth"
	"github.com/etchegaray/integria-connect/internal/pkg/helpers"
	"github.com/etchegaray/integria-connect/internal/pkg/logger"
	"github.com/etchegaray/integria-connect/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	UserService       *appServices.UserService
	CourseService     *appServices.CourseService
	SessionService    *appServices.SessionService
	EnrollmentService *appServices.EnrollmentService
	AttendanceService *appServices.AttendanceService
	AssignmentService *appServices.AssignmentService
	InterviewService  *appServices.InterviewService

	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	CourseController     *appControllers.CourseController
	SessionController    *appControllers.SessionController
	EnrollmentController *appControllers.EnrollmentController
	AttendanceController *appControllers.AttendanceController
	AssignmentController *appControllers.AssignmentController
	InterviewController  *appControllers.InterviewController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	// Purge stale refresh tokens accumulated since the last run
	tokenRepo := appRepos.NewTokenRepository(dbPool)
	if deleted, err := tokenRepo.CleanupExpiredTokens(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to clean up expired refresh tokens")
	} else if deleted > 0 {
		lgr.Info().Int64("deleted", deleted).Msg("Expired refresh tokens cleaned up")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.TokenRepository)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.UserRepository,
	)
	deps.SessionService = appServices.NewSessionService(deps.Repos.CourseRepository, deps.Repos.SessionRepository)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.UserRepository,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.CourseRepository,
		deps.Repos.SessionRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.AttendanceRepository,
		deps.Repos.UserRepository,
	)
	deps.AssignmentService = appServices.NewAssignmentService(deps.Repos.AssignmentRepository, deps.Repos.UserRepository)
	deps.InterviewService = appServices.NewInterviewService(
		deps.Repos.InterviewRepository,
		deps.Repos.AssignmentRepository,
		deps.Repos.UserRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, logger.WithComponent("auth"))
	deps.UserController = appControllers.NewUserController(deps.UserService, logger.WithComponent("users"))
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, logger.WithComponent("courses"))
	deps.SessionController = appControllers.NewSessionController(deps.SessionService, logger.WithComponent("sessions"))
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, logger.WithComponent("enrollments"))
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService, logger.WithComponent("attendance"))
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService, logger.WithComponent("assignments"))
	deps.InterviewController = appControllers.NewInterviewController(deps.InterviewService, logger.WithComponent("interviews"))

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.CourseController,
		deps.SessionController,
		deps.EnrollmentController,
		deps.AttendanceController,
		deps.AssignmentController,
		deps.InterviewController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
