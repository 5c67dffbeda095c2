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

	appControllers "github.com/rahulk/vaxportal/internal/app/controllers"
	appMigrations "github.com/rahulk/vaxportal/internal/app/migrations"
	appRepos "github.com/rahulk/vaxportal/internal/app/repositories"
	appRoutes "github.com/rahulk/vaxportal/internal/app/routes"
	appServices "github.com/rahulk/vaxportal/internal/app/services"
	"github.com/rahulk/vaxportal/internal/config"
	"github.com/rahulk/vaxportal/internal/db"
	pkgAuth "github.com/rahulk/vaxportal/internal/pkg/auth"
	"github.com/rahulk/vaxportal/internal/pkg/helpers"
	"github.com/rahulk/vaxportal/internal/pkg/logger"
	"github.com/rahulk/vaxportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	StudentService      *appServices.StudentService
	ImportService       *appServices.ImportService
	DriveService        *appServices.DriveService
	VaccinationService  *appServices.VaccinationService
	DashboardService    *appServices.DashboardService
	AuthController      *appControllers.AuthController
	StudentController   *appControllers.StudentController
	DriveController     *appControllers.DriveController
	DashboardController *appControllers.DashboardController
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
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
		// Log but keep starting; the register endpoint still works
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.VaccinationRecordRepository)
	deps.ImportService = appServices.NewImportService(deps.Repos.StudentRepository, lgr)
	deps.DriveService = appServices.NewDriveService(
		deps.Repos.DriveRepository,
		deps.Repos.VaccinationRecordRepository,
		cfg.Drives.MinLeadTimeDays,
	)
	deps.VaccinationService = appServices.NewVaccinationService(
		deps.Repos.DriveRepository,
		deps.Repos.StudentRepository,
		deps.Repos.VaccinationRecordRepository,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.StudentRepository,
		deps.Repos.DriveRepository,
		deps.Repos.VaccinationRecordRepository,
		cfg.Drives.UpcomingWindowDays,
	)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.ImportService)
	deps.DriveController = appControllers.NewDriveController(deps.DriveService, deps.VaccinationService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

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
		deps.StudentController,
		deps.DriveController,
		deps.DashboardController,
		deps.JWTService,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
