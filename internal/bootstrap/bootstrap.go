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

	appControllers "registrar/internal/app/controllers"
	appMigrations "registrar/internal/app/migrations"
	appRepos "registrar/internal/app/repositories"
	appRoutes "registrar/internal/app/routes"
	"registrar/internal/app/scheduling"
	appServices "registrar/internal/app/services"
	"registrar/internal/config"
	"registrar/internal/db"
	appMiddleware "registrar/internal/middleware"
	"registrar/internal/pkg/logger"
	"registrar/internal/pkg/metrics"
	"registrar/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	RegistrationService     appServices.SemesterRegistrationService
	OfferedCourseService    appServices.OfferedCourseService
	RegistrationController  *appControllers.SemesterRegistrationController
	OfferedCourseController *appControllers.OfferedCourseController
	AuthMiddleware          *appMiddleware.AuthMiddleware
	Repos                   *appRepos.Repositories
	Metrics                 *metrics.Metrics
	Logger                  zerolog.Logger
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
		// Log the error but don't fail the startup over seed data
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Metrics = metrics.New()

	catalog := scheduling.NewTimeSlotCatalog()

	deps.RegistrationService = appServices.NewSemesterRegistrationService(
		deps.Repos.SemesterRegistrationRepository,
		deps.Repos.AcademicSemesterRepository,
		deps.Metrics,
	)
	deps.OfferedCourseService = appServices.NewOfferedCourseService(
		deps.Repos.OfferedCourseRepository,
		deps.Repos.SemesterRegistrationRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.InstructorRepository,
		catalog,
		deps.Metrics,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer)

	deps.RegistrationController = appControllers.NewSemesterRegistrationController(deps.RegistrationService)
	deps.OfferedCourseController = appControllers.NewOfferedCourseController(deps.OfferedCourseService)

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
		deps.RegistrationController,
		deps.OfferedCourseController,
		deps.AuthMiddleware,
	)

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
