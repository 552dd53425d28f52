// Package bootstrap wires configuration, database, services and routes
// together into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emrekara/course-feedback/internal/app/controllers"
	appMigrations "github.com/emrekara/course-feedback/internal/app/migrations"
	appRepos "github.com/emrekara/course-feedback/internal/app/repositories"
	appRoutes "github.com/emrekara/course-feedback/internal/app/routes"
	appServices "github.com/emrekara/course-feedback/internal/app/services"
	"github.com/emrekara/course-feedback/internal/config"
	"github.com/emrekara/course-feedback/internal/db"
	appMiddleware "github.com/emrekara/course-feedback/internal/middleware"
	pkgAuth "github.com/emrekara/course-feedback/internal/pkg/auth"
	"github.com/emrekara/course-feedback/internal/pkg/logger"
	"github.com/emrekara/course-feedback/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	StudentService     *appServices.StudentService
	FeedbackService    *appServices.FeedbackService
	QuestionService    *appServices.QuestionService
	AuthService        *appServices.AuthService
	CredentialScheme   pkgAuth.CredentialScheme
	HealthController   *appControllers.HealthController
	AuthController     *appControllers.AuthController
	StudentController  *appControllers.StudentController
	FeedbackController *appControllers.FeedbackController
	QuestionController *appControllers.QuestionController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Logger             zerolog.Logger
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
// seeds the question catalog.
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

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// The catalog is advisory; the service still works without it.
		lgr.Error().Err(err).Msg("Failed to seed question catalog, proceeding anyway...")
	}

	return dbPool, nil
}

// buildCredentialScheme selects the credential implementation from config.
func buildCredentialScheme(cfg *config.Config) (pkgAuth.CredentialScheme, error) {
	switch cfg.Auth.Scheme {
	case config.SchemeLegacy:
		return pkgAuth.NewLegacyRollCredential(), nil
	case config.SchemeSigned:
		expiration, err := time.ParseDuration(cfg.Auth.CredentialExpiration)
		if err != nil {
			return nil, fmt.Errorf("invalid credential expiration: %w", err)
		}
		return pkgAuth.NewSignedCredential(pkgAuth.SignedCredentialConfig{
			SecretKey:  cfg.Auth.Secret,
			Expiration: expiration,
			Issuer:     cfg.Auth.Issuer,
		}), nil
	default:
		return nil, fmt.Errorf("unknown auth scheme %q", cfg.Auth.Scheme)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	scheme, err := buildCredentialScheme(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to build credential scheme")
		return nil, err
	}
	deps.CredentialScheme = scheme

	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.FeedbackService = appServices.NewFeedbackService(deps.Repos.FeedbackRepository, deps.Repos.StudentRepository)
	deps.QuestionService = appServices.NewQuestionService(deps.Repos.QuestionRepository)
	deps.AuthService = appServices.NewAuthService(deps.StudentService, deps.Repos.StudentRepository, scheme, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)

	deps.HealthController = appControllers.NewHealthController(dbPool, cfg.Server.Mode)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.FeedbackService, lgr)
	deps.QuestionController = appControllers.NewQuestionController(deps.QuestionService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.HealthController,
		deps.AuthController,
		deps.StudentController,
		deps.FeedbackController,
		deps.QuestionController,
		deps.AuthMiddleware,
		cfg.Auth.RequireCredential,
	)

	return router
}
