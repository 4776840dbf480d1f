// Package bootstrap builds the application object graph.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	appControllers "github.com/teamthree/jobapply/internal/app/controllers"
	appMigrations "github.com/teamthree/jobapply/internal/app/migrations"
	appRepos "github.com/teamthree/jobapply/internal/app/repositories"
	appRoutes "github.com/teamthree/jobapply/internal/app/routes"
	appServices "github.com/teamthree/jobapply/internal/app/services"
	"github.com/teamthree/jobapply/internal/config"
	"github.com/teamthree/jobapply/internal/db"
	appMiddleware "github.com/teamthree/jobapply/internal/middleware"
	pkgAuth "github.com/teamthree/jobapply/internal/pkg/auth"
	"github.com/teamthree/jobapply/internal/pkg/helpers"
	"github.com/teamthree/jobapply/internal/pkg/logger"
	"github.com/teamthree/jobapply/internal/scheduler"
	"github.com/teamthree/jobapply/internal/seed"
)

// Scheduled task names. The admin scheduler endpoints address tasks by
// these names.
const (
	TaskAutoCloseJobs  = "auto-close-expired-jobs"
	TaskSessionCleanup = "session-cleanup"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	JobService            *appServices.JobService
	ApplicationService    *appServices.ApplicationService
	AuthService           *appServices.AuthService
	JobController         *appControllers.JobController
	LookupController      *appControllers.LookupController
	ApplicationController *appControllers.ApplicationController
	AuthController        *appControllers.AuthController
	SchedulerController   *appControllers.SchedulerController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Scheduler             *scheduler.Scheduler
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the lookup tables.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info().Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.SeedDatabase(context.Background(), dbPool, seed.DefaultAdmin{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}); err != nil {
		// A half-seeded lookup table is worth failing over; the API is
		// unusable without the taxonomies.
		return nil, fmt.Errorf("database seeding failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 168*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	runTx := func(ctx context.Context, fn db.TransactionFn) error {
		return db.WithTransaction(ctx, dbPool, fn)
	}

	deps.JobService = appServices.NewJobService(deps.Repos.JobRoles, deps.Repos.Lookups)
	deps.ApplicationService = appServices.NewApplicationService(deps.Repos.Applications, deps.Repos.JobRoles, runTx)
	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.JWTService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.Users)

	deps.Scheduler = buildScheduler(cfg, deps.JobService, deps.AuthService)

	deps.JobController = appControllers.NewJobController(deps.JobService)
	deps.LookupController = appControllers.NewLookupController(deps.JobService)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.SchedulerController = appControllers.NewSchedulerController(deps.Scheduler)

	return deps, nil
}

func buildScheduler(cfg *config.Config, jobService *appServices.JobService, authService *appServices.AuthService) *scheduler.Scheduler {
	sched := scheduler.New()

	if err := sched.RegisterTask(TaskAutoCloseJobs, cfg.Scheduler.AutoCloseCron, func(ctx context.Context) error {
		_, _, err := jobService.AutoCloseExpiredJobRoles(ctx)
		return err
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to register auto-close task")
	}

	if err := sched.RegisterTask(TaskSessionCleanup, cfg.Scheduler.SessionCleanupCron, func(ctx context.Context) error {
		_, err := authService.CleanupExpiredSessions(ctx)
		return err
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to register session-cleanup task")
	}

	return sched
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.JobController,
		deps.LookupController,
		deps.ApplicationController,
		deps.AuthController,
		deps.SchedulerController,
		deps.AuthMiddleware,
	)

	return router
}
