// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "agent-ledger/internal/api"
	"agent-ledger/internal/api/handler"
	"agent-ledger/internal/config"
	"agent-ledger/internal/repository"
	"agent-ledger/internal/repository/postgres"
	"agent-ledger/internal/service"
	"agent-ledger/internal/util"
	"agent-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	CreditRepository      repository.CreditRepository
	TransactionRepository repository.TransactionRepository
	PackageRepository     repository.PackageRepository

	// Services
	UserService         service.UserService
	SubscriptionService service.SubscriptionService
	CreditService       service.CreditService
	UsageService        service.UsageService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: util.GetLogger()}
}

// Initialize initializes all application components. configPath may be empty,
// in which case only defaults and environment variables are used.
func (app *Application) Initialize(ctx context.Context, configPath string) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "config_file", configPath, "log_level", cfg.LogLevel)

	// 3. Connect to Database
	database, err := db.NewPostgresDB(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.", "host", cfg.DB.Host, "db", cfg.DB.DBName)

	if cfg.RunMigrations {
		applied, err := db.ApplyMigrations(ctx, app.DB)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		app.Logger.Info("Migrations applied.", "applied", applied)
	}

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository()
	app.CreditRepository = postgres.NewCreditRepository()
	app.TransactionRepository = postgres.NewTransactionRepository()
	app.PackageRepository = postgres.NewPackageRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	// The pool is both the DBTxBeginner and the plain DBExecutor.
	app.UserService = service.NewUserService(app.DB, app.UserRepository, app.CreditRepository, cfg.StrictPubkeys)
	app.SubscriptionService = service.NewSubscriptionService(
		app.DB,
		app.UserRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.CreditService = service.NewCreditService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.CreditRepository,
		app.TransactionRepository,
		app.PackageRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.UsageService = service.NewUsageService(app.DB, app.UserRepository, app.CreditRepository, app.TransactionRepository)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	userHandler := handler.NewUserHandler(app.UserService, app.SubscriptionService, app.UsageService, app.Logger)
	creditHandler := handler.NewCreditHandler(app.CreditService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, creditHandler, cfg.RequestTimeout)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
