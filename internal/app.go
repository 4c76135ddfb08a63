// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "bettracker/internal/api"
	"bettracker/internal/api/handler"
	"bettracker/internal/config"
	"bettracker/internal/repository"
	"bettracker/internal/repository/memstore"
	"bettracker/internal/repository/postgres"
	"bettracker/internal/repository/rediscache"
	"bettracker/internal/service"
	"bettracker/internal/util"
	"bettracker/pkg/cache"
	"bettracker/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	BetRepository repository.BetRepository
	StakeMemory   repository.StakeMemory

	// Services
	BetService service.BetService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()

	// 2. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.BetRepository = postgres.NewBetRepository(app.DB)

	// Stake memory lives in Redis when configured, otherwise in process.
	if app.Config.RedisAddr != "" {
		redisClient, err := cache.ConnectRedis(app.Config.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.StakeMemory = rediscache.NewStakeMemory(redisClient)
		app.Logger.Info("Redis stake memory initialized.", "addr", app.Config.RedisAddr)
	} else {
		app.StakeMemory = memstore.NewStakeMemory()
		app.Logger.Info("In-memory stake memory initialized.")
	}
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	app.BetService = service.NewBetService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.BetRepository,
		app.StakeMemory,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	betHandler := handler.NewBetHandler(app.BetService, app.Logger)
	app.HTTPHandler = router.NewRouter(betHandler, app.Logger)
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
