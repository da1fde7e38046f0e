package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"farmhub-backend/internal/croprec"
	"farmhub-backend/internal/marketplace"
	"farmhub-backend/internal/practices"
	"farmhub-backend/internal/shared/config"
	"farmhub-backend/internal/shared/server"
	"farmhub-backend/internal/shared/server/middleware"
	"farmhub-backend/internal/shared/storage/db"
	"farmhub-backend/internal/shared/telemetry"
	"farmhub-backend/internal/yield"
)

const (
	limiterPruneSpec = "@every 10m"
	limiterMaxIdle   = 15 * time.Minute
)

// App holds shared dependencies.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Scheduler *cron.Cron
	Limiter   *middleware.RateLimiter

	MarketplaceService *marketplace.Service
	PracticesService   *practices.Service
	CropClient         *croprec.Client

	YieldHandler     *yield.Handler
	MarketHandler    *marketplace.Handler
	PracticesHandler *practices.Handler
	CropHandler      *croprec.Handler
}

// Build prepares dependencies and wires routes. The scheduler is
// configured but not started.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Limiter: middleware.NewRateLimiter(nil),
	}
	buildServices(app)

	if err := buildScheduler(app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		YieldHandler:     app.YieldHandler,
		MarketHandler:    app.MarketHandler,
		PracticesHandler: app.PracticesHandler,
		CropHandler:      app.CropHandler,
		Limiter:          app.Limiter,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_catalogs", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			sqlDB = nil
		}
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_catalogs", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	var marketRepo marketplace.Repo
	var practicesRepo practices.Repo
	if app.DB != nil {
		marketRepo = &marketplace.PGRepo{DB: app.DB}
		practicesRepo = &practices.PGRepo{DB: app.DB}
	} else {
		marketRepo = marketplace.NewMemoryRepo()
		practicesRepo = practices.NewMemoryRepo()
	}

	app.MarketplaceService = marketplace.NewService(marketRepo)
	app.PracticesService = practices.NewService(practicesRepo)
	app.CropClient = croprec.NewClient(app.Config.CropMLURL, app.Config.CropMLTimeout)
	if !app.CropClient.Configured() {
		telemetry.Warn("bootstrap.crop_ml_disabled", map[string]any{"reason": "CROP_ML_URL empty"})
	}

	app.YieldHandler = yield.NewHandler()
	app.MarketHandler = marketplace.NewHandler(app.MarketplaceService)
	app.PracticesHandler = practices.NewHandler(app.PracticesService)
	app.CropHandler = croprec.NewHandler(app.CropClient)
}

func buildScheduler(app *App) error {
	app.Scheduler = cron.New(cron.WithChain(cron.Recover(cronLogger{})), cron.WithLogger(cronLogger{}))

	spec := strings.TrimSpace(app.Config.CatalogRefreshSpec)
	if spec != "" {
		if _, err := app.Scheduler.AddFunc(spec, func() { app.RefreshCatalogs(context.Background()) }); err != nil {
			return fmt.Errorf("invalid CATALOG_REFRESH_SPEC %q: %w", spec, err)
		}
	}
	if _, err := app.Scheduler.AddFunc(limiterPruneSpec, func() {
		if n := app.Limiter.Prune(limiterMaxIdle); n > 0 {
			telemetry.Info("rate_limit.pruned", map[string]any{"buckets": n})
		}
	}); err != nil {
		return err
	}
	return nil
}

// RefreshCatalogs reloads both catalog snapshots. Failures are logged and
// the previous snapshot stays in service.
func (a *App) RefreshCatalogs(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_ = a.MarketplaceService.Refresh(ctx)
	_ = a.PracticesService.Refresh(ctx)
}

// Close releases the database handle.
func (a *App) Close() {
	if a == nil || a.DB == nil {
		return
	}
	if err := a.DB.Close(); err != nil {
		telemetry.Warn("bootstrap.db_close_failed", map[string]any{"error": err})
	}
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if msg == "wake" || msg == "run" || msg == "schedule" {
		return
	}
	telemetry.Info("cron."+msg, kvFields(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := kvFields(keysAndValues)
	fields["error"] = err
	telemetry.Error("cron."+msg, fields)
}

func kvFields(kv []interface{}) map[string]any {
	out := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
