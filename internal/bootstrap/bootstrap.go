// Package bootstrap wires configuration, session storage, the backend client and the page
// handlers into a gin engine.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/edureach/internal/app/controllers"
	appRoutes "github.com/yigit/edureach/internal/app/routes"
	appServices "github.com/yigit/edureach/internal/app/services"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/config"
	"github.com/yigit/edureach/internal/db"
	appMiddleware "github.com/yigit/edureach/internal/middleware"
	"github.com/yigit/edureach/internal/pkg/logger"
	"github.com/yigit/edureach/internal/session"
)

// rateLimiterTTL is how long an idle client IP keeps its limiter.
const rateLimiterTTL = 10 * time.Minute

// Dependencies holds all the application dependencies
type Dependencies struct {
	Storage     session.Storage
	Backend     *backend.Client
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Middlewares appRoutes.Middlewares
	Logger      zerolog.Logger

	closers []func()
}

// OnClose registers fn to run on Close.
func (d *Dependencies) OnClose(fn func()) {
	if fn != nil {
		d.closers = append(d.closers, fn)
	}
}

// Close releases the session storage connections.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupSessionStorage opens the storage selected by session.driver. The returned closer
// releases its connections.
func SetupSessionStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (session.Storage, func(), error) {
	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connecting to Redis session storage...")
		storage, err := session.NewRedisStorage(ctx, session.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return storage, func() {
			if err := storage.Close(); err != nil {
				lgr.Error().Err(err).Msg("Failed to close Redis client")
			}
		}, nil

	case config.SessionDriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		storage := session.NewPostgresStorage(database.Pool)
		if err := storage.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		lgr.Info().Msg("Session table ready.")
		return storage, database.Close, nil

	default:
		lgr.Warn().Msg("Using in-memory session storage; sessions are lost on restart")
		return session.NewMemoryStorage(), func() {}, nil
	}
}

// BuildDependencies initializes the backend client, services, controllers and middleware on
// top of an already opened storage.
func BuildDependencies(cfg *config.Config, storage session.Storage, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Storage: storage, Logger: lgr}

	deps.Backend = backend.New(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.BackendTimeout(),
		Logger:  lgr.With().Str("component", "backend").Logger(),
	})

	deps.Services = appServices.New(deps.Backend, appServices.Options{
		AssetBaseURL: cfg.AssetBaseURL(),
		Logger:       lgr,
	})

	deps.Controllers = appRoutes.Controllers{
		Page:         appControllers.NewPageController(),
		Auth:         appControllers.NewAuthController(deps.Services.Auth, lgr),
		Home:         appControllers.NewHomeController(deps.Services.Home, lgr),
		Community:    appControllers.NewCommunityController(deps.Services.Community, lgr),
		Schedule:     appControllers.NewScheduleController(deps.Services.Schedule, lgr),
		Notification: appControllers.NewNotificationController(deps.Services.Notification, lgr),
		Profile:      appControllers.NewProfileController(deps.Services.Profile, lgr),
		Summarizer:   appControllers.NewSummarizerController(deps.Services.Summarizer, lgr),
	}

	deps.Middlewares = appRoutes.Middlewares{
		Session: appMiddleware.Session(storage, appMiddleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.CookieMaxAge,
		}, lgr),
		Auth:        appMiddleware.NewAuthMiddleware(nil, lgr),
		RateLimiter: appMiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, rateLimiterTTL),
	}

	return deps
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

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))
	router.MaxMultipartMemory = 32 << 20

	appRoutes.SetupRouter(router, deps.Controllers, deps.Middlewares)

	return router
}
