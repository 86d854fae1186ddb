// Package bootstrap assembles the application: configuration, logging,
// graph loading, cache selection, and the HTTP surface.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appCache "github.com/syllabot/syllabot/internal/app/cache"
	appControllers "github.com/syllabot/syllabot/internal/app/controllers"
	"github.com/syllabot/syllabot/internal/app/engine"
	"github.com/syllabot/syllabot/internal/app/pagination"
	appRoutes "github.com/syllabot/syllabot/internal/app/routes"
	"github.com/syllabot/syllabot/internal/config"
	"github.com/syllabot/syllabot/internal/db"
	"github.com/syllabot/syllabot/internal/graph"
	appMiddleware "github.com/syllabot/syllabot/internal/middleware"
	pkgAuth "github.com/syllabot/syllabot/internal/pkg/auth"
	"github.com/syllabot/syllabot/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             *graph.Store
	Source            graph.Source
	Answers           appCache.Cache[engine.Answer]
	Pages             *pagination.Manager
	Engine            *engine.Engine
	JWTService        *pkgAuth.JWTService
	AuthMiddleware    *appMiddleware.AuthMiddleware
	WebhookController *appControllers.WebhookController
	AdminController   *appControllers.AdminController
	HealthController  *appControllers.HealthController
	Logger            zerolog.Logger
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

// SetupGraph builds the snapshot source, loads the initial snapshot and
// returns the store. The returned database handle is nil for the file
// source; the caller owns closing it otherwise.
func SetupGraph(cfg *config.Config, lgr zerolog.Logger) (*graph.Store, graph.Source, *db.PostgresDB, error) {
	var (
		source   graph.Source
		database *db.PostgresDB
	)

	switch cfg.Graph.Source {
	case config.GraphSourcePostgres:
		lgr.Info().Msg("Establishing graph database connection...")
		pg, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to graph database")
			return nil, nil, nil, err
		}
		database = pg
		source = graph.NewPostgresSource(pg.Pool)
	default:
		lgr.Info().Str("path", cfg.Graph.SnapshotPath).Msg("Using file snapshot source")
		source = graph.NewFileSource(cfg.Graph.SnapshotPath)
	}

	store := graph.NewStore(lgr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.Load(ctx, source); err != nil {
		if database != nil {
			database.Close()
		}
		lgr.Error().Err(err).Msg("Failed to load initial snapshot")
		return nil, nil, nil, fmt.Errorf("initial snapshot load failed: %w", err)
	}

	return store, source, database, nil
}

// BuildDependencies wires the cache, engine, auth and controllers.
func BuildDependencies(cfg *config.Config, store *graph.Store, source graph.Source, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Store:  store,
		Source: source,
		Logger: lgr,
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.Answers = appCache.NewRedis[engine.Answer](client)
		lgr.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("Using redis answer cache")
	default:
		deps.Answers = appCache.NewLRU[engine.Answer](cfg.Cache.MaxEntries)
		lgr.Info().Int("maxEntries", cfg.Cache.MaxEntries).Msg("Using in-memory answer cache")
	}

	deps.Pages = pagination.NewManager(cfg.Pagination.PageSize)
	deps.Engine = engine.New(store, deps.Answers, deps.Pages, lgr)

	if cfg.Auth.AdminSecret != "" {
		tokenExp, err := time.ParseDuration(cfg.Auth.TokenExpiration)
		if err != nil {
			return nil, fmt.Errorf("invalid token expiration: %w", err)
		}
		deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
			SecretKey:   cfg.Auth.AdminSecret,
			TokenExp:    tokenExp,
			TokenIssuer: cfg.Auth.Issuer,
		})
		deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
		deps.AdminController = appControllers.NewAdminController(
			store, source, deps.Engine, deps.JWTService, cfg.Auth.AdminSecret, lgr)
	} else {
		lgr.Warn().Msg("No admin secret configured; admin endpoints disabled")
	}

	deps.WebhookController = appControllers.NewWebhookController(deps.Engine, lgr)
	deps.HealthController = appControllers.NewHealthController(store, deps.Answers)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.CORS())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRoutes(router, appRoutes.Controllers{
		Webhook: deps.WebhookController,
		Admin:   deps.AdminController,
		Health:  deps.HealthController,
	}, deps.AuthMiddleware)

	return router
}
