package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/pokedex/internal/browse"
	"github.com/MrSnakeDoc/pokedex/internal/catalog"
	"github.com/MrSnakeDoc/pokedex/internal/config"
	"github.com/MrSnakeDoc/pokedex/internal/favorites"
	"github.com/MrSnakeDoc/pokedex/internal/httpserver"
	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
	"github.com/MrSnakeDoc/pokedex/internal/metrics"
	"github.com/MrSnakeDoc/pokedex/internal/querycache"
	"github.com/MrSnakeDoc/pokedex/internal/redis"
	"github.com/MrSnakeDoc/pokedex/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/pokedex/internal/store/redis"
	"github.com/MrSnakeDoc/pokedex/internal/utils"
	"github.com/MrSnakeDoc/pokedex/internal/version"
)

// App is the HTTP service: one favorites list in Redis shared by every
// instance, a per-process query cache optionally mirrored in Redis.
type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.Reloader
	sweeper     *scheduler.CacheSweeper
	relay       *scheduler.FavoritesRelay
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(context.Background(), redis.OptionsFromConfig(cfg), loggerClient.Named("redis"))
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	instance := uuid.New().String()
	store := redisstore.NewStore(redisClient, instance)
	m := metrics.New()

	favs := favorites.FromBackend(store.Favorites(), loggerClient.Named("favorites"), m)

	var cacheBackend querycache.Backend
	if cfg.RedisResponseCache {
		cacheBackend = store
	}
	cache := querycache.New(cacheBackend, loggerClient.Named("cache"), m)

	service := browse.New(catalog.New(cfg.Catalog, m), cache, favs)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewReloader(
		cfg.FavoritesSeedFile,
		favs,
		cache,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)
	sweeper := scheduler.NewCacheSweeper(cache, loggerClient, cfg.CacheSweepInterval)
	relay := scheduler.NewFavoritesRelay(store, favs, loggerClient)

	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		AllowedHosts:       cfg.AllowedHosts,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		RateLimitBurst:     cfg.RateLimitBurst,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Browse:             service,
		Cache:              cache,
		Redis:              store,
		Metrics:            m,
		CatalogURL:         cfg.Catalog.BaseURL,
		SeedFile:           cfg.FavoritesSeedFile,
		ReloadTrigger:      reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reloader:    reloader,
		sweeper:     sweeper,
		relay:       relay,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Pokédex v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Pokédex %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Import the favorites seed and start periodic re-imports
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start favorites reloader: %w", err)
	}
	a.logger.Info("favorites reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	a.sweeper.Start(ctx)
	a.logger.Info("cache sweeper started",
		logger.Duration("interval", a.cfg.CacheSweepInterval))

	a.relay.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	utils.CloseLogged(a.redisClient, "redis", a.logger)

	a.logger.Info("✅ Pokédex stopped cleanly")
	return nil
}
