package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gridpage/gridpage/internal/config"
	"github.com/gridpage/gridpage/internal/httpserver"
	"github.com/gridpage/gridpage/internal/httpserver/deps"
	"github.com/gridpage/gridpage/internal/index"
	"github.com/gridpage/gridpage/internal/logger"
	"github.com/gridpage/gridpage/internal/redis"
	"github.com/gridpage/gridpage/internal/release"
	"github.com/gridpage/gridpage/internal/scheduler"
	redisstore "github.com/gridpage/gridpage/internal/store/redis"
	"github.com/gridpage/gridpage/internal/version"
	"github.com/gridpage/gridpage/internal/web"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.ContentReloader
	poller      *scheduler.ReleasePoller
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional: without an address the content snapshot lives
	// only in memory and is rebuilt from the config directory on boot.
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		var err error
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		store = redisstore.NewStore(redisClient)
	} else {
		loggerClient.Info("Redis not configured, running with in-memory content cache only")
	}

	memIndex := index.NewMemoryIndex()

	// Warm the memory index from Redis so a restart serves the last
	// known content before the first directory load finishes.
	if store != nil {
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, will load from config dir",
				logger.Error(err))
		}
	}

	// Manual reload trigger, served by /api/revalidate.
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewContentReloader(
		cfg.ConfigDir,
		store,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		cfg.WatchConfig,
		cfg.WatchDebounce,
		reloadTrigger,
	)

	var poller *scheduler.ReleasePoller
	if cfg.ReleaseFeedURL != "" {
		poller = scheduler.NewReleasePoller(
			release.NewChecker(cfg.ReleaseFeedURL),
			store,
			memIndex,
			loggerClient,
			cfg.ReleaseInterval,
		)
	} else {
		loggerClient.Info("release feed not configured, update check disabled")
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to build page renderer: %w", err)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RedisClient:   redisClient,
		MemoryIndex:   memIndex,
		Renderer:      renderer,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		poller:      poller,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Gridpage v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Gridpage %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start content reloader (loads the config dir and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start content reloader: %w", err)
	}
	a.logger.Info("content reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.Bool("watch", a.cfg.WatchConfig))

	// Start release poller (skips itself on rolling builds)
	if a.poller != nil {
		if err := a.poller.Start(ctx); err != nil {
			return fmt.Errorf("failed to start release poller: %w", err)
		}
		a.logger.Info("release poller started",
			logger.Duration("interval", a.cfg.ReleaseInterval))
	}

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

	if a.poller != nil {
		a.poller.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Gridpage stopped cleanly")
	return nil
}
