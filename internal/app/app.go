package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/playgate/playgate/internal/config"
	"github.com/playgate/playgate/internal/endpoint"
	"github.com/playgate/playgate/internal/httpserver"
	"github.com/playgate/playgate/internal/httpserver/deps"
	"github.com/playgate/playgate/internal/logger"
	"github.com/playgate/playgate/internal/oauth"
	"github.com/playgate/playgate/internal/redis"
	"github.com/playgate/playgate/internal/scheduler"
	"github.com/playgate/playgate/internal/sources/platform"
	redisstore "github.com/playgate/playgate/internal/store/redis"
	"github.com/playgate/playgate/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	resolver    *endpoint.Resolver
	warmer      *scheduler.EndpointWarmer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
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

	// Candidate lists: built-in defaults, optionally replaced by file
	candidates, err := endpoint.LoadCandidates(cfg.EndpointsFile)
	if err != nil {
		loggerClient.Errorf("Failed to load endpoint candidates: %v", err)
		os.Exit(1)
	}

	overrides := make(map[endpoint.Operation]string, len(cfg.Overrides))
	for op, url := range cfg.Overrides {
		overrides[endpoint.Operation(op)] = url
	}

	resolver := endpoint.NewResolver(
		candidates,
		overrides,
		endpoint.NewHTTPProber(cfg.ProbeTimeout),
		loggerClient,
	)

	// Aggregation + OAuth services share the resolver
	games := platform.NewService(platform.NewClient(cfg.FetchTimeout), resolver, loggerClient)
	oauthService := oauth.NewService(
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.CallbackURL,
		cfg.Scopes,
		resolver,
		cfg.FetchTimeout,
		loggerClient,
	)

	store := redisstore.NewStore(redisClient)
	warmer := scheduler.NewEndpointWarmer(resolver, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		AllowedOrigins:  cfg.AllowedOrigins,
		TrustProxy:      cfg.TrustProxy,
		RedisClient:     redisClient,
		Store:           store,
		Resolver:        resolver,
		Games:           games,
		OAuth:           oauthService,
		SessionTTL:      cfg.SessionTTL,
		CacheTTL:        cfg.CacheTTL,
		CookieSecure:    cfg.CookieSecure,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		resolver:    resolver,
		warmer:      warmer,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Playgate v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Playgate %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the resolution cache in the background so first requests skip
	// the probing cost
	a.warmer.Start(ctx)
	a.logger.Info("endpoint warmup started")

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

	a.logger.Info("✅ Playgate stopped cleanly")
	return nil
}
