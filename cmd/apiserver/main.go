// API server entry point for the treatment recommendation service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	apprec "github.com/CodingBot000/miracle3day-sub008/internal/application/recommendation"
	"github.com/CodingBot000/miracle3day-sub008/internal/config"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/catalog"
	"github.com/CodingBot000/miracle3day-sub008/internal/domain/climate"
	filecatalog "github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/catalog/file"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/database/postgres"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/database/redis"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/messaging/kafka"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/CodingBot000/miracle3day-sub008/internal/interfaces/http"
	"github.com/CodingBot000/miracle3day-sub008/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	skipMigrate := flag.Bool("skip-migrate", false, "skip database migrations at startup")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	cfgFromFile := err == nil
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, falling back to environment configuration\n", err)
		cfg, err = config.LoadFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
			os.Exit(1)
		}
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting recommendation api server",
		logging.String("version", config.Version),
		logging.Int("port", cfg.Server.Port),
		logging.String("catalog_source", cfg.Catalog.Source))

	// Hot-reload the log level when the config file changes on disk.
	if cfgFromFile {
		config.Watch(*configPath, func(newCfg *config.Config) {
			if ls, ok := logger.(logging.LevelSetter); ok {
				ls.SetLevel(newCfg.Log.Level)
			}
			logger.Info("configuration file reloaded",
				logging.String("log_level", newCfg.Log.Level))
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repo, checkers, cleanup, err := buildCatalogSource(ctx, cfg, logger, *skipMigrate)
	cancel()
	if err != nil {
		logger.Fatal("failed to initialize catalog source", logging.Err(err))
	}
	defer cleanup()

	metrics := prometheus.NewAppMetrics()

	opts := []apprec.Option{
		apprec.WithMetrics(metrics),
		apprec.WithDefaultClimate(climate.Context{
			UVIndex:     cfg.Climate.UVIndex,
			Temperature: cfg.Climate.Temperature,
			Humidity:    cfg.Climate.Humidity,
		}),
	}

	if cfg.Redis.Enabled {
		initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
		cache, cacheErr := redis.NewCache(initCtx, cfg.Redis, logger)
		initCancel()
		if cacheErr != nil {
			logger.Warn("redis unavailable, continuing without snapshot cache",
				logging.Err(cacheErr))
		} else {
			defer func() { _ = cache.Close() }()
			opts = append(opts, apprec.WithCache(cache, cfg.Catalog.CacheTTL))
			checkers = append(checkers, handlers.CheckerFunc{
				ComponentName: "redis",
				CheckFn:       cache.Ping,
			})
		}
	}

	if cfg.Kafka.Enabled {
		publisher := kafka.NewPublisher(cfg.Kafka, logger)
		defer func() { _ = publisher.Close() }()
		opts = append(opts, apprec.WithPublisher(publisher))
	}

	service := apprec.NewService(repo, logger, opts...)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		RecommendHandler: handlers.NewRecommendHandler(service, metrics, logger, !cfg.IsRelease()),
		HealthHandler:    handlers.NewHealthHandler(config.Version, checkers...),
		Logger:           logger,
		Metrics:          metrics,
		MaxBodySize:      cfg.Server.MaxBodySize,
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received signal, shutting down", logging.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", logging.Err(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("shutdown error", logging.Err(err))
	}
}

// buildCatalogSource constructs the configured catalog repository along with
// its readiness checkers and a cleanup function releasing its resources.
func buildCatalogSource(ctx context.Context, cfg *config.Config, logger logging.Logger, skipMigrate bool) (catalog.Repository, []handlers.HealthChecker, func(), error) {
	switch cfg.Catalog.Source {
	case "postgres":
		if !skipMigrate {
			if err := postgres.Migrate(cfg.Database, logger); err != nil {
				return nil, nil, nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := postgres.NewCatalogRepository(pool, logger)
		checkers := []handlers.HealthChecker{
			handlers.CheckerFunc{ComponentName: "postgres", CheckFn: pool.Ping},
		}
		return repo, checkers, pool.Close, nil

	case "file":
		src, err := filecatalog.NewSource(cfg.Catalog.Path, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Catalog.WatchFile {
			if err := src.Watch(); err != nil {
				logger.Warn("catalog file watch unavailable", logging.Err(err))
			}
		}
		return src, nil, func() { _ = src.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported catalog source %q", cfg.Catalog.Source)
	}
}

// loadConfig loads configuration from the file at path if it exists.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return config.Load(path)
}
