// Package main provides the entry point for kvmesh-server.
//
// kvmesh-server is an in-memory key-value cache speaking a
// Redis-compatible wire protocol, with per-key expiry.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/kvmesh-go/internal/infra/buildinfo"
	"github.com/yndnr/kvmesh-go/internal/infra/confloader"
	"github.com/yndnr/kvmesh-go/internal/infra/shutdown"
	"github.com/yndnr/kvmesh-go/internal/server/config"
	"github.com/yndnr/kvmesh-go/internal/server/respserver"
	"github.com/yndnr/kvmesh-go/internal/storage/keyspace"
	"github.com/yndnr/kvmesh-go/internal/telemetry/logger"
	"github.com/yndnr/kvmesh-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("kvmesh-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting kvmesh-server",
		"version", buildinfo.Get().Version,
		"config", *configFile)

	store := keyspace.New(
		keyspace.WithShards(cfg.Storage.Shards),
		keyspace.WithEvictOnRead(cfg.Storage.EvictOnRead),
	)

	var metrics *metric.Registry
	if cfg.Server.Metrics.Enabled {
		metrics = metric.NewRegistry(func() float64 {
			return float64(store.Len())
		})
	}

	srv := respserver.New(&respserver.Config{
		Addr:         cfg.Server.RESP.Addr,
		ReadTimeout:  cfg.Server.RESP.ReadTimeout,
		WriteTimeout: cfg.Server.RESP.WriteTimeout,
		IdleTimeout:  cfg.Server.RESP.IdleTimeout,
		RateLimit:    cfg.Server.RESP.RateLimit,
	}, store, log, metrics)

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	shutdownHandler := shutdown.NewHandler(30 * time.Second)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down server")
		return srv.Shutdown(ctx)
	})

	// Metrics endpoint, served on its own listener.
	if metrics != nil {
		metricsServer := &http.Server{
			Addr:              cfg.Server.Metrics.Addr,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("metrics listening", "addr", cfg.Server.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server error", "error", err)
			}
		}()
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			return metricsServer.Shutdown(ctx)
		})
	}

	// Watch the config file so log level changes apply without a
	// restart.
	if *configFile != "" {
		watcher, err := startConfigWatcher(*configFile, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(ctx context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and sets it as default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// startConfigWatcher reloads the log level whenever the config file
// changes on disk.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(log)
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(path)
		if err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Info("log level reloaded", "level", cfg.Log.Level)
	})

	if err := watcher.Watch(configFile); err != nil {
		return nil, err
	}
	watcher.StartAsync()
	return watcher, nil
}
