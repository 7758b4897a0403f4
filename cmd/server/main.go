// Package main is the entry point for the portfolio API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-api/internal/config"
	"portfolio-api/internal/db"
	"portfolio-api/internal/esx"
	"portfolio-api/internal/httpx"
	"portfolio-api/internal/httpx/kit"
	"portfolio-api/internal/logx"
	"portfolio-api/internal/mqx"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/redisx"
	"portfolio-api/internal/server"
)

func main() {
	if err := run(); err != nil {
		logx.GetScope("main").Error("server stopped", zap.Error(err))
		logx.Sync()
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present
	_ = godotenv.Load()

	// env first; optional Apollo override
	cfg, store, apClose, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apClose != nil {
		defer apClose()
	}

	logx.Init(cfg.Log.Level, cfg.Log.Format)
	defer logx.Sync()
	mainLogger := logx.GetScope("main")
	mainLogger.Info("config loaded",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.Server.Addr),
		zap.String("db.driver", cfg.DB.Driver),
		zap.String("log.level", cfg.Log.Level),
	)

	stores, closeDB, err := db.Open(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer closeDB()

	// Optional deps: Redis, MQ, ES. A failure disables the feature.
	rdb, closeRedis, err := redisx.Open(cfg)
	if err != nil {
		mainLogger.Warn("redis unavailable, rate limits are per process", zap.Error(err))
	}
	defer closeRedis()

	publisher, closeMQ, err := mqx.Open(cfg)
	if err != nil {
		mainLogger.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
	}
	defer closeMQ()

	index, closeES, err := esx.Open(cfg)
	if err != nil {
		mainLogger.Warn("elasticsearch unavailable, search disabled", zap.Error(err))
	}
	defer closeES()

	app := fiber.New(fiber.Config{
		ErrorHandler: kit.ErrorHandler(cfg.IsProduction()),
		ProxyHeader:  cfg.Server.ProxyHeader,
		BodyLimit:    1 << 20,
	})
	httpx.RegisterCommonMiddlewares(app, cfg)
	httpx.Register(app, httpx.Providers{
		Stores:   stores,
		Config:   store,
		Notifier: notify.Open(cfg),
		Events:   mqx.NewEvents(publisher),
		Search:   index,
		Redis:    rdb,
	})

	store.AddValidator(func(next *config.Config, changed map[string]bool) error {
		if changed["db.max_open"] || changed["db.max_idle"] {
			if next.DB.MaxIdleConns > next.DB.MaxOpenConns {
				return fmt.Errorf("DB_MAX_IDLE cannot exceed DB_MAX_OPEN")
			}
		}
		return nil
	})
	store.Watch(func(next *config.Config, changed map[string]bool) {
		if changed["db.max_open"] || changed["db.max_idle"] {
			stores.UpdatePool(next.DB.MaxOpenConns, next.DB.MaxIdleConns)
			mainLogger.Info("db pool updated",
				zap.Int("max_open", next.DB.MaxOpenConns),
				zap.Int("max_idle", next.DB.MaxIdleConns),
			)
		}
		if changed["log.level"] || changed["log.format"] {
			logx.Init(next.Log.Level, next.Log.Format)
			mainLogger.Info("logger reconfigured", zap.String("level", next.Log.Level), zap.String("format", next.Log.Format))
		}
		for _, key := range []string{"server.addr", "db.url", "mongo.uri", "redis.addr", "mq.url", "es.addrs", "mail.host"} {
			if changed[key] {
				mainLogger.Warn("restart required for change to take effect", zap.String("key", key))
			}
		}
	})

	ln, err := server.GetListener(cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- app.Listener(ln) }()
	mainLogger.Sugar().Infof("server started on %s", ln.Addr())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-sig:
	}
	mainLogger.Info("shutting down...")
	return app.ShutdownWithTimeout(10 * time.Second)
}
