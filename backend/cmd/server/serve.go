package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobrelay/backend/internal/api"
	"jobrelay/backend/internal/config"
	"jobrelay/backend/internal/services"
	"jobrelay/backend/internal/storage"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP relay",
	Long: `
Start the HTTP relay on HOST:PORT (default port 3000).

Routes:
  GET /            service info and an example query
  GET /health      liveness probe
  GET /api/search  query forwarded to SEARCH_PROVIDER

Search audits are written to Redis when REDIS_ADDRESS is set and to
Postgres when DATABASE_URL is set.
`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	app, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("❌ Failed to initialize relay", zap.Error(err))
		return err
	}
	defer app.Close()

	return app.Run()
}

// app собранный сервер со всеми зависимостями
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	server    *http.Server
	closers   []func() error
	retention *services.AuditRetention
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	a := &app{cfg: cfg, logger: logger}

	sinks, err := a.initAuditSinks(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	searcher, err := services.NewJobSearcher(cfg.Search, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create search provider: %w", err)
	}

	var sink services.AuditSink = services.NopSink{}
	if len(sinks) > 0 {
		sink = sinks
	}

	router := api.NewRouter(api.RouterConfig{
		Searcher:       services.NewAuditedSearcher(cfg.Search.Provider, searcher, sink, logger),
		Logger:         logger,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins(),
	})

	// WriteTimeout не задается: время ответа определяет провайдер
	a.server = &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}

	return a, nil
}

// initAuditSinks подключает Redis и Postgres, если они настроены
func (a *app) initAuditSinks(ctx context.Context) (services.MultiSink, error) {
	var sinks services.MultiSink

	if a.cfg.Audit.RedisAddress != "" {
		redisClient, err := storage.NewRedisClient(
			a.cfg.Audit.RedisAddress,
			a.cfg.Audit.RedisPassword,
			a.cfg.Audit.RedisDB,
			a.cfg.Audit.RedisTTL,
			a.logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.closers = append(a.closers, redisClient.Close)
		sinks = append(sinks, redisClient)
	}

	if a.cfg.Audit.DatabaseURL != "" {
		db, err := storage.NewDatabase(a.cfg.Audit.DatabaseURL, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err := db.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		a.retention = services.NewAuditRetention(db, a.cfg.Audit.Retention, a.logger)
		if err := a.retention.Start(a.cfg.Audit.PruneSchedule); err != nil {
			a.retention = nil
			return nil, err
		}
		sinks = append(sinks, db)
	}

	return sinks, nil
}

// Run запускает сервер и ждет сигнала остановки
func (a *app) Run() error {
	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("🚀 Server starting",
			zap.String("address", a.server.Addr),
			zap.String("env", a.cfg.Environment),
			zap.String("provider", a.cfg.Search.Provider))

		serverErrors <- a.server.ListenAndServe()
	}()

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		a.logger.Error("❌ Server failed to start", zap.Error(err))
		return fmt.Errorf("server failed: %w", err)

	case sig := <-shutdown:
		a.logger.Info("🛑 Shutdown signal received",
			zap.String("signal", sig.String()))

		// Даем время на завершение текущих запросов
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Error("⚠️ Graceful shutdown failed", zap.Error(err))
			if err := a.server.Close(); err != nil {
				return fmt.Errorf("force shutdown failed: %w", err)
			}
		}

		a.logger.Info("✅ Server stopped gracefully")
		return nil
	}
}

// Close останавливает фоновые задачи и закрывает соединения
func (a *app) Close() {
	if a.retention != nil {
		a.logger.Info("👋 Stopping audit retention...")
		a.retention.Stop()
		a.retention = nil
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
