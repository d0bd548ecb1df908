package taskmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/zadania-app/task-manager/internal/cache"
	"github.com/zadania-app/task-manager/internal/config"
	"github.com/zadania-app/task-manager/internal/lib/jwt"
	"github.com/zadania-app/task-manager/internal/lib/password"
	"github.com/zadania-app/task-manager/internal/lib/sl"
	"github.com/zadania-app/task-manager/internal/migrations"
	"github.com/zadania-app/task-manager/internal/rabbitmq"
	authservice "github.com/zadania-app/task-manager/internal/services/auth"
	taskservice "github.com/zadania-app/task-manager/internal/services/task"
	"github.com/zadania-app/task-manager/internal/storage"
)

type closableCache interface {
	taskservice.TaskCache
	Close() error
}

type closablePublisher interface {
	taskservice.EventPublisher
	Close() error
}

// App владеет HTTP-сервером и всеми внешними соединениями.
type App struct {
	server          *http.Server
	logger          *slog.Logger
	db              *storage.Storage
	cache           closableCache
	events          closablePublisher
	shutdownTimeout time.Duration
}

// New подключается к хранилищу, применяет миграции и собирает маршруты.
// Redis и RabbitMQ необязательны: без адреса используются заглушки.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "taskmanager.New"

	if cfg.InsecureDevSecret {
		logger.Warn("JWT_SECRET is not set, using built-in development secret")
	}

	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Debug("password hasher ready", slog.Int("bcrypt_cost", hasher.Cost()))
	tokens, err := jwt.NewMaker(cfg.JWTSecretKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Up(cfg.StorageConnectionString, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var taskCache closableCache = cache.Noop{}
	if cfg.CacheEnabled() {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		taskCache = redisCache
	} else {
		logger.Info("redis address is empty, task cache disabled")
	}

	var events closablePublisher = rabbitmq.Noop{}
	if cfg.EventsEnabled() {
		publisher, err := rabbitmq.NewPublisher(ctx, cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			_ = taskCache.Close()
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = publisher
	} else {
		logger.Info("rabbitmq url is empty, task events disabled")
	}

	authService := authservice.NewAuthService(db, hasher, tokens, cfg.TokenTTL)
	taskService := taskservice.NewTaskService(db, taskCache, events, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, taskService, db, reg)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:          srv,
		logger:          logger,
		db:              db,
		cache:           taskCache,
		events:          events,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер
// и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		runErr = a.server.Shutdown(timeoutCtx)
	}

	a.close()
	return runErr
}

func (a *App) close() {
	if err := a.events.Close(); err != nil {
		a.logger.Error("failed to close rabbitmq publisher", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
