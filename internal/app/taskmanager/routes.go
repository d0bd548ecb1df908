// Package taskmanager собирает HTTP-приложение менеджера задач.
package taskmanager

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/zadania-app/task-manager/docs"
	"github.com/zadania-app/task-manager/internal/http/handlers/auth/login"
	"github.com/zadania-app/task-manager/internal/http/handlers/auth/register"
	"github.com/zadania-app/task-manager/internal/http/handlers/health"
	"github.com/zadania-app/task-manager/internal/http/handlers/home"
	"github.com/zadania-app/task-manager/internal/http/handlers/task/create"
	"github.com/zadania-app/task-manager/internal/http/handlers/task/list"
	"github.com/zadania-app/task-manager/internal/http/handlers/task/read"
	"github.com/zadania-app/task-manager/internal/http/handlers/task/remove"
	"github.com/zadania-app/task-manager/internal/http/handlers/task/update"
	"github.com/zadania-app/task-manager/internal/http/middlewarectx"
	"github.com/zadania-app/task-manager/internal/lib/jwt"
)

// AuthService объединяет операции аутентификации, нужные маршрутам.
type AuthService interface {
	register.Service
	login.Service
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// TaskService объединяет операции над задачами, нужные маршрутам.
type TaskService interface {
	list.Service
	read.Service
	create.Service
	update.Service
	remove.Service
}

// Registry — реестр метрик, которые отдаёт /metrics.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService AuthService, taskService TaskService, storage health.Pinger, reg Registry) {
	metrics := middlewarectx.NewMetrics(reg)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}),
		metrics.Middleware,
	)

	// Открытые конечные точки
	r.Get("/home", home.New().ServeHTTP)
	r.Get("/health", health.New(logger, storage).ServeHTTP)
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Get("/zadania", list.New(logger, taskService).ServeHTTP)
		r.Post("/zadania", create.New(logger, taskService).ServeHTTP)
		r.Get("/zadania/{id}", read.New(logger, taskService).ServeHTTP)
		r.Put("/zadania/{id}", update.New(logger, taskService).ServeHTTP)
		r.Delete("/zadania/{id}", remove.New(logger, taskService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
