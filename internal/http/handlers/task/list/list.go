// Package list реализует HTTP-обработчик получения всех задач.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zadania-app/task-manager/internal/http/response"
	"github.com/zadania-app/task-manager/internal/lib/sl"
)

type Response struct {
	Zadania []response.Task `json:"zadania"`
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список задач
// @Description Все задачи, новые первыми.
// @Tags Zadania
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /zadania [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tasks, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	render.JSON(w, r, Response{Zadania: response.NewTasks(tasks)})
}
