// Package read реализует HTTP-обработчик получения задачи по ID.
package read

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zadania-app/task-manager/internal/http/request"
	"github.com/zadania-app/task-manager/internal/http/response"
	"github.com/zadania-app/task-manager/internal/lib/apperr"
	"github.com/zadania-app/task-manager/internal/lib/sl"
	services "github.com/zadania-app/task-manager/internal/services/task"
)

// Response — тело успешного ответа.
type Response struct {
	Zadanie response.Task `json:"zadanie"`
}

// Handler обрабатывает запросы на получение задачи по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Задача по ID
// @Tags Zadania
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /zadania/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := request.TaskID(r)
	if !ok {
		log.Info("invalid task id in url", slog.String("id", chi.URLParam(r, "id")))
		response.FromError(w, r, apperr.NotFound(services.MsgTaskNotFound))
		return
	}

	task, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to read task", slog.Int64("id", id), sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	render.JSON(w, r, Response{Zadanie: response.NewTask(task)})
}
