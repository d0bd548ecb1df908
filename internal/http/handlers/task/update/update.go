// Package update реализует HTTP-обработчик полной замены полей задачи.
package update

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zadania-app/task-manager/internal/http/middlewarectx"
	"github.com/zadania-app/task-manager/internal/http/request"
	"github.com/zadania-app/task-manager/internal/http/response"
	"github.com/zadania-app/task-manager/internal/lib/apperr"
	"github.com/zadania-app/task-manager/internal/lib/sl"
	services "github.com/zadania-app/task-manager/internal/services/task"
)

// MsgUpdated — сообщение об успешном обновлении.
const MsgUpdated = "Zadanie zaktualizowane pomyślnie"

type Response struct {
	Message string        `json:"message" example:"Zadanie zaktualizowane pomyślnie"`
	Zadanie response.Task `json:"zadanie"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *request.Validator
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Обновление задачи
// @Description Заменяет все поля задачи. Отсутствующие поля становятся null.
// @Tags Zadania
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Param request body request.Task true "Поля задачи"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /zadania/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	if claims, ok := middlewarectx.ClaimsFromContext(r.Context()); ok {
		log = log.With(slog.String("login", claims.Login))
	}

	var req request.Task
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.FromError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.FromError(w, r, err)
		return
	}
	fields, err := req.Fields()
	if err != nil {
		log.Error("failed to convert request", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	id, ok := request.TaskID(r)
	if !ok {
		// Такой задачи нет, но пустой tytul по-прежнему важнее 404.
		// Для корректного id заголовок проверяет сервис.
		if fields.Title == "" {
			log.Info("empty title for invalid task id")
			response.FromError(w, r, apperr.Validation(services.MsgTitleRequired))
			return
		}
		response.FromError(w, r, apperr.NotFound(services.MsgUpdateTaskNotFound))
		return
	}

	task, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		log.Error("failed to update task", slog.Int64("id", id), sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("task updated", slog.Int64("id", id))
	render.JSON(w, r, Response{
		Message: MsgUpdated,
		Zadanie: response.NewTask(task),
	})
}
