// Package remove реализует HTTP-обработчик удаления задачи.
package remove

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

// MsgDeleted — сообщение об успешном удалении.
const MsgDeleted = "Zadanie usunięte pomyślnie"

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
// @Summary Удаление задачи
// @Tags Zadania
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /zadania/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	if claims, ok := middlewarectx.ClaimsFromContext(r.Context()); ok {
		log = log.With(slog.String("login", claims.Login))
	}

	id, ok := request.TaskID(r)
	if !ok {
		response.FromError(w, r, apperr.NotFound(services.MsgDeleteTaskNotFound))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete task", slog.Int64("id", id), sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("task deleted", slog.Int64("id", id))
	render.JSON(w, r, response.MessageResponse{Message: MsgDeleted})
}
