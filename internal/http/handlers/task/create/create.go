// Package create реализует HTTP-обработчик создания задачи.
//
// Handler декодирует тело запроса, проверяет формат полей и передаёт
// их сервису. Пустой tytul отклоняет сервис.
package create

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zadania-app/task-manager/internal/http/middlewarectx"
	"github.com/zadania-app/task-manager/internal/http/request"
	"github.com/zadania-app/task-manager/internal/http/response"
	"github.com/zadania-app/task-manager/internal/lib/sl"
)

// MsgCreated — сообщение об успешном создании.
const MsgCreated = "Zadanie utworzone pomyślnie"

// Response — тело успешного ответа.
type Response struct {
	Message   string        `json:"message" example:"Zadanie utworzone pomyślnie"`
	ZadanieID int64         `json:"zadanieId" example:"1"`
	Zadanie   response.Task `json:"zadanie"`
}

// Handler обрабатывает запросы на создание задачи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *request.Validator
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: request.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Создание задачи
// @Tags Zadania
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body request.Task true "Поля задачи"
// @Success 201 {object} Response
// @Failure 400 {object} response.ErrorResponse "Нет tytul или неверный формат поля"
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /zadania [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.create"

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

	task, err := h.service.Create(r.Context(), fields)
	if err != nil {
		log.Error("failed to create task", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("task created", slog.Int64("id", task.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message:   MsgCreated,
		ZadanieID: task.ID,
		Zadanie:   response.NewTask(task),
	})
}
