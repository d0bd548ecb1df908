// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zadania-app/task-manager/internal/http/request"
	"github.com/zadania-app/task-manager/internal/http/response"
	"github.com/zadania-app/task-manager/internal/lib/sl"
)

// MsgRegistered — сообщение об успешной регистрации.
const MsgRegistered = "Użytkownik zarejestrowany pomyślnie"

// Response — тело успешного ответа.
type Response struct {
	Message string        `json:"message" example:"Użytkownik zarejestrowany pomyślnie"`
	User    response.User `json:"user"`
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
// @Summary Регистрация пользователя
// @Description Создаёт пользователя с ролью USER. Пароль не короче 6 символов и не длиннее 72 байт.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body request.Credentials true "Логин и пароль"
// @Success 201 {object} Response
// @Failure 400 {object} response.ErrorResponse "Нет полей, неверная длина пароля или логин занят"
// @Failure 500 {object} response.ErrorResponse
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req request.Credentials
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	user, err := h.service.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		log.Error("registration failed", slog.String("login", req.Login), sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message: MsgRegistered,
		User:    response.NewUser(user),
	})
}
