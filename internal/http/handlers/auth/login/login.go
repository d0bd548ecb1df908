// Package login реализует HTTP-обработчик входа пользователя.
//
// При успешной проверке пароля возвращается токен доступа и данные пользователя.
// Неизвестный логин и неверный пароль дают одинаковый ответ 400.
package login

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zadania-app/task-manager/internal/http/request"
	"github.com/zadania-app/task-manager/internal/http/response"
	"github.com/zadania-app/task-manager/internal/lib/sl"
)

// MsgLoggedIn — сообщение об успешном входе.
const MsgLoggedIn = "Logowanie udane"

// Response — тело успешного ответа.
type Response struct {
	Message string        `json:"message" example:"Logowanie udane"`
	Token   string        `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    response.User `json:"user"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет логин и пароль, возвращает JWT со сроком жизни TOKEN_TTL.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body request.Credentials true "Логин и пароль"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Нет полей или неверные учётные данные"
// @Failure 500 {object} response.ErrorResponse
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, user, err := h.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		log.Warn("login failed", slog.String("login", req.Login), sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("login success", slog.Int64("user_id", user.ID))
	render.JSON(w, r, Response{
		Message: MsgLoggedIn,
		Token:   token,
		User:    response.NewUser(user),
	})
}
