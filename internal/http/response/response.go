// Package response содержит типы и функции для формирования JSON-ответов
// HTTP-обработчиков: тело ошибки, представления задачи и пользователя.
//
// FromError — единственное место, где ошибка превращается в HTTP-ответ.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/zadania-app/task-manager/internal/lib/apperr"
)

// ErrorResponse — тело любого ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"Nieprawidłowy token"`
}

// MessageResponse — тело ответа, содержащее только сообщение.
type MessageResponse struct {
	Message string `json:"message" example:"Zadanie usunięte pomyślnie"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// FromError выставляет статус по виду ошибки и пишет тело {"error": ...}.
// Текст внутренних ошибок клиенту не передаётся.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, apperr.StatusCode(err))
	render.JSON(w, r, Error(apperr.PublicMessage(err)))
}

// ValidationError переводит ошибки валидатора в ошибку вида ErrValidation.
// Каждое нарушение превращается в читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) error {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("Pole %s jest wymagane", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("Pole %s jest za krótkie", err.Field()))
		case "datetime":
			errsMsgs = append(errsMsgs, fmt.Sprintf("Pole %s musi mieć format RRRR-MM-DD", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("Pole %s ma nieprawidłową wartość", err.Field()))
		}
	}
	return apperr.Validation(strings.Join(errsMsgs, ", "))
}
