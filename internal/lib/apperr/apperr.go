// Package apperr описывает таксономию ошибок приложения и её отображение
// на HTTP-статусы. Это единственное место, где доменная ошибка превращается
// в код ответа: обработчики не выбирают статус самостоятельно.
package apperr

import (
	"errors"
	"net/http"
)

// Виды ошибок. Конкретная ошибка оборачивает один из них.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// InternalMessage отдаётся клиенту вместо текста внутренней ошибки.
const InternalMessage = "Wewnętrzny błąd serwera"

// Error — ошибка с видом и сообщением, которое безопасно показать клиенту.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New создаёт ошибку вида kind с сообщением для клиента.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Validation — сокращение для New(ErrValidation, message).
func Validation(message string) error {
	return New(ErrValidation, message)
}

// NotFound — сокращение для New(ErrNotFound, message).
func NotFound(message string) error {
	return New(ErrNotFound, message)
}

// StatusCode возвращает HTTP-статус для ошибки. Всё, что не относится
// к известным видам, считается внутренней ошибкой (500).
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage возвращает текст, который можно отдать клиенту.
// Для внутренних ошибок детали не раскрываются.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && StatusCode(err) != http.StatusInternalServerError {
		return appErr.Message
	}
	return InternalMessage
}
