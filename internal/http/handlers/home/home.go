// Package home отдаёт публичную страницу приветствия API.
package home

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response — тело ответа страницы приветствия.
type Response struct {
	Message     string   `json:"message" example:"Witaj w Menadżerze Zadań!"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

var payload = Response{
	Message:     "Witaj w Menadżerze Zadań!",
	Description: "To jest publiczna strona główna aplikacji do zarządzania zadaniami.",
	Features: []string{
		"Dodawanie i usuwanie zadań",
		"Ustawianie priorytetów i terminów",
		"Śledzenie statusu zadań",
	},
}

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Страница приветствия
// @Tags Public
// @Produce  json
// @Success 200 {object} Response
// @Router /home [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, payload)
}
