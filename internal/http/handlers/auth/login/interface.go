package login

import (
	"context"

	"github.com/zadania-app/task-manager/internal/models"
)

// Service описывает вход пользователя.
type Service interface {
	Login(ctx context.Context, login, password string) (string, *models.User, error)
}
