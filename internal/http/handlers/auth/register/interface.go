package register

import (
	"context"

	"github.com/zadania-app/task-manager/internal/models"
)

// Service описывает регистрацию пользователя.
type Service interface {
	Register(ctx context.Context, login, password string) (*models.User, error)
}
