package create

import (
	"context"

	"github.com/zadania-app/task-manager/internal/models"
)

// Service описывает создание задачи.
type Service interface {
	Create(ctx context.Context, fields models.TaskFields) (*models.Task, error)
}
