package update

import (
	"context"

	"github.com/zadania-app/task-manager/internal/models"
)

// Service описывает обновление задачи.
type Service interface {
	Update(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error)
}
