package read

import (
	"context"

	"github.com/zadania-app/task-manager/internal/models"
)

// Service описывает чтение задачи.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Task, error)
}
