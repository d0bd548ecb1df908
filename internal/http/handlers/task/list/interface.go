package list

import (
	"context"

	"github.com/zadania-app/task-manager/internal/models"
)

// Service описывает получение списка задач.
type Service interface {
	List(ctx context.Context) ([]*models.Task, error)
}
