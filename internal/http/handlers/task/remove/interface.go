package remove

import "context"

// Service описывает удаление задачи.
type Service interface {
	Delete(ctx context.Context, id int64) error
}
