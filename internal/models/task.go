package models

import "time"

// DateLayout — формат поля termin на проводе и в хранилище.
const DateLayout = "2006-01-02"

// Task — задача из общего списка. Задачи не привязаны к пользователю:
// любой аутентифицированный пользователь видит и меняет любую задачу.
type Task struct {
	ID          int64
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    *int
	Status      *string
}

// TaskFields — изменяемые поля задачи. Update заменяет их все целиком.
type TaskFields struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    *int
	Status      *string
}

// Apply возвращает задачу с идентификатором id и полями f.
func (f TaskFields) Apply(id int64) Task {
	return Task{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		DueDate:     f.DueDate,
		Priority:    f.Priority,
		Status:      f.Status,
	}
}
