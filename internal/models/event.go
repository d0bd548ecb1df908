package models

import "time"

// TaskEventType — тип события жизненного цикла задачи.
type TaskEventType string

const (
	TaskCreated TaskEventType = "zadanie.created"
	TaskUpdated TaskEventType = "zadanie.updated"
	TaskDeleted TaskEventType = "zadanie.deleted"
)

// TaskEvent публикуется после успешного изменения задачи.
// Task пуст для события удаления.
type TaskEvent struct {
	Type       TaskEventType
	TaskID     int64
	Task       *Task
	OccurredAt time.Time
}
