package rabbitmq

import (
	"time"

	"github.com/zadania-app/task-manager/internal/models"
)

// TaskPayload — задача в теле события.
type TaskPayload struct {
	ID          int64   `json:"id"`
	Title       string  `json:"tytul"`
	Description *string `json:"opis"`
	DueDate     *string `json:"termin"`
	Priority    *int    `json:"priorytet"`
	Status      *string `json:"status"`
}

// TaskEventMessage — тело сообщения о событии задачи.
type TaskEventMessage struct {
	Type       models.TaskEventType `json:"type"`
	TaskID     int64                `json:"zadanieId"`
	Task       *TaskPayload         `json:"zadanie,omitempty"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// NewTaskEventMessage переводит доменное событие в сообщение.
func NewTaskEventMessage(event models.TaskEvent) TaskEventMessage {
	msg := TaskEventMessage{
		Type:       event.Type,
		TaskID:     event.TaskID,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if t := event.Task; t != nil {
		payload := &TaskPayload{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			Status:      t.Status,
		}
		if t.DueDate != nil {
			due := t.DueDate.Format(models.DateLayout)
			payload.DueDate = &due
		}
		msg.Task = payload
	}
	return msg
}
