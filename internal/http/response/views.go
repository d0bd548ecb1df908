package response

import (
	"github.com/zadania-app/task-manager/internal/models"
)

// Task — задача на проводе. Необязательные поля передаются как null.
type Task struct {
	ID        int64   `json:"id" example:"1"`
	Tytul     string  `json:"tytul" example:"Zrobić zakupy"`
	Opis      *string `json:"opis" example:"Mleko, chleb"`
	Termin    *string `json:"termin" example:"2025-03-14"`
	Priorytet *int    `json:"priorytet" example:"2"`
	Status    *string `json:"status" example:"todo"`
}

// NewTask строит представление задачи.
func NewTask(t *models.Task) Task {
	view := Task{
		ID:        t.ID,
		Tytul:     t.Title,
		Opis:      t.Description,
		Priorytet: t.Priority,
		Status:    t.Status,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(models.DateLayout)
		view.Termin = &due
	}
	return view
}

// NewTasks строит представления списка задач с сохранением порядка.
// Пустой список кодируется как [], а не null.
func NewTasks(tasks []*models.Task) []Task {
	views := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTask(t))
	}
	return views
}

// User — публичные данные пользователя. Хеш пароля сюда не попадает.
type User struct {
	ID    int64  `json:"id" example:"1"`
	Login string `json:"login" example:"jan"`
	Rola  string `json:"rola" example:"USER"`
}

// NewUser строит представление пользователя.
func NewUser(u *models.User) User {
	return User{
		ID:    u.ID,
		Login: u.Login,
		Rola:  string(u.Role),
	}
}
