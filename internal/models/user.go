// Package models содержит доменные структуры: пользователя, задачу
// и событие жизненного цикла задачи.
package models

import "time"

// Role — роль пользователя. В системе используется один флаг роли.
type Role string

// RoleUser — роль, которую получает каждый новый пользователь.
const RoleUser Role = "USER"

// User представляет зарегистрированного пользователя.
// PasswordHash не покидает хранилище учётных данных и сервис аутентификации.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
