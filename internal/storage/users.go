package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zadania-app/task-manager/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его запись.
// Уникальность логина обеспечивает ограничение UNIQUE: нарушение
// возвращается как ErrUserExists, отдельной проверки перед вставкой нет.
func (s *Storage) CreateUser(ctx context.Context, login, passwordHash string, role models.Role) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (login, password_hash, rola)
			  VALUES ($1, $2, $3)
			  RETURNING id, login, password_hash, rola, created_at`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, login, passwordHash, string(role)).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByLogin возвращает пользователя по логину. Сравнение логина
// чувствительно к регистру.
func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	const op = "storage.GetUserByLogin"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, login, password_hash, rola, created_at
			  FROM users
			  WHERE login = $1`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, login).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
