package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zadania-app/task-manager/internal/models"
)

const taskColumns = `id, tytul, opis, termin, priorytet, status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t           models.Task
		description sql.NullString
		dueDate     sql.NullTime
		priority    sql.NullInt64
		status      sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Title, &description, &dueDate, &priority, &status); err != nil {
		return nil, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	if dueDate.Valid {
		d := time.Date(dueDate.Time.Year(), dueDate.Time.Month(), dueDate.Time.Day(), 0, 0, 0, 0, time.UTC)
		t.DueDate = &d
	}
	if priority.Valid {
		p := int(priority.Int64)
		t.Priority = &p
	}
	if status.Valid {
		t.Status = &status.String
	}
	return &t, nil
}

// taskArgs переводит поля задачи в параметры запроса; nil становится NULL.
func taskArgs(f models.TaskFields) []any {
	var dueDate any
	if f.DueDate != nil {
		dueDate = f.DueDate.Format(models.DateLayout)
	}
	var priority any
	if f.Priority != nil {
		priority = *f.Priority
	}
	var description any
	if f.Description != nil {
		description = *f.Description
	}
	var status any
	if f.Status != nil {
		status = *f.Status
	}
	return []any{f.Title, description, dueDate, priority, status}
}

// ListTasks возвращает все задачи, новые первыми (по убыванию id).
func (s *Storage) ListTasks(ctx context.Context) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + ` FROM zadania ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTask возвращает задачу по id или ErrTaskNotFound.
func (s *Storage) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	const op = "storage.GetTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + ` FROM zadania WHERE id = $1`
	t, err := scanTask(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// CreateTask вставляет задачу и возвращает её вместе с присвоенным id.
func (s *Storage) CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO zadania (tytul, opis, termin, priorytet, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + taskColumns
	t, err := scanTask(s.DB.QueryRowContext(ctx, query, taskArgs(fields)...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// UpdateTask заменяет все изменяемые поля задачи одним запросом.
// Если строки с таким id нет, ничего не меняется и возвращается ErrTaskNotFound.
func (s *Storage) UpdateTask(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error) {
	const op = "storage.UpdateTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE zadania
			  SET tytul = $1, opis = $2, termin = $3, priorytet = $4, status = $5
			  WHERE id = $6
			  RETURNING ` + taskColumns
	args := append(taskArgs(fields), id)
	t, err := scanTask(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// DeleteTask удаляет задачу. Возвращает false, если задачи не было.
func (s *Storage) DeleteTask(ctx context.Context, id int64) (bool, error) {
	const op = "storage.DeleteTask"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM zadania WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}
