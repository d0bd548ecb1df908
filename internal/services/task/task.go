// Package services содержит бизнес-правила работы с задачами:
// проверку полей, кеширование задач и публикацию событий.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zadania-app/task-manager/internal/lib/apperr"
	"github.com/zadania-app/task-manager/internal/lib/sl"
	"github.com/zadania-app/task-manager/internal/models"
	"github.com/zadania-app/task-manager/internal/storage"
)

// Сообщения для клиента.
const (
	MsgTitleRequired      = "Tytuł jest wymagany."
	MsgTaskNotFound       = "Zadanie nie znalezione"
	MsgUpdateTaskNotFound = "Zadanie do aktualizacji nie znalezione"
	MsgDeleteTaskNotFound = "Zadanie do usunięcia nie znalezione"
)

// TaskRepository определяет методы для работы с задачами в хранилище.
type TaskRepository interface {
	// ListTasks возвращает все задачи по убыванию id.
	ListTasks(ctx context.Context) ([]*models.Task, error)
	// GetTask возвращает задачу или storage.ErrTaskNotFound.
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	// CreateTask сохраняет задачу и присваивает ей id.
	CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error)
	// UpdateTask заменяет поля задачи или возвращает storage.ErrTaskNotFound.
	UpdateTask(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error)
	// DeleteTask удаляет задачу и сообщает, была ли она.
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

// TaskCache кеширует отдельные задачи. Запись в кеш идёт только при
// чтении и только если версия задачи не менялась с момента TaskVersion;
// любое изменение задачи сбрасывает запись через InvalidateTask.
type TaskCache interface {
	GetTask(ctx context.Context, id int64) (*models.Task, bool, error)
	TaskVersion(ctx context.Context, id int64) (int64, error)
	FillTask(ctx context.Context, task *models.Task, version int64) error
	InvalidateTask(ctx context.Context, id int64) error
}

// EventPublisher публикует события жизненного цикла задач.
type EventPublisher interface {
	Publish(ctx context.Context, event models.TaskEvent) error
}

// TaskService реализует бизнес-логику работы с задачами.
// Ошибки кеша и брокера логируются и не прерывают операцию.
type TaskService struct {
	repo   TaskRepository
	cache  TaskCache
	events EventPublisher
	log    *slog.Logger
	now    func() time.Time
}

// NewTaskService создает новый экземпляр TaskService.
func NewTaskService(repo TaskRepository, cache TaskCache, events EventPublisher, log *slog.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// List возвращает все задачи, новые первыми. Кеш не используется.
func (s *TaskService) List(ctx context.Context) ([]*models.Task, error) {
	const op = "services.task.List"
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

// Get возвращает задачу по id, сначала заглядывая в кеш.
func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	const op = "services.task.Get"
	log := s.log.With(slog.String("op", op), slog.Int64("id", id))

	cached, found, err := s.cache.GetTask(ctx, id)
	if err != nil {
		log.Warn("failed to read task from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	// Версию читаем до хранилища: если задачу изменят или удалят
	// после нашего чтения, FillTask не положит в кеш старую строку.
	version, versionErr := s.cache.TaskVersion(ctx, id)
	if versionErr != nil {
		log.Warn("failed to read task cache version", sl.Err(versionErr))
	}

	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return nil, apperr.NotFound(MsgTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if versionErr == nil {
		if err := s.cache.FillTask(ctx, task, version); err != nil {
			log.Warn("failed to cache task", sl.Err(err))
		}
	}
	return task, nil
}

// Create проверяет поля, сохраняет задачу и возвращает её.
func (s *TaskService) Create(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	const op = "services.task.Create"
	if fields.Title == "" {
		return nil, apperr.Validation(MsgTitleRequired)
	}

	task, err := s.repo.CreateTask(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.With(slog.String("op", op), slog.Int64("id", task.ID))
	s.publish(ctx, log, models.TaskEvent{Type: models.TaskCreated, TaskID: task.ID, Task: task, OccurredAt: s.now()})
	return task, nil
}

// Update полностью заменяет поля существующей задачи и сбрасывает её в кеше.
func (s *TaskService) Update(ctx context.Context, id int64, fields models.TaskFields) (*models.Task, error) {
	const op = "services.task.Update"
	if fields.Title == "" {
		return nil, apperr.Validation(MsgTitleRequired)
	}

	task, err := s.repo.UpdateTask(ctx, id, fields)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return nil, apperr.NotFound(MsgUpdateTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.With(slog.String("op", op), slog.Int64("id", id))
	s.invalidate(ctx, log, id)
	s.publish(ctx, log, models.TaskEvent{Type: models.TaskUpdated, TaskID: id, Task: task, OccurredAt: s.now()})
	return task, nil
}

// Delete удаляет задачу. Отсутствующая задача — ошибка NotFound.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	const op = "services.task.Delete"
	deleted, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !deleted {
		return apperr.NotFound(MsgDeleteTaskNotFound)
	}

	log := s.log.With(slog.String("op", op), slog.Int64("id", id))
	s.invalidate(ctx, log, id)
	s.publish(ctx, log, models.TaskEvent{Type: models.TaskDeleted, TaskID: id, OccurredAt: s.now()})
	return nil
}

func (s *TaskService) invalidate(ctx context.Context, log *slog.Logger, id int64) {
	if err := s.cache.InvalidateTask(ctx, id); err != nil {
		log.Warn("failed to invalidate cached task", sl.Err(err))
	}
}

func (s *TaskService) publish(ctx context.Context, log *slog.Logger, event models.TaskEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		log.Warn("failed to publish task event", slog.String("type", string(event.Type)), sl.Err(err))
	}
}
