// Package cache реализует кеш задач поверх Redis.
//
// Кеш используется только для чтения одной задачи по id. Хранилище
// остаётся источником истины, поэтому ошибки кеша вызывающий код
// логирует и игнорирует.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zadania-app/task-manager/internal/config"
	"github.com/zadania-app/task-manager/internal/models"
)

const taskKeyPrefix = "zadanie:"

// Cache — JSON-кеш поверх клиента Redis.
type Cache struct {
	Db  *redis.Client
	ttl time.Duration
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:     cfg.AddressRedis,
		Password: cfg.PasswordRedis,
		DB:       cfg.DBRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db, ttl: cfg.TaskCacheTTL}, nil
}

// Get читает значение по ключу в result. found == false, если ключа нет.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(val, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Close закрывает клиент Redis.
func (c *Cache) Close() error {
	return c.Db.Close()
}

// cachedTask — представление задачи в кеше.
type cachedTask struct {
	ID          int64   `json:"id"`
	Title       string  `json:"tytul"`
	Description *string `json:"opis,omitempty"`
	DueDate     *string `json:"termin,omitempty"`
	Priority    *int    `json:"priorytet,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func taskKey(id int64) string {
	return taskKeyPrefix + strconv.FormatInt(id, 10)
}

func taskVersionKey(id int64) string {
	return taskKey(id) + ":ver"
}

// taskVersionTTL должен быть больше времени любого запроса, иначе
// сброс ключа версии вернёт её к прежнему значению.
const taskVersionTTL = 24 * time.Hour

var errStaleVersion = errors.New("task version changed")

// GetTask возвращает задачу из кеша.
func (c *Cache) GetTask(ctx context.Context, id int64) (*models.Task, bool, error) {
	var ct cachedTask
	found, err := c.Get(ctx, taskKey(id), &ct)
	if err != nil || !found {
		return nil, false, err
	}

	task := &models.Task{
		ID:          ct.ID,
		Title:       ct.Title,
		Description: ct.Description,
		Priority:    ct.Priority,
		Status:      ct.Status,
	}
	if ct.DueDate != nil {
		due, err := time.Parse(models.DateLayout, *ct.DueDate)
		if err != nil {
			return nil, false, fmt.Errorf("cache.GetTask: %w", err)
		}
		task.DueDate = &due
	}
	return task, true, nil
}

// TaskVersion возвращает версию задачи id. Её нужно прочитать до чтения
// задачи из хранилища и передать в FillTask.
func (c *Cache) TaskVersion(ctx context.Context, id int64) (int64, error) {
	const op = "cache.TaskVersion"
	version, err := c.Db.Get(ctx, taskVersionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return version, nil
}

// FillTask кладёт задачу в кеш, только если её версия всё ещё равна version.
// Если задачу успели изменить или удалить, запись молча пропускается.
func (c *Cache) FillTask(ctx context.Context, task *models.Task, version int64) error {
	const op = "cache.FillTask"
	ct := cachedTask{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
	}
	if task.DueDate != nil {
		due := task.DueDate.Format(models.DateLayout)
		ct.DueDate = &due
	}
	data, err := json.Marshal(ct)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	versionKey := taskVersionKey(task.ID)
	err = c.Db.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, taskKey(task.ID), data, c.ttl)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, errStaleVersion) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// InvalidateTask удаляет задачу из кеша и увеличивает её версию, чтобы
// начатые до этого FillTask не вернули устаревшую запись.
func (c *Cache) InvalidateTask(ctx context.Context, id int64) error {
	const op = "cache.InvalidateTask"
	versionKey := taskVersionKey(id)
	_, err := c.Db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, taskVersionTTL)
		pipe.Del(ctx, taskKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Noop — кеш, который ничего не хранит. Используется, если Redis не настроен.
type Noop struct{}

func (Noop) GetTask(context.Context, int64) (*models.Task, bool, error) { return nil, false, nil }
func (Noop) TaskVersion(context.Context, int64) (int64, error)          { return 0, nil }
func (Noop) FillTask(context.Context, *models.Task, int64) error        { return nil }
func (Noop) InvalidateTask(context.Context, int64) error                { return nil }
func (Noop) Close() error                                               { return nil }
