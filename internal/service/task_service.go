package service

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"tasktracker/internal/cache"
	"tasktracker/internal/errors"
	"tasktracker/internal/logger"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
)

const (
	taskListCacheKey = "tasks:all"
	taskListCacheTTL = 5 * time.Minute
)

// TaskService exposes task domain operations.
type TaskService interface {
	CreateTask(ctx context.Context, title, description string, userID uint) (*model.Task, error)
	UpdateStatus(ctx context.Context, taskID uint, statusCode int) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
}

type taskService struct {
	tasks repository.TaskRepository
	cache *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{tasks: tasks, cache: cache}
}

// CreateTask persists a new task owned by an existing user. The owner lookup
// and the insert run in one transaction so the referential check cannot race
// the write, and the lookup always hits the store, never the cache.
func (s *taskService) CreateTask(ctx context.Context, title, description string, userID uint) (*model.Task, error) {
	var created *model.Task
	err := s.tasks.WithTransaction(ctx, func(ctx context.Context, tasks repository.TaskRepository, users repository.UserRepository) error {
		owner, err := users.FindByID(ctx, userID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return err
		}

		task := &model.Task{
			Title:       title,
			Description: description,
			Status:      model.StatusPending,
			UserID:      owner.ID,
		}
		if err := tasks.Create(ctx, task); err != nil {
			return err
		}

		task.User = *owner
		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, taskListCacheKey)
	return created, nil
}

// UpdateStatus resolves the caller-supplied code and overwrites the task's
// status. Lookup and write share a transaction; a bad code leaves the stored
// status untouched.
func (s *taskService) UpdateStatus(ctx context.Context, taskID uint, statusCode int) (*model.Task, error) {
	var updated *model.Task
	err := s.tasks.WithTransaction(ctx, func(ctx context.Context, tasks repository.TaskRepository, users repository.UserRepository) error {
		task, err := tasks.FindByID(ctx, taskID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrTaskNotFound
			}
			return err
		}

		status, err := model.StatusFromCode(statusCode)
		if err != nil {
			return errors.ErrInvalidStatusCode
		}

		if err := tasks.UpdateStatus(ctx, task.ID, status); err != nil {
			return err
		}
		task.Status = status

		owner, err := users.FindByID(ctx, task.UserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				logger.L().Error().Uint("task_id", task.ID).Uint("user_id", task.UserID).
					Msg("task references missing user")
				return errors.ErrTaskOwnerMissing
			}
			return err
		}
		task.User = *owner

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, taskListCacheKey)
	return updated, nil
}

// ListTasks returns every task with its owner resolved, read-through cached.
// A task whose owner row is gone is reported as an integrity fault rather
// than silently dropped.
func (s *taskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	if data, _ := s.cache.Get(ctx, taskListCacheKey); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.tasks.ListWithUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].User.ID == 0 {
			logger.L().Error().Uint("task_id", tasks[i].ID).Uint("user_id", tasks[i].UserID).
				Msg("task references missing user")
			return nil, errors.ErrTaskOwnerMissing
		}
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, taskListCacheKey, payload, taskListCacheTTL)
	}
	return tasks, nil
}
