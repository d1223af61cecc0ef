package repository

import (
	"context"

	"gorm.io/gorm"

	"tasktracker/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	UpdateStatus(ctx context.Context, id uint, status model.Status) error
	ListWithUsers(ctx context.Context) ([]model.Task, error)
	// WithTransaction runs fn against transaction-scoped task and user
	// repositories. Lookup-then-write sequences go through here so the
	// check and the write share one transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tasks TaskRepository, users UserRepository) error) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id uint, status model.Status) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListWithUsers returns every task with its owner resolved in one query pass.
func (r *taskRepository) ListWithUsers(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("User").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tasks TaskRepository, users UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &taskRepository{db: tx}, &userRepository{db: tx})
	})
}
