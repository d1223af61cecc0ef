package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tasktracker/internal/errors"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
)

// MockTaskRepository is a mock implementation of TaskRepository. Its
// WithTransaction runs the callback against the mock itself and the paired
// user repository mock, standing in for transaction-scoped repositories.
type MockTaskRepository struct {
	mock.Mock
	users *MockUserRepository
}

func newMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{users: new(MockUserRepository)}
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id uint, status model.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTaskRepository) ListWithUsers(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tasks repository.TaskRepository, users repository.UserRepository) error) error {
	return fn(ctx, m, m.users)
}

func TestTaskService_CreateTask(t *testing.T) {
	owner := &model.User{ID: 1, Name: "Higor", Email: "higor@higor.com"}

	tests := []struct {
		name          string
		userID        uint
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:   "successful creation",
			userID: 1,
			setupMock: func(m *MockTaskRepository) {
				m.users.On("FindByID", mock.Anything, uint(1)).Return(owner, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.Task).ID = 1
					})
			},
		},
		{
			name:   "owner does not exist",
			userID: 42,
			setupMock: func(m *MockTaskRepository) {
				m.users.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := newMockTaskRepository()
			tt.setupMock(mockRepo)

			svc := NewTaskService(mockRepo, nil)
			task, err := svc.CreateTask(context.Background(), "Simple task", "A simple test task", tt.userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, task)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, task)
				assert.Equal(t, uint(1), task.ID)
				assert.Equal(t, "Simple task", task.Title)
				assert.Equal(t, "A simple test task", task.Description)
				assert.Equal(t, model.StatusPending, task.Status)
				assert.Equal(t, *owner, task.User)
			}

			mockRepo.AssertExpectations(t)
			mockRepo.users.AssertExpectations(t)
		})
	}
}

func TestTaskService_UpdateStatus(t *testing.T) {
	owner := &model.User{ID: 1, Name: "Higor", Email: "higor@higor.com"}

	tests := []struct {
		name           string
		taskID         uint
		statusCode     int
		setupMock      func(*MockTaskRepository)
		expectedStatus model.Status
		expectedError  error
	}{
		{
			name:       "set pendent",
			taskID:     1,
			statusCode: 0,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(1)).
					Return(&model.Task{ID: 1, Status: model.StatusInProgress, UserID: 1}, nil)
				m.On("UpdateStatus", mock.Anything, uint(1), model.StatusPending).Return(nil)
				m.users.On("FindByID", mock.Anything, uint(1)).Return(owner, nil)
			},
			expectedStatus: model.StatusPending,
		},
		{
			name:       "set on going",
			taskID:     1,
			statusCode: 1,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(1)).
					Return(&model.Task{ID: 1, Status: model.StatusPending, UserID: 1}, nil)
				m.On("UpdateStatus", mock.Anything, uint(1), model.StatusInProgress).Return(nil)
				m.users.On("FindByID", mock.Anything, uint(1)).Return(owner, nil)
			},
			expectedStatus: model.StatusInProgress,
		},
		{
			name:       "set completed",
			taskID:     1,
			statusCode: 2,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(1)).
					Return(&model.Task{ID: 1, Status: model.StatusPending, UserID: 1}, nil)
				m.On("UpdateStatus", mock.Anything, uint(1), model.StatusCompleted).Return(nil)
				m.users.On("FindByID", mock.Anything, uint(1)).Return(owner, nil)
			},
			expectedStatus: model.StatusCompleted,
		},
		{
			name:       "invalid status code leaves task untouched",
			taskID:     1,
			statusCode: 5,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(1)).
					Return(&model.Task{ID: 1, Status: model.StatusPending, UserID: 1}, nil)
			},
			expectedError: errors.ErrInvalidStatusCode,
		},
		{
			name:       "task not found",
			taskID:     99999,
			statusCode: 1,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(99999)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrTaskNotFound,
		},
		{
			name:       "owner row gone is an integrity fault",
			taskID:     1,
			statusCode: 1,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(1)).
					Return(&model.Task{ID: 1, Status: model.StatusPending, UserID: 7}, nil)
				m.On("UpdateStatus", mock.Anything, uint(1), model.StatusInProgress).Return(nil)
				m.users.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrTaskOwnerMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := newMockTaskRepository()
			tt.setupMock(mockRepo)

			svc := NewTaskService(mockRepo, nil)
			task, err := svc.UpdateStatus(context.Background(), tt.taskID, tt.statusCode)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, task)
				if tt.expectedError == errors.ErrInvalidStatusCode {
					mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, task)
				assert.Equal(t, tt.expectedStatus, task.Status)
				assert.Equal(t, *owner, task.User)
			}

			mockRepo.AssertExpectations(t)
			mockRepo.users.AssertExpectations(t)
		})
	}
}

func TestTaskService_ListTasks(t *testing.T) {
	t.Run("returns tasks with owners", func(t *testing.T) {
		mockRepo := newMockTaskRepository()
		expected := []model.Task{
			{ID: 1, Title: "Task 1", Status: model.StatusPending, UserID: 1,
				User: model.User{ID: 1, Name: "User 1", Email: "user1@example.com"}},
			{ID: 2, Title: "Task 2", Status: model.StatusCompleted, UserID: 1,
				User: model.User{ID: 1, Name: "User 1", Email: "user1@example.com"}},
		}
		mockRepo.On("ListWithUsers", mock.Anything).Return(expected, nil)

		svc := NewTaskService(mockRepo, nil)
		tasks, err := svc.ListTasks(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, expected, tasks)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unresolvable owner is an integrity fault", func(t *testing.T) {
		mockRepo := newMockTaskRepository()
		mockRepo.On("ListWithUsers", mock.Anything).Return([]model.Task{
			{ID: 1, Title: "Orphan", Status: model.StatusPending, UserID: 9},
		}, nil)

		svc := NewTaskService(mockRepo, nil)
		tasks, err := svc.ListTasks(context.Background())

		assert.Error(t, err)
		assert.Equal(t, errors.ErrTaskOwnerMissing, err)
		assert.Nil(t, tasks)
		mockRepo.AssertExpectations(t)
	})
}
