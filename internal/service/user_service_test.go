package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tasktracker/internal/errors"
	"tasktracker/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful creation",
			userName: "Higor",
			email:    "higor@higor.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "higor@higor.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = 1
					})
			},
			expectedError: nil,
		},
		{
			name:     "email already taken",
			userName: "Higor",
			email:    "taken@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").
					Return(&model.User{ID: 1, Email: "taken@example.com"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
		{
			name:     "constraint violation on insert race",
			userName: "Higor",
			email:    "raced@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "raced@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.CreateUser(context.Background(), tt.userName, tt.email)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, tt.email, user.Email)
				assert.NotZero(t, user.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	expected := []model.User{
		{ID: 1, Name: "User 1", Email: "user1@example.com"},
		{ID: 2, Name: "User 2", Email: "user2@example.com"},
	}
	mockRepo.On("List", mock.Anything).Return(expected, nil)

	svc := NewUserService(mockRepo, nil)
	users, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, users)
	mockRepo.AssertExpectations(t)
}
