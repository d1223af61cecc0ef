package service

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"tasktracker/internal/cache"
	"tasktracker/internal/errors"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
)

const (
	userListCacheKey = "users:all"
	userListCacheTTL = 5 * time.Minute
)

// UserService exposes user domain operations.
type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// CreateUser persists a new user. Email uniqueness is pre-checked for the
// common path; the database unique index stays authoritative, so a
// concurrent insert losing the race still comes back as ErrUserAlreadyExists.
func (s *userService) CreateUser(ctx context.Context, name, email string) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}

	user := &model.User{Name: name, Email: email}
	if err := s.repo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrUserAlreadyExists
		}
		return nil, err
	}

	_ = s.cache.Delete(ctx, userListCacheKey)
	return user, nil
}

// ListUsers returns every user, read-through cached.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	if data, _ := s.cache.Get(ctx, userListCacheKey); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		_ = s.cache.Set(ctx, userListCacheKey, payload, userListCacheTTL)
	}
	return users, nil
}
