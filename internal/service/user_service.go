package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"fitsync/internal/cache"
	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes domain operations.
type UserService interface {
	SignIn(ctx context.Context, email, name, photoURL string) (*model.User, error)
	GetUser(ctx context.Context, email string) (*model.User, error)
	GetRole(ctx context.Context, email string) (model.Role, error)
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

func userCacheKey(email string) string {
	return "user:" + email
}

// SignIn returns the user with email, creating a member on first sign-in.
func (s *userService) SignIn(ctx context.Context, email, name, photoURL string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.ErrInvalidInput
	}
	user, err := s.repo.FirstOrCreate(ctx, &model.User{Email: email, Name: name, PhotoURL: photoURL})
	if err != nil {
		return nil, storeError("sign in user", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, email string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(email)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError("find user", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(email), payload, userCacheTTL)
	}
	return user, nil
}

// GetRole reads the role straight from the store so promotions apply immediately.
func (s *userService) GetRole(ctx context.Context, email string) (model.Role, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", storeError("find user", err)
	}
	return user.Role, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	return users, storeError("list users", err)
}
