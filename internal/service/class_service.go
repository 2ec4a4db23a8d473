package service

import (
	"context"
	"strings"
	"time"

	"fitsync/internal/cache"
	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
)

const (
	classesCacheKey = "classes:all"
	classesCacheTTL = 10 * time.Minute
)

// ClassService manages the class catalogue.
type ClassService interface {
	Create(ctx context.Context, class *model.FitnessClass) (*model.FitnessClass, error)
	List(ctx context.Context) ([]model.FitnessClass, error)
}

type classService struct {
	repo  repository.ClassRepository
	cache *cache.Client
}

// NewClassService creates a new class service.
func NewClassService(repo repository.ClassRepository, cache *cache.Client) ClassService {
	return &classService{repo: repo, cache: cache}
}

func (s *classService) Create(ctx context.Context, class *model.FitnessClass) (*model.FitnessClass, error) {
	class.Name = strings.TrimSpace(class.Name)
	if class.Name == "" {
		return nil, errors.ErrInvalidInput
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, storeError("create class", err)
	}
	_ = s.cache.Delete(ctx, classesCacheKey)
	return class, nil
}

func (s *classService) List(ctx context.Context) ([]model.FitnessClass, error) {
	classes, err := cache.GetOrLoad(ctx, s.cache, classesCacheKey, classesCacheTTL, func() ([]model.FitnessClass, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, storeError("list classes", err)
	}
	if classes == nil {
		classes = []model.FitnessClass{}
	}
	return classes, nil
}
