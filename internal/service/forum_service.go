package service

import (
	"context"
	"strings"

	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
)

const (
	defaultPerPage = 6
	maxPerPage     = 100
)

// ForumPage is one page of forum posts. Page is zero-based.
type ForumPage struct {
	Items   []model.ForumPost `json:"items"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

// ForumService manages forum posts.
type ForumService interface {
	Create(ctx context.Context, post *model.ForumPost) (*model.ForumPost, error)
	Get(ctx context.Context, id string) (*model.ForumPost, error)
	List(ctx context.Context, page, perPage int) (*ForumPage, error)
}

type forumService struct {
	repo repository.ForumRepository
}

// NewForumService creates a new forum service.
func NewForumService(repo repository.ForumRepository) ForumService {
	return &forumService{repo: repo}
}

func (s *forumService) Create(ctx context.Context, post *model.ForumPost) (*model.ForumPost, error) {
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" || strings.TrimSpace(post.Content) == "" {
		return nil, errors.ErrInvalidInput
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, storeError("create forum post", err)
	}
	return post, nil
}

func (s *forumService) Get(ctx context.Context, id string) (*model.ForumPost, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	post, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, storeError("find forum post", err)
	}
	return post, nil
}

// List returns posts newest first, skipping page*perPage of them.
func (s *forumService) List(ctx context.Context, page, perPage int) (*ForumPage, error) {
	if page < 0 {
		return nil, errors.ErrInvalidInput
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	items, err := s.repo.List(ctx, page*perPage, perPage)
	if err != nil {
		return nil, storeError("list forum posts", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, storeError("count forum posts", err)
	}
	if items == nil {
		items = []model.ForumPost{}
	}
	return &ForumPage{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}
