package service

import (
	"context"
	"strings"

	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
)

// NewsletterService manages newsletter sign-ups.
type NewsletterService interface {
	Subscribe(ctx context.Context, name, email string) (*model.NewsletterSubscriber, error)
	List(ctx context.Context) ([]model.NewsletterSubscriber, error)
}

type newsletterService struct {
	repo repository.NewsletterRepository
}

// NewNewsletterService creates a new newsletter service.
func NewNewsletterService(repo repository.NewsletterRepository) NewsletterService {
	return &newsletterService{repo: repo}
}

// Subscribe signs email up once; a repeat sign-up fails with ErrConflict.
func (s *newsletterService) Subscribe(ctx context.Context, name, email string) (*model.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.ErrInvalidInput
	}
	sub := &model.NewsletterSubscriber{Name: strings.TrimSpace(name), Email: email}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, storeError("subscribe to newsletter", err)
	}
	return sub, nil
}

func (s *newsletterService) List(ctx context.Context) ([]model.NewsletterSubscriber, error) {
	subs, err := s.repo.List(ctx)
	return subs, storeError("list newsletter subscribers", err)
}
