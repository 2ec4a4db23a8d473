package repository

import (
	"context"

	"gorm.io/gorm"

	"fitsync/internal/model"
)

// NewsletterRepository defines newsletter persistence operations.
type NewsletterRepository interface {
	Create(ctx context.Context, sub *model.NewsletterSubscriber) error
	List(ctx context.Context) ([]model.NewsletterSubscriber, error)
}

type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a new newsletter repository.
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Create(ctx context.Context, sub *model.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *newsletterRepository) List(ctx context.Context) ([]model.NewsletterSubscriber, error) {
	var subs []model.NewsletterSubscriber
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
