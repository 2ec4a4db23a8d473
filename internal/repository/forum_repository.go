package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitsync/internal/model"
)

// ForumRepository defines forum post persistence operations.
type ForumRepository interface {
	Create(ctx context.Context, post *model.ForumPost) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ForumPost, error)
	List(ctx context.Context, offset, limit int) ([]model.ForumPost, error)
	Count(ctx context.Context) (int64, error)
}

type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository creates a new forum repository.
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) Create(ctx context.Context, post *model.ForumPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *forumRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ForumPost, error) {
	var post model.ForumPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns one page of posts, newest first.
func (r *forumRepository) List(ctx context.Context, offset, limit int) ([]model.ForumPost, error) {
	var posts []model.ForumPost
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *forumRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ForumPost{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
