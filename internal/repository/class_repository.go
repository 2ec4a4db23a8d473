package repository

import (
	"context"

	"gorm.io/gorm"

	"fitsync/internal/model"
)

// ClassRepository defines fitness class persistence operations.
type ClassRepository interface {
	Create(ctx context.Context, class *model.FitnessClass) error
	List(ctx context.Context) ([]model.FitnessClass, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *model.FitnessClass) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) List(ctx context.Context) ([]model.FitnessClass, error) {
	var classes []model.FitnessClass
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}
