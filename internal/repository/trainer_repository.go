package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitsync/internal/model"
)

// TrainerRepository defines trainer application persistence operations.
type TrainerRepository interface {
	Create(ctx context.Context, app *model.TrainerApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TrainerApplication, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TrainerApplication, error)
	FindLatestByEmail(ctx context.Context, email string) (*model.TrainerApplication, error)
	ListByStatus(ctx context.Context, status model.TrainerStatus) ([]model.TrainerApplication, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type trainerRepository struct {
	db *gorm.DB
}

// NewTrainerRepository creates a new trainer application repository.
func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

// Create creates a new trainer application.
func (r *trainerRepository) Create(ctx context.Context, app *model.TrainerApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// FindByID finds an application by ID.
func (r *trainerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TrainerApplication, error) {
	var app model.TrainerApplication
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByIDForUpdate finds an application by ID with a row-level lock. Only meaningful inside a transaction.
func (r *trainerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TrainerApplication, error) {
	var app model.TrainerApplication
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindLatestByEmail returns the most recent application submitted with email.
func (r *trainerRepository) FindLatestByEmail(ctx context.Context, email string) (*model.TrainerApplication, error) {
	var app model.TrainerApplication
	if err := r.db.WithContext(ctx).Where("email = ?", email).
		Order("created_at DESC").First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByStatus lists applications with the given status, oldest first.
func (r *trainerRepository) ListByStatus(ctx context.Context, status model.TrainerStatus) ([]model.TrainerApplication, error) {
	var apps []model.TrainerApplication
	if err := r.db.WithContext(ctx).Where("status = ?", status).
		Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateFields applies a partial update to one application.
func (r *trainerRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.TrainerApplication{}).
		Where("id = ?", id).
		Updates(fields).Error
}
