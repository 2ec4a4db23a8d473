package repository

import (
	"context"

	"gorm.io/gorm"

	"fitsync/internal/model"
)

// SubscriptionRepository defines booking persistence operations.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	ListSlotsByEmail(ctx context.Context, email string) ([]string, error)
	ListByEmail(ctx context.Context, email string) ([]model.Subscription, error)
	ListByTrainerEmail(ctx context.Context, trainerEmail string) ([]model.Subscription, error)
	ListSubscriberEmails(ctx context.Context, trainer, slot string) ([]string, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create inserts a subscription. A duplicate (email, trainer, slot) fails with gorm.ErrDuplicatedKey.
func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// ListSlotsByEmail returns the slots booked by email in booking order.
func (r *subscriptionRepository) ListSlotsByEmail(ctx context.Context, email string) ([]string, error) {
	var slots []string
	if err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("email = ?", email).
		Order("created_at ASC").Order("id ASC").
		Pluck("slot", &slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// ListByEmail returns every subscription of a member.
func (r *subscriptionRepository) ListByEmail(ctx context.Context, email string) ([]model.Subscription, error) {
	var subs []model.Subscription
	if err := r.db.WithContext(ctx).Where("email = ?", email).
		Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ListByTrainerEmail returns every subscription booked with a trainer.
func (r *subscriptionRepository) ListByTrainerEmail(ctx context.Context, trainerEmail string) ([]model.Subscription, error) {
	var subs []model.Subscription
	if err := r.db.WithContext(ctx).Where("trainer_email = ?", trainerEmail).
		Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ListSubscriberEmails returns the subscriber email of every booking of (trainer, slot), in booking order.
func (r *subscriptionRepository) ListSubscriberEmails(ctx context.Context, trainer, slot string) ([]string, error) {
	var emails []string
	if err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("trainer = ? AND slot = ?", trainer, slot).
		Order("created_at ASC").Order("id ASC").
		Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}
