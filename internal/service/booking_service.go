package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"fitsync/internal/cache"
	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
)

// BookingService records paid slot bookings.
type BookingService interface {
	RecordSubscription(ctx context.Context, sub *model.Subscription) (*model.Subscription, error)
	ListBookedSlots(ctx context.Context, email string) ([]string, error)
	ListSubscriptionsByTrainer(ctx context.Context, trainerEmail string) ([]model.Subscription, error)
	ListSubscriptionsByEmail(ctx context.Context, email string) ([]model.Subscription, error)
	ListSubscribersForSlot(ctx context.Context, trainer, slot string) ([]string, error)
}

type bookingService struct {
	repo  repository.SubscriptionRepository
	tx    repository.Transactor
	cache *cache.Client
}

// NewBookingService creates a new booking service.
func NewBookingService(repo repository.SubscriptionRepository, tx repository.Transactor, cache *cache.Client) BookingService {
	return &bookingService{repo: repo, tx: tx, cache: cache}
}

// RecordSubscription stores a booking and credits its price to the admin balance in one transaction.
// Booking the same (email, trainer, slot) twice fails with ErrConflict.
func (s *bookingService) RecordSubscription(ctx context.Context, sub *model.Subscription) (*model.Subscription, error) {
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Trainer = strings.TrimSpace(sub.Trainer)
	sub.Slot = strings.TrimSpace(sub.Slot)
	if sub.Email == "" || sub.Trainer == "" || sub.Slot == "" {
		return nil, errors.ErrInvalidInput
	}
	if !validAmount(sub.Price) {
		return nil, errors.ErrInvalidAmount
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		if err := tx.Subscriptions.Create(ctx, sub); err != nil {
			return storeError("create subscription", err)
		}
		return storeError("credit balance", tx.Balance.Increment(ctx, sub.Price, decimal.Zero))
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, balanceCacheKey)
	slog.InfoContext(ctx, "subscription recorded",
		"subscription_id", sub.ID,
		"trainer", sub.Trainer,
		"slot", sub.Slot,
		"price", sub.Price.String(),
	)
	return sub, nil
}

func (s *bookingService) ListBookedSlots(ctx context.Context, email string) ([]string, error) {
	slots, err := s.repo.ListSlotsByEmail(ctx, email)
	if err != nil {
		return nil, storeError("list booked slots", err)
	}
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}

func (s *bookingService) ListSubscriptionsByTrainer(ctx context.Context, trainerEmail string) ([]model.Subscription, error) {
	subs, err := s.repo.ListByTrainerEmail(ctx, trainerEmail)
	return subs, storeError("list trainer subscriptions", err)
}

func (s *bookingService) ListSubscriptionsByEmail(ctx context.Context, email string) ([]model.Subscription, error) {
	subs, err := s.repo.ListByEmail(ctx, email)
	return subs, storeError("list member subscriptions", err)
}

// ListSubscribersForSlot returns one email per booking of (trainer, slot), repeats included.
func (s *bookingService) ListSubscribersForSlot(ctx context.Context, trainer, slot string) ([]string, error) {
	emails, err := s.repo.ListSubscriberEmails(ctx, trainer, slot)
	if err != nil {
		return nil, storeError("list slot subscribers", err)
	}
	if emails == nil {
		emails = []string{}
	}
	return emails, nil
}
