package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups every repository bound to the same connection or transaction.
type Repositories struct {
	db *gorm.DB

	Users         UserRepository
	Trainers      TrainerRepository
	Subscriptions SubscriptionRepository
	Balance       BalanceRepository
	Forums        ForumRepository
	Votes         VoteRepository
	Newsletter    NewsletterRepository
	Classes       ClassRepository
}

// Transactor runs fn with repositories bound to a single database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error
}

// New builds GORM-backed repositories sharing db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:            db,
		Users:         NewUserRepository(db),
		Trainers:      NewTrainerRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Balance:       NewBalanceRepository(db),
		Forums:        NewForumRepository(db),
		Votes:         NewVoteRepository(db),
		Newsletter:    NewNewsletterRepository(db),
		Classes:       NewClassRepository(db),
	}
}

// WithTransaction executes fn within a database transaction. Returning an error rolls back.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, New(tx))
	})
}
