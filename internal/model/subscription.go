package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Subscription is a member's paid booking of a trainer slot.
// At most one exists per (email, trainer, slot); the store enforces it.
type Subscription struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string          `json:"email" gorm:"size:255;not null;uniqueIndex:idx_subscriptions_booking,priority:1"`
	Trainer       string          `json:"trainer" gorm:"size:255;not null;uniqueIndex:idx_subscriptions_booking,priority:2;index:idx_subscriptions_slot,priority:1"`
	TrainerEmail  string          `json:"trainer_email" gorm:"size:255;index"`
	Slot          string          `json:"slot" gorm:"size:128;not null;uniqueIndex:idx_subscriptions_booking,priority:3;index:idx_subscriptions_slot,priority:2"`
	PackageName   string          `json:"package_name,omitempty" gorm:"size:128"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	TransactionID string          `json:"transaction_id,omitempty" gorm:"size:255"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
