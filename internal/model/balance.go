package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminBalanceID is the primary key of the single admin balance row.
const AdminBalanceID uint = 1

// AdminBalance is the platform ledger: TotalBalance is credited subscription revenue
// minus trainer payouts, TotalPaid is the sum of payouts.
type AdminBalance struct {
	ID           uint            `json:"-" gorm:"primaryKey;autoIncrement:false"`
	TotalBalance decimal.Decimal `json:"total_balance" gorm:"type:decimal(20,2);not null;default:0"`
	TotalPaid    decimal.Decimal `json:"total_paid" gorm:"type:decimal(20,2);not null;default:0"`
	Version      uint            `json:"version" gorm:"not null;default:0"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
