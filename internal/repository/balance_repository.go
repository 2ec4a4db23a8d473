package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitsync/internal/model"
)

// BalanceRepository defines admin balance persistence operations.
type BalanceRepository interface {
	Ensure(ctx context.Context) error
	Get(ctx context.Context) (*model.AdminBalance, error)
	Increment(ctx context.Context, balanceDelta, paidDelta decimal.Decimal) error
}

type balanceRepository struct {
	db *gorm.DB
}

// NewBalanceRepository creates a new admin balance repository.
func NewBalanceRepository(db *gorm.DB) BalanceRepository {
	return &balanceRepository{db: db}
}

// Ensure inserts the singleton balance row if it does not exist yet.
func (r *balanceRepository) Ensure(ctx context.Context) error {
	row := model.AdminBalance{
		ID:           model.AdminBalanceID,
		TotalBalance: decimal.Zero,
		TotalPaid:    decimal.Zero,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// Get returns the current balance, or a zero balance if the row was never created.
func (r *balanceRepository) Get(ctx context.Context) (*model.AdminBalance, error) {
	var balance model.AdminBalance
	err := r.db.WithContext(ctx).Where("id = ?", model.AdminBalanceID).First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.AdminBalance{ID: model.AdminBalanceID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// Increment adds both deltas to the balance in a single UPDATE statement,
// so concurrent callers never lose each other's writes.
func (r *balanceRepository) Increment(ctx context.Context, balanceDelta, paidDelta decimal.Decimal) error {
	res := r.increment(ctx, balanceDelta, paidDelta)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if err := r.Ensure(ctx); err != nil {
		return err
	}
	return r.increment(ctx, balanceDelta, paidDelta).Error
}

func (r *balanceRepository) increment(ctx context.Context, balanceDelta, paidDelta decimal.Decimal) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.AdminBalance{}).
		Where("id = ?", model.AdminBalanceID).
		Updates(map[string]interface{}{
			"total_balance": gorm.Expr("total_balance + ?", balanceDelta),
			"total_paid":    gorm.Expr("total_paid + ?", paidDelta),
			"version":       gorm.Expr("version + 1"),
		})
}
