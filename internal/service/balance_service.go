package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"fitsync/internal/cache"
	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
)

const (
	balanceCacheKey = "admin:balance"
	balanceCacheTTL = time.Minute
)

// BalanceService maintains the platform revenue ledger.
type BalanceService interface {
	Credit(ctx context.Context, amount decimal.Decimal) error
	Debit(ctx context.Context, amount decimal.Decimal) error
	GetBalance(ctx context.Context) (*model.AdminBalance, error)
	PayTrainer(ctx context.Context, trainerID string, amount decimal.Decimal) (*model.AdminBalance, error)
}

type balanceService struct {
	repo   repository.BalanceRepository
	tx     repository.Transactor
	cache  *cache.Client
	payout decimal.Decimal
}

// NewBalanceService builds a BalanceService. payout is used when a payout request names no amount.
func NewBalanceService(repo repository.BalanceRepository, tx repository.Transactor, cache *cache.Client, payout decimal.Decimal) BalanceService {
	return &balanceService{repo: repo, tx: tx, cache: cache, payout: payout}
}

// Credit adds subscription revenue to the balance.
func (s *balanceService) Credit(ctx context.Context, amount decimal.Decimal) error {
	if !validAmount(amount) {
		return errors.ErrInvalidAmount
	}
	if err := s.repo.Increment(ctx, amount, decimal.Zero); err != nil {
		return storeError("credit balance", err)
	}
	_ = s.cache.Delete(ctx, balanceCacheKey)
	return nil
}

// Debit records a payout: the balance shrinks and the paid total grows by amount.
func (s *balanceService) Debit(ctx context.Context, amount decimal.Decimal) error {
	if !validAmount(amount) {
		return errors.ErrInvalidAmount
	}
	if err := s.repo.Increment(ctx, amount.Neg(), amount); err != nil {
		return storeError("debit balance", err)
	}
	_ = s.cache.Delete(ctx, balanceCacheKey)
	return nil
}

func (s *balanceService) GetBalance(ctx context.Context) (*model.AdminBalance, error) {
	balance, err := cache.GetOrLoad(ctx, s.cache, balanceCacheKey, balanceCacheTTL, func() (*model.AdminBalance, error) {
		return s.repo.Get(ctx)
	})
	if err != nil {
		return nil, storeError("get balance", err)
	}
	return balance, nil
}

// PayTrainer pays an accepted trainer. A zero amount pays the configured default.
func (s *balanceService) PayTrainer(ctx context.Context, trainerID string, amount decimal.Decimal) (*model.AdminBalance, error) {
	id, err := parseID(trainerID)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		amount = s.payout
	}
	if !validAmount(amount) {
		return nil, errors.ErrInvalidAmount
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		app, err := tx.Trainers.FindByIDForUpdate(ctx, id)
		if err != nil {
			return storeError("find trainer", err)
		}
		if app.Status != model.TrainerStatusAccepted {
			return errors.ErrInvalidStatus
		}
		if app.Salary == model.SalaryPaid {
			return errors.ErrConflict
		}
		if err := tx.Trainers.UpdateFields(ctx, id, map[string]interface{}{"salary": model.SalaryPaid}); err != nil {
			return storeError("mark trainer paid", err)
		}
		return storeError("debit balance", tx.Balance.Increment(ctx, amount.Neg(), amount))
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, balanceCacheKey, trainerListKey(model.TrainerStatusAccepted))
	slog.InfoContext(ctx, "trainer paid", "trainer_id", id, "amount", amount.String())

	return s.repo.Get(ctx)
}
