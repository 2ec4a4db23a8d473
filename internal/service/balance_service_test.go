package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
	"fitsync/internal/testutil"
)

func newBalanceFixture(t *testing.T) (*repository.Repositories, BalanceService) {
	repos := repository.New(testutil.NewDB(t))
	return repos, NewBalanceService(repos.Balance, repos, nil, decimal.NewFromInt(10))
}

func TestBalanceService_ConcurrentCreditsAndDebits(t *testing.T) {
	ctx := context.Background()
	_, svc := newBalanceFixture(t)

	credits := []int64{100, 25, 40, 5, 80, 15}
	debits := []int64{10, 10, 30, 7}

	var wg sync.WaitGroup
	errs := make(chan error, len(credits)+len(debits))
	for _, c := range credits {
		wg.Add(1)
		go func(amount int64) {
			defer wg.Done()
			errs <- svc.Credit(ctx, decimal.NewFromInt(amount))
		}(c)
	}
	for _, d := range debits {
		wg.Add(1)
		go func(amount int64) {
			defer wg.Done()
			errs <- svc.Debit(ctx, decimal.NewFromInt(amount))
		}(d)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	balance, err := svc.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "208", balance.TotalBalance.String())
	assert.Equal(t, "57", balance.TotalPaid.String())
}

func TestBalanceService_GetBalanceIsStable(t *testing.T) {
	ctx := context.Background()
	_, svc := newBalanceFixture(t)
	require.NoError(t, svc.Credit(ctx, decimal.RequireFromString("12.50")))

	first, err := svc.GetBalance(ctx)
	require.NoError(t, err)
	second, err := svc.GetBalance(ctx)
	require.NoError(t, err)

	assert.True(t, first.TotalBalance.Equal(second.TotalBalance))
	assert.True(t, first.TotalPaid.Equal(second.TotalPaid))
	assert.Equal(t, first.Version, second.Version)
}

func TestBalanceService_RejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	_, svc := newBalanceFixture(t)

	assert.ErrorIs(t, svc.Credit(ctx, decimal.Zero), errors.ErrInvalidAmount)
	assert.ErrorIs(t, svc.Debit(ctx, decimal.NewFromInt(-1)), errors.ErrInvalidAmount)
}

func TestBalanceService_RejectsSubCentAmounts(t *testing.T) {
	ctx := context.Background()
	_, svc := newBalanceFixture(t)

	assert.ErrorIs(t, svc.Credit(ctx, decimal.RequireFromString("0.004")), errors.ErrInvalidAmount)
	assert.ErrorIs(t, svc.Debit(ctx, decimal.RequireFromString("1.005")), errors.ErrInvalidAmount)
	require.NoError(t, svc.Credit(ctx, decimal.RequireFromString("12.500")))

	got, err := svc.GetBalance(ctx)
	require.NoError(t, err)
	assert.True(t, got.TotalBalance.Equal(decimal.RequireFromString("12.5")), got.TotalBalance.String())
	assert.True(t, got.TotalPaid.IsZero())
}

func TestBalanceService_PayTrainer(t *testing.T) {
	ctx := context.Background()
	repos, svc := newBalanceFixture(t)
	require.NoError(t, svc.Credit(ctx, decimal.NewFromInt(100)))

	accepted := &model.TrainerApplication{Name: "Ann", Email: "ann@x", Status: model.TrainerStatusAccepted, Salary: model.SalaryUnpaid}
	pending := &model.TrainerApplication{Name: "Bob", Email: "bob@x", Status: model.TrainerStatusRequested}
	require.NoError(t, repos.Trainers.Create(ctx, accepted))
	require.NoError(t, repos.Trainers.Create(ctx, pending))

	balance, err := svc.PayTrainer(ctx, accepted.ID.String(), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "90", balance.TotalBalance.String())
	assert.Equal(t, "10", balance.TotalPaid.String())

	stored, err := repos.Trainers.FindByID(ctx, accepted.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SalaryPaid, stored.Salary)

	_, err = svc.PayTrainer(ctx, accepted.ID.String(), decimal.NewFromInt(5))
	assert.ErrorIs(t, err, errors.ErrConflict)

	_, err = svc.PayTrainer(ctx, pending.ID.String(), decimal.NewFromInt(5))
	assert.ErrorIs(t, err, errors.ErrInvalidStatus)

	_, err = svc.PayTrainer(ctx, "bad-id", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, errors.ErrInvalidIdentifier)

	balance, err = svc.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "90", balance.TotalBalance.String())
}
