package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
	"fitsync/internal/testutil"
)

func TestBookingService_RecordSubscriptionCreditsBalance(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(testutil.NewDB(t))
	svc := NewBookingService(repos.Subscriptions, repos, nil)

	_, err := svc.RecordSubscription(ctx, &model.Subscription{Email: "a@x", Trainer: "T", Slot: "S", Price: decimal.NewFromInt(30)})
	require.NoError(t, err)
	_, err = svc.RecordSubscription(ctx, &model.Subscription{Email: "a@x", Trainer: "T", Slot: "Z", Price: decimal.NewFromInt(20)})
	require.NoError(t, err)

	_, err = svc.RecordSubscription(ctx, &model.Subscription{Email: "a@x", Trainer: "T", Slot: "S", Price: decimal.NewFromInt(30)})
	assert.ErrorIs(t, err, errors.ErrConflict)

	balance, err := repos.Balance.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "50", balance.TotalBalance.String())

	slots, err := svc.ListBookedSlots(ctx, "a@x")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"S", "Z"}, slots)

	slots, err = svc.ListBookedSlots(ctx, "nobody@x")
	require.NoError(t, err)
	assert.Equal(t, []string{}, slots)
}

func TestBookingService_RecordSubscriptionValidation(t *testing.T) {
	tests := []struct {
		name     string
		sub      model.Subscription
		expected error
	}{
		{"missing slot", model.Subscription{Email: "a@x", Trainer: "T", Price: decimal.NewFromInt(1)}, errors.ErrInvalidInput},
		{"missing email", model.Subscription{Trainer: "T", Slot: "S", Price: decimal.NewFromInt(1)}, errors.ErrInvalidInput},
		{"zero price", model.Subscription{Email: "a@x", Trainer: "T", Slot: "S"}, errors.ErrInvalidAmount},
		{"negative price", model.Subscription{Email: "a@x", Trainer: "T", Slot: "S", Price: decimal.NewFromInt(-5)}, errors.ErrInvalidAmount},
		{"fraction of a cent", model.Subscription{Email: "a@x", Trainer: "T", Slot: "S", Price: decimal.RequireFromString("0.004")}, errors.ErrInvalidAmount},
		{"cents plus a fraction", model.Subscription{Email: "a@x", Trainer: "T", Slot: "S", Price: decimal.RequireFromString("19.999")}, errors.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSubscriptionRepository)
			svc := NewBookingService(repo, nil, nil)

			sub := tt.sub
			_, err := svc.RecordSubscription(context.Background(), &sub)
			assert.ErrorIs(t, err, tt.expected)
			repo.AssertNotCalled(t, "Create")
		})
	}
}

func TestBookingService_ListSubscribersForSlot(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(testutil.NewDB(t))
	svc := NewBookingService(repos.Subscriptions, repos, nil)

	for _, sub := range []model.Subscription{
		{Email: "a@x", Trainer: "T", Slot: "S", Price: decimal.NewFromInt(10)},
		{Email: "b@x", Trainer: "T", Slot: "S", Price: decimal.NewFromInt(10)},
		{Email: "c@x", Trainer: "T", Slot: "Z", Price: decimal.NewFromInt(10)},
	} {
		sub := sub
		_, err := svc.RecordSubscription(ctx, &sub)
		require.NoError(t, err)
	}

	emails, err := svc.ListSubscribersForSlot(ctx, "T", "S")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x", "b@x"}, emails)
}
