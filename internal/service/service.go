package service

import (
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fitsync/internal/errors"
)

// storeError translates repository errors into domain errors.
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, errors.ErrNotFound)
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, errors.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// amountScale matches the decimal(20,2) money columns.
const amountScale = 2

// validAmount reports whether amount is positive and fits the money columns without rounding.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(amountScale))
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q: %w", id, errors.ErrInvalidIdentifier)
	}
	return parsed, nil
}

// dedupe returns values without repeats, keeping first occurrences in order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
