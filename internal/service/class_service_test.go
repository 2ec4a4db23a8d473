package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
	"fitsync/internal/testutil"
)

func TestClassService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewClassService(repository.NewClassRepository(testutil.NewDB(t)), nil)

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.Create(ctx, &model.FitnessClass{Name: " Yoga ", Trainers: []string{"alex@x.com"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.FitnessClass{Name: "Boxing"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.FitnessClass{Name: "Yoga"})
	assert.ErrorIs(t, err, errors.ErrConflict)

	_, err = svc.Create(ctx, &model.FitnessClass{Name: "  "})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	classes, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, "Boxing", classes[0].Name)
	assert.Equal(t, "Yoga", classes[1].Name)
	assert.Equal(t, []string{"alex@x.com"}, []string(classes[1].Trainers))
}
