package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitsync/internal/model"
	"fitsync/internal/testutil"
)

func TestForumRepository_Pagination(t *testing.T) {
	ctx := context.Background()
	repo := NewForumRepository(testutil.NewDB(t))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		require.NoError(t, repo.Create(ctx, &model.ForumPost{
			Title:     fmt.Sprintf("post %d", i),
			Content:   "content",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := repo.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 20)
	assert.Equal(t, "post 19", all[0].Title)

	page, err := repo.List(ctx, 2*6, 6)
	require.NoError(t, err)
	require.Len(t, page, 6)
	for i, post := range page {
		assert.Equal(t, all[12+i].ID, post.ID)
	}

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), total)
}
