package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"leak-watch/internal/domain/entity"
)

func TestMemoryResultRepository_KeepsOrder(t *testing.T) {
	repo := NewMemoryResultRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, entity.NewImageSuccess("a.jpg", entity.DetectionCounts{Leaked: 1})))
	require.NoError(t, repo.Append(ctx, entity.NewImageFailure("b.jpg", errors.New("timeout"))))

	results, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "a.jpg", results[0].Image)
	require.True(t, results[1].Failed())
}

func TestMemoryResultRepository_ListReturnsCopy(t *testing.T) {
	repo := NewMemoryResultRepository()
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, entity.NewImageSuccess("a.jpg", entity.DetectionCounts{})))

	results, err := repo.List(ctx)
	require.NoError(t, err)
	results[0].Image = "changed.jpg"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "a.jpg", again[0].Image)
}
