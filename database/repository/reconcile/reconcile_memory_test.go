package reconcileRepo

import (
	"context"
	"testing"
	"time"

	"panditseva/database/repository"
	"panditseva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReviewQueue(t *testing.T) {
	q := NewMemoryReviewQueue()
	ctx := context.Background()
	created := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, q.Add(ctx, &models.ReconciliationCase{DraftID: "d-1", Attempts: 1, CreatedAt: created}))
	require.NoError(t, q.Add(ctx, &models.ReconciliationCase{DraftID: "d-1", Attempts: 8, LastError: "timeout", CreatedAt: created.Add(time.Hour)}))

	open, err := q.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 8, open[0].Attempts)
	assert.Equal(t, created, open[0].CreatedAt)

	require.NoError(t, q.Resolve(ctx, "d-1"))
	open, _ = q.ListOpen(ctx)
	assert.Empty(t, open)

	assert.ErrorIs(t, q.Resolve(ctx, "nope"), repository.ErrNotFound)
}
