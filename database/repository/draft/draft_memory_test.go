package draftRepo

import (
	"context"
	"testing"
	"time"

	"panditseva/database/repository"
	"panditseva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftStore_Expiry(t *testing.T) {
	now := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryDraftStore()
	store.Now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.BookingDraft{ID: "d-1", PanditID: "pandit-1"}, time.Minute))

	d, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "pandit-1", d.PanditID)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "d-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryDraftStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &models.BookingDraft{ID: "d-1", Address: "12 MG Road"}, time.Minute))

	d, _ := store.Get(ctx, "d-1")
	d.Address = "elsewhere"
	again, _ := store.Get(ctx, "d-1")
	assert.Equal(t, "12 MG Road", again.Address)
}

func TestMemoryDraftStore_SubmitLock(t *testing.T) {
	now := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryDraftStore()
	store.Now = func() time.Time { return now }
	ctx := context.Background()

	token, ok, err := store.AcquireSubmitLock(ctx, "d-1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, _ = store.AcquireSubmitLock(ctx, "d-1", time.Minute)
	assert.False(t, ok, "second acquire must fail while held")

	// a stale token does not release someone else's lock
	require.NoError(t, store.ReleaseSubmitLock(ctx, "d-1", "stale"))
	_, ok, _ = store.AcquireSubmitLock(ctx, "d-1", time.Minute)
	assert.False(t, ok)

	require.NoError(t, store.ReleaseSubmitLock(ctx, "d-1", token))
	_, ok, _ = store.AcquireSubmitLock(ctx, "d-1", time.Minute)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = store.AcquireSubmitLock(ctx, "d-1", time.Minute)
	assert.True(t, ok, "expired lock can be taken")
}
