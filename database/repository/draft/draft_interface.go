package draftRepo

import (
	"context"
	"time"

	"panditseva/models"
)

// DraftStore holds in-progress booking drafts and their submission locks.
type DraftStore interface {
	// Get returns repository.ErrNotFound for unknown or expired drafts.
	Get(ctx context.Context, id string) (*models.BookingDraft, error)
	// Save writes the draft and refreshes its expiry.
	Save(ctx context.Context, d *models.BookingDraft, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	// AcquireSubmitLock takes the single-flight confirm lock for a draft. ok is
	// false when another confirm holds it.
	AcquireSubmitLock(ctx context.Context, id string, ttl time.Duration) (token string, ok bool, err error)
	// ReleaseSubmitLock drops the lock if token still owns it.
	ReleaseSubmitLock(ctx context.Context, id, token string) error
}
