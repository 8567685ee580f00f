package reconcileRepo

import (
	"context"

	"panditseva/models"
)

// ReviewQueue stores paid bookings that could not be persisted automatically.
type ReviewQueue interface {
	// Add records a case. Adding the same draft twice updates the existing case.
	Add(ctx context.Context, c *models.ReconciliationCase) error
	ListOpen(ctx context.Context) ([]models.ReconciliationCase, error)
	// Resolve marks a case handled. Returns repository.ErrNotFound for unknown drafts.
	Resolve(ctx context.Context, draftID string) error
}
