package panditRepo

import (
	"context"

	"panditseva/models"
)

// PanditRepository defines methods for pandit directory access.
type PanditRepository interface {
	// GetByID retrieves a pandit by id. Returns repository.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.PanditProfile, error)
	// List returns the pandits matching the filter, featured and best rated first.
	List(ctx context.Context, filter models.PanditFilter) ([]models.PanditProfile, error)
	// Upsert inserts or replaces a pandit record by id.
	Upsert(ctx context.Context, p *models.PanditProfile) error
}
