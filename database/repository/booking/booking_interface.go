package bookingRepo

import (
	"context"

	"panditseva/models"
)

// BookingRepository persists confirmed booking records.
type BookingRepository interface {
	// CreateIdempotent inserts rec unless a record with the same DraftID already
	// exists, in which case the stored record is returned with created=false.
	CreateIdempotent(ctx context.Context, rec *models.BookingRecord) (stored *models.BookingRecord, created bool, err error)
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	GetByDraftID(ctx context.Context, draftID string) (*models.BookingRecord, error)
	// ListByUser returns a user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.BookingRecord, error)
	// ListByPandit returns a pandit's bookings by scheduled date. An empty status matches all.
	ListByPandit(ctx context.Context, panditID string, status models.BookingStatus) ([]models.BookingRecord, error)
	// UpdateStatus moves a booking to "to" only if its current status is one of
	// "from". Returns repository.ErrConflict otherwise.
	UpdateStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (*models.BookingRecord, error)
}
