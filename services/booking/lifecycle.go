package booking

import (
	"context"
	"errors"
	"fmt"

	"panditseva/database/repository"
	bookingRepo "panditseva/database/repository/booking"
	"panditseva/models"

	"go.uber.org/zap"
)

// Lifecycle moves stored bookings through their statuses after creation.
type Lifecycle struct {
	bookings bookingRepo.BookingRepository
	logger   *zap.Logger
}

func NewLifecycle(bookings bookingRepo.BookingRepository, logger *zap.Logger) *Lifecycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lifecycle{bookings: bookings, logger: logger}
}

type transition struct {
	role models.Role
	from []models.BookingStatus
	to   models.BookingStatus
}

var (
	acceptBooking   = transition{models.RolePandit, []models.BookingStatus{models.StatusPending}, models.StatusConfirmed}
	declineBooking  = transition{models.RolePandit, []models.BookingStatus{models.StatusPending}, models.StatusCancelled}
	completeBooking = transition{models.RolePandit, []models.BookingStatus{models.StatusConfirmed}, models.StatusCompleted}
	cancelBooking   = transition{models.RoleUser, []models.BookingStatus{models.StatusPending, models.StatusConfirmed}, models.StatusCancelled}
)

func (l *Lifecycle) ListForUser(ctx context.Context, s models.Session) ([]models.BookingRecord, error) {
	recs, err := l.bookings.ListByUser(ctx, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return recs, nil
}

// ListForPandit lists the session pandit's bookings; an empty status lists all.
func (l *Lifecycle) ListForPandit(ctx context.Context, s models.Session, status models.BookingStatus) ([]models.BookingRecord, error) {
	if status != "" && !status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"status": "Unknown booking status"}}
	}
	recs, err := l.bookings.ListByPandit(ctx, s.UserID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return recs, nil
}

func (l *Lifecycle) Accept(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error) {
	return l.apply(ctx, s, bookingID, acceptBooking)
}

func (l *Lifecycle) Decline(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error) {
	return l.apply(ctx, s, bookingID, declineBooking)
}

func (l *Lifecycle) Complete(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error) {
	return l.apply(ctx, s, bookingID, completeBooking)
}

func (l *Lifecycle) Cancel(ctx context.Context, s models.Session, bookingID string) (*models.BookingRecord, error) {
	return l.apply(ctx, s, bookingID, cancelBooking)
}

func (l *Lifecycle) apply(ctx context.Context, s models.Session, bookingID string, t transition) (*models.BookingRecord, error) {
	rec, err := l.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingID, err)
	}
	if s.Role != t.role || !ownedBy(rec, s) {
		return nil, ErrBookingNotFound
	}

	updated, err := l.bookings.UpdateStatus(ctx, bookingID, t.from, t.to)
	switch {
	case errors.Is(err, repository.ErrConflict):
		return nil, ErrInvalidTransition
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrBookingNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}
	l.logger.Info("Booking status changed",
		zap.String("bookingID", bookingID),
		zap.String("from", string(rec.Status)),
		zap.String("to", string(t.to)),
		zap.String("by", s.UserID))
	return updated, nil
}

func ownedBy(rec *models.BookingRecord, s models.Session) bool {
	switch s.Role {
	case models.RolePandit:
		return rec.PanditID == s.UserID
	case models.RoleUser:
		return rec.UserID == s.UserID
	}
	return false
}
