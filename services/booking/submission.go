package booking

import (
	"context"
	"errors"
	"time"

	"panditseva/database/repository"
	bookingRepo "panditseva/database/repository/booking"
	"panditseva/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reconciler takes over a paid booking that could not be stored.
type Reconciler interface {
	ScheduleReconcile(ctx context.Context, rec *models.BookingRecord, cause error) error
}

// CaseResolver closes the manual review case opened for a draft.
type CaseResolver interface {
	Resolve(ctx context.Context, draftID string) error
}

// Submitter persists booking records after a captured payment.
type Submitter struct {
	bookings   bookingRepo.BookingRepository
	reconciler Reconciler
	review     CaseResolver
	logger     *zap.Logger
	now        func() time.Time
}

// NewSubmitter wires the booking store. review may be nil when no review
// queue is kept.
func NewSubmitter(bookings bookingRepo.BookingRepository, reconciler Reconciler, review CaseResolver, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{bookings: bookings, reconciler: reconciler, review: review, logger: logger, now: time.Now}
}

// Submit stores the booking for a draft whose payment succeeded. Calling it
// again for the same draft returns the record stored the first time.
func (s *Submitter) Submit(ctx context.Context, draft *models.BookingDraft, outcome *models.PaymentOutcome, panditID, userID string, amount float64) (*models.BookingRecord, error) {
	if !outcome.Succeeded() {
		return nil, ErrPaymentNotSucceeded
	}

	now := s.now().UTC()
	rec := &models.BookingRecord{
		ID:            uuid.New().String(),
		DraftID:       draft.ID,
		UserID:        userID,
		PanditID:      panditID,
		RitualID:      draft.RitualID,
		ScheduledDate: draft.Date,
		ScheduledTime: draft.TimeSlot,
		Address:       draft.Address,
		Notes:         draft.Notes,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPaid,
		PaymentID:     outcome.PaymentID,
		Amount:        amount,
		Currency:      draft.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	stored, created, err := s.bookings.CreateIdempotent(ctx, rec)
	if err == nil {
		if created {
			s.logger.Info("Booking created",
				zap.String("bookingID", stored.ID),
				zap.String("draftID", draft.ID),
				zap.String("panditID", panditID))
		} else {
			s.logger.Info("Booking already stored for draft", zap.String("bookingID", stored.ID), zap.String("draftID", draft.ID))
		}
		if draft.LastError != "" || !created {
			s.resolveCase(ctx, draft.ID)
		}
		return stored, nil
	}

	queued := false
	if s.reconciler != nil {
		if qerr := s.reconciler.ScheduleReconcile(ctx, rec, err); qerr != nil {
			s.logger.Error("Failed to schedule booking reconciliation",
				zap.String("draftID", draft.ID), zap.Error(qerr))
		} else {
			queued = true
		}
	}
	s.logger.Error("Booking persistence failed after payment",
		zap.String("draftID", draft.ID),
		zap.String("paymentID", outcome.PaymentID),
		zap.Bool("reconciliationQueued", queued),
		zap.Error(err))
	return nil, &PersistenceError{Err: err, Queued: queued}
}

// resolveCase closes any review case left by an earlier failed attempt.
func (s *Submitter) resolveCase(ctx context.Context, draftID string) {
	if s.review == nil {
		return
	}
	err := s.review.Resolve(ctx, draftID)
	switch {
	case err == nil:
		s.logger.Info("Review case resolved by retry", zap.String("draftID", draftID))
	case errors.Is(err, repository.ErrNotFound):
	default:
		s.logger.Warn("Failed to resolve review case", zap.String("draftID", draftID), zap.Error(err))
	}
}
