package tasks

import (
	"context"
	"fmt"
	"time"

	reconcileRepo "panditseva/database/repository/reconcile"
	"panditseva/models"

	"go.uber.org/zap"
)

// ReviewReconciler hands failed bookings straight to manual review. Used when
// no task queue is running, e.g. with in-memory storage.
type ReviewReconciler struct {
	review reconcileRepo.ReviewQueue
	logger *zap.Logger
	now    func() time.Time
}

func NewReviewReconciler(review reconcileRepo.ReviewQueue, logger *zap.Logger) *ReviewReconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewReconciler{review: review, logger: logger, now: time.Now}
}

func (r *ReviewReconciler) ScheduleReconcile(ctx context.Context, rec *models.BookingRecord, cause error) error {
	c := &models.ReconciliationCase{
		DraftID:   rec.DraftID,
		Record:    *rec,
		Attempts:  1,
		CreatedAt: r.now(),
	}
	if cause != nil {
		c.LastError = cause.Error()
	}
	if err := r.review.Add(ctx, c); err != nil {
		return fmt.Errorf("failed to queue booking for review: %w", err)
	}
	r.logger.Warn("Booking sent to manual review", zap.String("draftID", rec.DraftID), zap.String("paymentID", rec.PaymentID))
	return nil
}
