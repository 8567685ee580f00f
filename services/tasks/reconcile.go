package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"panditseva/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeBookingReconcile = "booking:reconcile"
	QueueCritical        = "critical"
)

// ReconcilePayload carries a paid booking whose first write failed.
type ReconcilePayload struct {
	Record models.BookingRecord `json:"record"`
	Cause  string               `json:"cause,omitempty"`
}

func NewReconcileTask(rec *models.BookingRecord, cause string, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ReconcilePayload{Record: *rec, Cause: cause})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReconcile, b)
	opts := []asynq.Option{
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(maxRetry),
		// One live task per draft.
		asynq.TaskID("reconcile:" + rec.DraftID),
	}
	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client the reconciler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReconciler schedules reconciliation tasks.
type AsynqReconciler struct {
	client   Enqueuer
	maxRetry int
	logger   *zap.Logger
}

func NewAsynqReconciler(client Enqueuer, maxRetry int, logger *zap.Logger) *AsynqReconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqReconciler{client: client, maxRetry: maxRetry, logger: logger}
}

func (r *AsynqReconciler) ScheduleReconcile(ctx context.Context, rec *models.BookingRecord, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	task, opts, err := NewReconcileTask(rec, msg, r.maxRetry)
	if err != nil {
		return fmt.Errorf("failed to build reconcile task: %w", err)
	}
	info, err := r.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		r.logger.Info("Reconcile task already queued", zap.String("draftID", rec.DraftID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue reconcile task: %w", err)
	}
	r.logger.Warn("Booking reconciliation scheduled",
		zap.String("draftID", rec.DraftID),
		zap.String("taskID", info.ID),
		zap.String("queue", info.Queue))
	return nil
}
