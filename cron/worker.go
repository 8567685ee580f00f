package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"panditseva/config"
	bookingRepo "panditseva/database/repository/booking"
	reconcileRepo "panditseva/database/repository/reconcile"
	"panditseva/models"
	"panditseva/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReconcileHandler retries booking writes for payments that were captured
// but not stored. When asynq gives up, the booking goes to manual review.
type ReconcileHandler struct {
	Bookings bookingRepo.BookingRepository
	Review   reconcileRepo.ReviewQueue
	Logger   *zap.Logger
	Now      func() time.Time
	// RetryInfo reports how often the task was retried and the limit.
	RetryInfo func(ctx context.Context) (retried, maxRetry int)
}

func NewReconcileHandler(bookings bookingRepo.BookingRepository, review reconcileRepo.ReviewQueue, logger *zap.Logger) *ReconcileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconcileHandler{
		Bookings:  bookings,
		Review:    review,
		Logger:    logger,
		Now:       time.Now,
		RetryInfo: asynqRetryInfo,
	}
}

func asynqRetryInfo(ctx context.Context) (int, int) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	return retried, maxRetry
}

func (h *ReconcileHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var p tasks.ReconcilePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		h.Logger.Error("Invalid reconcile payload", zap.Error(err))
		return fmt.Errorf("invalid reconcile payload: %v: %w", err, asynq.SkipRetry)
	}
	rec := p.Record

	stored, created, err := h.Bookings.CreateIdempotent(ctx, &rec)
	if err == nil {
		h.Logger.Info("Booking reconciled",
			zap.String("draftID", rec.DraftID),
			zap.String("bookingID", stored.ID),
			zap.Bool("created", created))
		return nil
	}

	retried, maxRetry := h.RetryInfo(ctx)
	if retried < maxRetry {
		h.Logger.Warn("Reconcile attempt failed, will retry",
			zap.String("draftID", rec.DraftID),
			zap.Int("retried", retried),
			zap.Int("maxRetry", maxRetry),
			zap.Error(err))
		return err
	}

	c := &models.ReconciliationCase{
		DraftID:   rec.DraftID,
		Record:    rec,
		Attempts:  retried + 1,
		LastError: err.Error(),
		CreatedAt: h.Now().UTC(),
	}
	if qerr := h.Review.Add(ctx, c); qerr != nil {
		h.Logger.Error("Failed to hand booking to manual review",
			zap.String("draftID", rec.DraftID),
			zap.String("paymentID", rec.PaymentID),
			zap.NamedError("writeError", err),
			zap.Error(qerr))
		return qerr
	}
	h.Logger.Error("Booking moved to manual review",
		zap.String("draftID", rec.DraftID),
		zap.String("paymentID", rec.PaymentID),
		zap.Int("attempts", c.Attempts),
		zap.Error(err))
	return fmt.Errorf("reconcile exhausted for draft %s: %w", rec.DraftID, asynq.SkipRetry)
}

func redisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// NewClient returns an asynq client on the queue database.
func NewClient(cfg config.Config) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// StartReconcileWorker starts the asynq server in the background. The caller
// owns shutdown through the returned server.
func StartReconcileWorker(ctx context.Context, cfg config.Config, handler *ReconcileHandler, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				tasks.QueueCritical: 6,
				"default":           1,
			},
			Logger:   logger.Sugar(),
			LogLevel: asynq.WarnLevel,
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeBookingReconcile, handler)

	go monitorRedisConnection(ctx, cfg, logger)

	go func() {
		logger.Info("Starting reconcile worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Reconcile worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reconcile worker gave up; failed bookings will stay queued until restart")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// monitorRedisConnection pings the queue database so outages show up in logs.
func monitorRedisConnection(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
