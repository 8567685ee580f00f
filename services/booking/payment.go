package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"panditseva/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentInitiator takes a payment and reports a three-way outcome. Errors are
// reserved for requests that could not be attempted at all.
type PaymentInitiator interface {
	Charge(ctx context.Context, req models.ChargeRequest) (*models.PaymentOutcome, error)
}

func validateCharge(req models.ChargeRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return errors.New("missing currency")
	}
	return nil
}

// MockGateway simulates a hosted checkout: it waits Delay, then returns
// Outcome. A key that already succeeded gets the same payment back, the way
// Stripe replays idempotent requests. Used in development and tests.
type MockGateway struct {
	Delay   time.Duration
	Outcome models.OutcomeStatus
	Reason  string
	logger  *zap.Logger

	mu       sync.Mutex
	captured map[string]models.PaymentOutcome
}

func NewMockGateway(delay time.Duration, logger *zap.Logger) *MockGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockGateway{
		Delay:    delay,
		Outcome:  models.OutcomeSucceeded,
		logger:   logger,
		captured: make(map[string]models.PaymentOutcome),
	}
}

func (g *MockGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.PaymentOutcome, error) {
	if err := validateCharge(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}
	if prev, ok := g.replay(req.IdempotencyKey); ok {
		g.logger.Info("Mock checkout replayed", zap.String("key", req.IdempotencyKey), zap.String("paymentID", prev.PaymentID))
		return &prev, nil
	}

	timer := time.NewTimer(g.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		g.logger.Warn("Mock checkout interrupted", zap.String("key", req.IdempotencyKey), zap.Error(ctx.Err()))
		return &models.PaymentOutcome{Status: models.OutcomeFailed, Reason: ctx.Err().Error(), Gateway: "mock"}, nil
	case <-timer.C:
	}

	out := &models.PaymentOutcome{Status: g.Outcome, Reason: g.Reason, Gateway: "mock"}
	if out.Status == "" {
		out.Status = models.OutcomeSucceeded
	}
	if out.Succeeded() {
		out.PaymentID = "pay_" + uuid.New().String()
		g.remember(req.IdempotencyKey, *out)
	}
	g.logger.Info("Mock checkout finished",
		zap.String("key", req.IdempotencyKey),
		zap.String("status", string(out.Status)),
		zap.Float64("amount", req.Amount))
	return out, nil
}

func (g *MockGateway) replay(key string) (models.PaymentOutcome, bool) {
	if key == "" {
		return models.PaymentOutcome{}, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out, ok := g.captured[key]
	return out, ok
}

func (g *MockGateway) remember(key string, out models.PaymentOutcome) {
	if key == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.captured == nil {
		g.captured = make(map[string]models.PaymentOutcome)
	}
	g.captured[key] = out
}
