package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"panditseva/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

var zeroDecimalCurrencies = map[string]bool{
	"jpy": true, "krw": true, "vnd": true, "clp": true, "ugx": true, "xaf": true, "xof": true,
}

// StripeGateway charges through a confirmed PaymentIntent. The API key is
// read from stripe.Key.
type StripeGateway struct {
	logger    *zap.Logger
	newIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripeGateway{logger: logger, newIntent: paymentintent.New}
}

func toMinorUnits(amount float64, currency string) int64 {
	if zeroDecimalCurrencies[currency] {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

func (g *StripeGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.PaymentOutcome, error) {
	if err := validateCharge(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}
	currency := strings.ToLower(req.Currency)

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(req.Amount, currency)),
		Currency:    stripe.String(currency),
		Description: stripe.String(req.Description),
		Confirm:     stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	if req.PaymentMethod != "" {
		params.PaymentMethod = stripe.String(req.PaymentMethod)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.PayerName != "" {
		params.AddMetadata("payerName", req.PayerName)
	}

	pi, err := g.newIntent(params)
	if err != nil {
		reason := err.Error()
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			reason = stripeErr.Msg
		}
		g.logger.Error("Stripe charge failed", zap.String("key", req.IdempotencyKey), zap.Error(err))
		return &models.PaymentOutcome{Status: models.OutcomeFailed, Reason: reason, Gateway: "stripe"}, nil
	}

	out := &models.PaymentOutcome{PaymentID: pi.ID, Gateway: "stripe"}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
		out.Status = models.OutcomeSucceeded
	case stripe.PaymentIntentStatusCanceled,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresPaymentMethod:
		out.Status = models.OutcomeCancelled
		out.Reason = string(pi.Status)
	default:
		out.Status = models.OutcomeFailed
		out.Reason = "unexpected payment intent status " + string(pi.Status)
	}
	g.logger.Info("Stripe charge finished",
		zap.String("key", req.IdempotencyKey),
		zap.String("intent", pi.ID),
		zap.String("status", string(pi.Status)))
	return out, nil
}
