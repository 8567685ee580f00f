package booking

import (
	"context"
	"testing"
	"time"

	"panditseva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func chargeReq() models.ChargeRequest {
	return models.ChargeRequest{
		Amount:         5500,
		Currency:       "INR",
		PayerName:      "Rahul Sharma",
		Description:    "Griha Pravesh",
		IdempotencyKey: "draft-1",
	}
}

func TestMockGateway_Succeeds(t *testing.T) {
	g := NewMockGateway(time.Millisecond, nil)
	out, err := g.Charge(context.Background(), chargeReq())
	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.Regexp(t, `^pay_[0-9a-f-]{36}$`, out.PaymentID)
}

func TestMockGateway_ConfiguredOutcome(t *testing.T) {
	g := NewMockGateway(time.Millisecond, nil)
	g.Outcome = models.OutcomeCancelled
	out, err := g.Charge(context.Background(), chargeReq())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeCancelled, out.Status)
	assert.Empty(t, out.PaymentID)
}

func TestMockGateway_ReplaysIdempotencyKey(t *testing.T) {
	g := NewMockGateway(time.Millisecond, nil)
	first, err := g.Charge(context.Background(), chargeReq())
	require.NoError(t, err)
	require.True(t, first.Succeeded())

	again, err := g.Charge(context.Background(), chargeReq())
	require.NoError(t, err)
	assert.Equal(t, first.PaymentID, again.PaymentID)

	other := chargeReq()
	other.IdempotencyKey = "draft-2"
	fresh, err := g.Charge(context.Background(), other)
	require.NoError(t, err)
	assert.NotEqual(t, first.PaymentID, fresh.PaymentID)
}

func TestMockGateway_FailedKeyIsNotReplayed(t *testing.T) {
	g := NewMockGateway(time.Millisecond, nil)
	g.Outcome = models.OutcomeFailed
	out, err := g.Charge(context.Background(), chargeReq())
	require.NoError(t, err)
	assert.False(t, out.Succeeded())

	g.Outcome = models.OutcomeSucceeded
	out, err = g.Charge(context.Background(), chargeReq())
	require.NoError(t, err)
	assert.True(t, out.Succeeded())
}

func TestMockGateway_ContextCancelled(t *testing.T) {
	g := NewMockGateway(time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := g.Charge(ctx, chargeReq())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailed, out.Status)
}

func TestMockGateway_RejectsInvalidRequest(t *testing.T) {
	g := NewMockGateway(0, nil)
	req := chargeReq()
	req.Amount = 0
	_, err := g.Charge(context.Background(), req)
	assert.Error(t, err)

	req = chargeReq()
	req.Currency = " "
	_, err = g.Charge(context.Background(), req)
	assert.Error(t, err)
}

func TestStripeGateway_StatusMapping(t *testing.T) {
	cases := []struct {
		status stripe.PaymentIntentStatus
		want   models.OutcomeStatus
	}{
		{stripe.PaymentIntentStatusSucceeded, models.OutcomeSucceeded},
		{stripe.PaymentIntentStatusProcessing, models.OutcomeSucceeded},
		{stripe.PaymentIntentStatusCanceled, models.OutcomeCancelled},
		{stripe.PaymentIntentStatusRequiresAction, models.OutcomeCancelled},
		{stripe.PaymentIntentStatusRequiresPaymentMethod, models.OutcomeCancelled},
		{stripe.PaymentIntentStatusRequiresCapture, models.OutcomeFailed},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			var seen *stripe.PaymentIntentParams
			g := NewStripeGateway(nil)
			g.newIntent = func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
				seen = p
				return &stripe.PaymentIntent{ID: "pi_123", Status: tc.status}, nil
			}

			out, err := g.Charge(context.Background(), chargeReq())
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Status)
			assert.Equal(t, "pi_123", out.PaymentID)

			require.NotNil(t, seen)
			assert.Equal(t, int64(550000), *seen.Amount)
			assert.Equal(t, "inr", *seen.Currency)
			assert.True(t, *seen.Confirm)
			require.NotNil(t, seen.IdempotencyKey)
			assert.Equal(t, "draft-1", *seen.IdempotencyKey)
		})
	}
}

func TestStripeGateway_APIError(t *testing.T) {
	g := NewStripeGateway(nil)
	g.newIntent = func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		return nil, &stripe.Error{Msg: "Your card was declined."}
	}
	out, err := g.Charge(context.Background(), chargeReq())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeFailed, out.Status)
	assert.Equal(t, "Your card was declined.", out.Reason)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), toMinorUnits(19.99, "inr"))
	assert.Equal(t, int64(500), toMinorUnits(500, "jpy"))
}
