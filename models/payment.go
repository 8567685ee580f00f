package models

// PaymentStatus tracks money movement for a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// OutcomeStatus is the three-way result of a checkout.
type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeCancelled OutcomeStatus = "cancelled" // Payer dismissed the checkout.
	OutcomeFailed    OutcomeStatus = "failed"    // Gateway or network error.
)

// ChargeRequest asks the gateway to take a payment.
type ChargeRequest struct {
	Amount         float64           `json:"amount"`
	Currency       string            `json:"currency"`
	PayerName      string            `json:"payerName"`
	Description    string            `json:"description"`
	IdempotencyKey string            `json:"idempotencyKey"`
	PaymentMethod  string            `json:"paymentMethod,omitempty"` // Gateway token, e.g. a Stripe pm_ id.
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// PaymentOutcome is what the gateway reported for a charge.
type PaymentOutcome struct {
	Status    OutcomeStatus `bson:"status" json:"status"`
	Reason    string        `bson:"reason,omitempty" json:"reason,omitempty"`
	PaymentID string        `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Gateway   string        `bson:"gateway,omitempty" json:"gateway,omitempty"`
}

func (o *PaymentOutcome) Succeeded() bool {
	return o != nil && o.Status == OutcomeSucceeded
}
