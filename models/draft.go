package models

import "time"

// DraftStep is the position of a draft in the booking wizard.
type DraftStep string

const (
	StepDetail    DraftStep = "detail"    // Entering ritual, date, time, address.
	StepReview    DraftStep = "review"    // Showing the summary and price; payment allowed.
	StepCompleted DraftStep = "completed" // Booking persisted; caller navigates away.
)

// BookingDraft is one in-progress booking attempt, private to the session
// that started it.
type BookingDraft struct {
	ID        string          `json:"id"` // Also the idempotency key for charge and persistence.
	UserID    string          `json:"userId"`
	PayerName string          `json:"payerName,omitempty"`
	PanditID  string          `json:"panditId"`
	Step      DraftStep       `json:"step"`
	RitualID  string          `json:"ritualId,omitempty"`
	Date      string          `json:"date,omitempty"` // "YYYY-MM-DD"
	TimeSlot  string          `json:"timeSlot,omitempty"`
	Address   string          `json:"address,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Amount    float64         `json:"amount,omitempty"` // Fixed when entering review.
	Currency  string          `json:"currency,omitempty"`
	Payment   *PaymentOutcome `json:"payment,omitempty"` // Set once a charge for this draft succeeded.
	BookingID string          `json:"bookingId,omitempty"`
	LastError string          `json:"lastError,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Paid reports whether money has already been captured for this draft.
func (d *BookingDraft) Paid() bool {
	return d.Payment.Succeeded()
}

// DraftChanges is a partial update of the detail fields. Nil pointers leave
// the current value untouched.
type DraftChanges struct {
	RitualID *string `json:"ritualId,omitempty"`
	Date     *string `json:"date,omitempty"`
	TimeSlot *string `json:"timeSlot,omitempty"`
	Address  *string `json:"address,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// PaymentDetails carries what the client collected at checkout.
type PaymentDetails struct {
	PaymentMethod string `json:"paymentMethod,omitempty"`
}
