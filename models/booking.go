package models

import "time"

// BookingStatus is the lifecycle state of a persisted booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending" // Paid, awaiting the pandit's acceptance.
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// BookingRecord is a booking persisted after a successful payment.
type BookingRecord struct {
	ID            string        `bson:"id" json:"id"`
	DraftID       string        `bson:"draftId" json:"draftId"` // Idempotency key; unique.
	UserID        string        `bson:"userId" json:"userId"`
	PanditID      string        `bson:"panditId" json:"panditId"`
	RitualID      string        `bson:"ritualId" json:"ritualId"`
	ScheduledDate string        `bson:"scheduledDate" json:"scheduledDate"` // "YYYY-MM-DD"
	ScheduledTime string        `bson:"scheduledTime" json:"scheduledTime"` // Slot label.
	Address       string        `bson:"address" json:"address"`
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID     string        `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Amount        float64       `bson:"amount" json:"amount"`
	Currency      string        `bson:"currency" json:"currency"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ReconciliationCase is a paid booking that could not be persisted and needs
// an operator.
type ReconciliationCase struct {
	DraftID   string        `bson:"draftId" json:"draftId"`
	Record    BookingRecord `bson:"record" json:"record"`
	Attempts  int           `bson:"attempts" json:"attempts"`
	LastError string        `bson:"lastError" json:"lastError"`
	Resolved  bool          `bson:"resolved" json:"resolved"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}
