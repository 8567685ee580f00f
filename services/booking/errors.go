package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"panditseva/models"
)

var (
	ErrDraftNotFound       = errors.New("booking draft not found")
	ErrPanditNotFound      = errors.New("pandit not found")
	ErrInvalidStep         = errors.New("operation not allowed at the current booking step")
	ErrSubmissionInFlight  = errors.New("a submission for this draft is already in progress")
	ErrPaymentNotSucceeded = errors.New("payment has not succeeded")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidTransition   = errors.New("booking status transition not allowed")
	ErrPaymentCaptured     = errors.New("payment already captured for this draft")
)

// ValidationError carries per-field messages. It never moves a draft out of
// the detail step.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PaymentError reports a cancelled or failed checkout.
type PaymentError struct {
	Outcome models.PaymentOutcome
}

func (e *PaymentError) Error() string {
	if e.Outcome.Status == models.OutcomeCancelled {
		return "payment cancelled"
	}
	if e.Outcome.Reason != "" {
		return fmt.Sprintf("payment failed: %s", e.Outcome.Reason)
	}
	return "payment failed"
}

// PersistenceError means money was captured but the booking record could not
// be stored. Queued tells whether a reconciliation task was scheduled.
type PersistenceError struct {
	Err    error
	Queued bool
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("booking could not be saved after payment (reconciliation queued: %t): %v", e.Queued, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
