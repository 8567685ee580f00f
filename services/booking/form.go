package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"panditseva/database/repository"
	draftRepo "panditseva/database/repository/draft"
	"panditseva/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PanditSource resolves pandit profiles for the booking form.
type PanditSource interface {
	GetPandit(ctx context.Context, id string) (*models.PanditProfile, error)
}

// BookingSubmitter persists a booking once its payment succeeded.
type BookingSubmitter interface {
	Submit(ctx context.Context, draft *models.BookingDraft, outcome *models.PaymentOutcome, panditID, userID string, amount float64) (*models.BookingRecord, error)
}

const (
	// editLockTTL covers a single load-modify-save of a draft.
	editLockTTL = 10 * time.Second
	// submitLockMargin is how long the submit lock must outlive ConfirmTimeout.
	submitLockMargin = 15 * time.Second
)

type FormConfig struct {
	Currency      string
	DraftTTL      time.Duration
	SubmitLockTTL time.Duration
	// ConfirmTimeout bounds the charge and persistence that run after the
	// request context is detached.
	ConfirmTimeout time.Duration
}

// Confirmation is returned once a booking is stored. Receiving it is the
// completion signal for the caller.
type Confirmation struct {
	Draft   *models.BookingDraft  `json:"draft"`
	Booking *models.BookingRecord `json:"booking"`
}

// FormController drives a booking draft from detail entry through review to
// a stored booking.
type FormController struct {
	pandits   PanditSource
	drafts    draftRepo.DraftStore
	payments  PaymentInitiator
	submitter BookingSubmitter
	logger    *zap.Logger
	cfg       FormConfig

	Now func() time.Time
}

func NewFormController(pandits PanditSource, drafts draftRepo.DraftStore, payments PaymentInitiator, submitter BookingSubmitter, cfg FormConfig, logger *zap.Logger) *FormController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = 30 * time.Minute
	}
	if cfg.SubmitLockTTL <= 0 {
		cfg.SubmitLockTTL = 2 * time.Minute
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 90 * time.Second
	}
	if floor := cfg.ConfirmTimeout + submitLockMargin; cfg.SubmitLockTTL < floor {
		logger.Warn("Submit lock TTL shorter than confirm timeout, raising it",
			zap.Duration("submitLockTTL", cfg.SubmitLockTTL),
			zap.Duration("confirmTimeout", cfg.ConfirmTimeout),
			zap.Duration("raisedTo", floor))
		cfg.SubmitLockTTL = floor
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	return &FormController{
		pandits:   pandits,
		drafts:    drafts,
		payments:  payments,
		submitter: submitter,
		logger:    logger,
		cfg:       cfg,
		Now:       time.Now,
	}
}

// Start opens a new draft for the given pandit.
func (fc *FormController) Start(ctx context.Context, s models.Session, panditID string) (*models.BookingDraft, error) {
	if _, err := fc.pandits.GetPandit(ctx, panditID); err != nil {
		return nil, err
	}
	now := fc.Now()
	d := &models.BookingDraft{
		ID:        uuid.New().String(),
		UserID:    s.UserID,
		PayerName: s.Name,
		PanditID:  panditID,
		Step:      models.StepDetail,
		Currency:  fc.cfg.Currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := fc.save(ctx, d); err != nil {
		return nil, err
	}
	fc.logger.Debug("Booking draft started", zap.String("draftID", d.ID), zap.String("panditID", panditID))
	return d, nil
}

func (fc *FormController) Get(ctx context.Context, s models.Session, draftID string) (*models.BookingDraft, error) {
	return fc.load(ctx, s, draftID)
}

// Update applies detail changes. A new date drops a chosen time slot the
// pandit does not offer on that date; an explicitly chosen slot must be
// offered on the draft's date.
func (fc *FormController) Update(ctx context.Context, s models.Session, draftID string, ch models.DraftChanges) (*models.BookingDraft, error) {
	var out *models.BookingDraft
	err := fc.edit(ctx, s, draftID, func(d *models.BookingDraft) error {
		var err error
		out, err = fc.applyChanges(ctx, d, ch)
		return err
	})
	return out, err
}

func (fc *FormController) applyChanges(ctx context.Context, d *models.BookingDraft, ch models.DraftChanges) (*models.BookingDraft, error) {
	if d.Step != models.StepDetail {
		return nil, ErrInvalidStep
	}
	pandit, err := fc.pandits.GetPandit(ctx, d.PanditID)
	if err != nil {
		return nil, err
	}

	if ch.RitualID != nil {
		d.RitualID = strings.TrimSpace(*ch.RitualID)
	}
	if ch.Address != nil {
		d.Address = *ch.Address
	}
	if ch.Notes != nil {
		d.Notes = *ch.Notes
	}
	if ch.Date != nil {
		d.Date = strings.TrimSpace(*ch.Date)
		if d.TimeSlot != "" && !slotOffered(pandit, d.Date, d.TimeSlot) {
			fc.logger.Debug("Clearing time slot not offered on new date",
				zap.String("draftID", d.ID), zap.String("date", d.Date), zap.String("slot", d.TimeSlot))
			d.TimeSlot = ""
		}
	}
	if ch.TimeSlot != nil {
		slot := strings.TrimSpace(*ch.TimeSlot)
		switch {
		case slot == "":
		case d.Date == "":
			return nil, &ValidationError{Fields: map[string]string{"timeSlot": "Please select a date first"}}
		case !slotOffered(pandit, d.Date, slot):
			return nil, &ValidationError{Fields: map[string]string{"timeSlot": "Selected time is not available on this date"}}
		}
		d.TimeSlot = slot
	}

	d.LastError = ""
	d.UpdatedAt = fc.Now()
	if err := fc.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Slots lists the slots for date, or for the draft's date when date is empty.
func (fc *FormController) Slots(ctx context.Context, s models.Session, draftID, date string) ([]string, error) {
	d, err := fc.load(ctx, s, draftID)
	if err != nil {
		return nil, err
	}
	pandit, err := fc.pandits.GetPandit(ctx, d.PanditID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(date) == "" {
		date = d.Date
	}
	return ResolveSlots(pandit, date), nil
}

// Review validates the draft and moves it to the review step with its price
// fixed. On a ValidationError the draft is left untouched.
func (fc *FormController) Review(ctx context.Context, s models.Session, draftID string) (*models.BookingDraft, error) {
	var out *models.BookingDraft
	err := fc.edit(ctx, s, draftID, func(d *models.BookingDraft) error {
		var err error
		out, err = fc.review(ctx, d)
		return err
	})
	return out, err
}

func (fc *FormController) review(ctx context.Context, d *models.BookingDraft) (*models.BookingDraft, error) {
	if d.Step != models.StepDetail {
		return nil, ErrInvalidStep
	}
	pandit, err := fc.pandits.GetPandit(ctx, d.PanditID)
	if err != nil {
		return nil, err
	}
	if verr := validateDetail(d, pandit, fc.Now()); verr != nil {
		return nil, verr
	}

	offering, _ := OfferingFor(pandit, strings.TrimSpace(d.RitualID), d.Currency)
	d.RitualID = strings.TrimSpace(d.RitualID)
	d.TimeSlot = strings.TrimSpace(d.TimeSlot)
	d.Address = strings.TrimSpace(d.Address)
	d.Amount = offering.Price
	d.Step = models.StepReview
	d.LastError = ""
	d.UpdatedAt = fc.Now()
	if err := fc.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Back returns a reviewed draft to detail entry with every field kept.
func (fc *FormController) Back(ctx context.Context, s models.Session, draftID string) (*models.BookingDraft, error) {
	var out *models.BookingDraft
	err := fc.edit(ctx, s, draftID, func(d *models.BookingDraft) error {
		if d.Step != models.StepReview {
			return ErrInvalidStep
		}
		if d.Paid() {
			return ErrPaymentCaptured
		}
		d.Step = models.StepDetail
		d.UpdatedAt = fc.Now()
		if err := fc.save(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

// Confirm charges the payer and stores the booking. Only one Confirm per draft
// runs at a time; a concurrent Confirm or edit gets ErrSubmissionInFlight. The charge and
// persistence continue if the caller goes away, and their result is saved on
// the draft.
func (fc *FormController) Confirm(ctx context.Context, s models.Session, draftID string, pd models.PaymentDetails) (*Confirmation, error) {
	d, err := fc.load(ctx, s, draftID)
	if err != nil {
		return nil, err
	}
	if d.Step != models.StepReview {
		return nil, ErrInvalidStep
	}

	token, ok, err := fc.drafts.AcquireSubmitLock(ctx, draftID, fc.cfg.SubmitLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock draft for submission: %w", err)
	}
	if !ok {
		return nil, ErrSubmissionInFlight
	}

	work, cancel := context.WithTimeout(context.WithoutCancel(ctx), fc.cfg.ConfirmTimeout)
	defer cancel()
	defer func() {
		if err := fc.drafts.ReleaseSubmitLock(work, draftID, token); err != nil {
			fc.logger.Warn("Failed to release submit lock", zap.String("draftID", draftID), zap.Error(err))
		}
	}()

	// Re-read under the lock; a previous Confirm may have finished meanwhile.
	if d, err = fc.load(work, s, draftID); err != nil {
		return nil, err
	}
	if d.Step != models.StepReview {
		return nil, ErrInvalidStep
	}

	if !d.Paid() {
		if err := fc.charge(work, d, pd); err != nil {
			return nil, err
		}
	} else {
		fc.logger.Info("Payment already captured, retrying persistence only",
			zap.String("draftID", d.ID), zap.String("paymentID", d.Payment.PaymentID))
	}

	rec, err := fc.submitter.Submit(work, d, d.Payment, d.PanditID, d.UserID, d.Amount)
	if err != nil {
		d.LastError = err.Error()
		d.UpdatedAt = fc.Now()
		fc.saveQuietly(work, d)
		return nil, err
	}

	d.Step = models.StepCompleted
	d.BookingID = rec.ID
	d.LastError = ""
	d.UpdatedAt = fc.Now()
	fc.saveQuietly(work, d)
	return &Confirmation{Draft: d, Booking: rec}, nil
}

// charge takes the payment for d. On success the outcome is saved on the
// draft before returning, so a later retry never charges again.
func (fc *FormController) charge(ctx context.Context, d *models.BookingDraft, pd models.PaymentDetails) error {
	pandit, err := fc.pandits.GetPandit(ctx, d.PanditID)
	if err != nil {
		return err
	}
	if verr := validateDetail(d, pandit, fc.Now()); verr != nil {
		// Selection no longer holds (the date passed, the pandit changed
		// hours). Send the user back to fix it.
		d.Step = models.StepDetail
		d.LastError = verr.Error()
		d.UpdatedAt = fc.Now()
		fc.saveQuietly(ctx, d)
		return verr
	}

	req := models.ChargeRequest{
		Amount:         d.Amount,
		Currency:       d.Currency,
		PayerName:      d.PayerName,
		Description:    chargeDescription(d, pandit),
		IdempotencyKey: d.ID,
		PaymentMethod:  pd.PaymentMethod,
		Metadata: map[string]string{
			"draftId":  d.ID,
			"panditId": d.PanditID,
			"userId":   d.UserID,
		},
	}

	outcome, err := fc.payments.Charge(ctx, req)
	if err != nil {
		outcome = &models.PaymentOutcome{Status: models.OutcomeFailed, Reason: err.Error()}
	}
	if outcome == nil {
		outcome = &models.PaymentOutcome{Status: models.OutcomeFailed, Reason: "no outcome from gateway"}
	}
	if !outcome.Succeeded() {
		perr := &PaymentError{Outcome: *outcome}
		fc.logger.Info("Payment not completed",
			zap.String("draftID", d.ID),
			zap.String("status", string(outcome.Status)),
			zap.String("reason", outcome.Reason))
		d.LastError = perr.Error()
		d.UpdatedAt = fc.Now()
		fc.saveQuietly(ctx, d)
		return perr
	}

	d.Payment = outcome
	d.LastError = ""
	d.UpdatedAt = fc.Now()
	if err := fc.save(ctx, d); err != nil {
		fc.logger.Warn("Failed to record captured payment on draft, retrying",
			zap.String("draftID", d.ID), zap.String("paymentID", outcome.PaymentID), zap.Error(err))
		if err := fc.save(ctx, d); err != nil {
			// Money moved; carry on to persistence with the outcome in hand.
			// A retry re-sends the draft id as idempotency key, so the gateway
			// hands back this same payment instead of charging again.
			fc.logger.Error("Failed to record captured payment on draft",
				zap.String("draftID", d.ID), zap.String("paymentID", outcome.PaymentID), zap.Error(err))
		}
	}
	return nil
}

// Discard drops a draft. A draft holding a captured but unbooked payment is
// kept until reconciliation settles it.
func (fc *FormController) Discard(ctx context.Context, s models.Session, draftID string) error {
	return fc.edit(ctx, s, draftID, func(d *models.BookingDraft) error {
		if d.Paid() && d.Step != models.StepCompleted {
			return ErrPaymentCaptured
		}
		if err := fc.drafts.Delete(ctx, draftID); err != nil {
			return fmt.Errorf("failed to delete draft %s: %w", draftID, err)
		}
		return nil
	})
}

// edit runs fn on a fresh copy of the draft while holding its submit lock, so
// no change lands while a Confirm is charging or storing the booking.
func (fc *FormController) edit(ctx context.Context, s models.Session, draftID string, fn func(d *models.BookingDraft) error) error {
	if _, err := fc.load(ctx, s, draftID); err != nil {
		return err
	}
	token, ok, err := fc.drafts.AcquireSubmitLock(ctx, draftID, editLockTTL)
	if err != nil {
		return fmt.Errorf("failed to lock draft %s: %w", draftID, err)
	}
	if !ok {
		return ErrSubmissionInFlight
	}
	defer func() {
		if err := fc.drafts.ReleaseSubmitLock(context.WithoutCancel(ctx), draftID, token); err != nil {
			fc.logger.Warn("Failed to release draft lock", zap.String("draftID", draftID), zap.Error(err))
		}
	}()

	d, err := fc.load(ctx, s, draftID)
	if err != nil {
		return err
	}
	return fn(d)
}

func chargeDescription(d *models.BookingDraft, pandit *models.PanditProfile) string {
	name := d.RitualID
	if def, ok := GetRitual(d.RitualID); ok {
		name = def.Name
	}
	return fmt.Sprintf("%s with %s on %s, %s", name, pandit.FullName, d.Date, d.TimeSlot)
}

// load fetches a draft owned by the session. Drafts of other users look
// exactly like missing ones.
func (fc *FormController) load(ctx context.Context, s models.Session, draftID string) (*models.BookingDraft, error) {
	d, err := fc.drafts.Get(ctx, draftID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft %s: %w", draftID, err)
	}
	if d.UserID != s.UserID {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

func (fc *FormController) save(ctx context.Context, d *models.BookingDraft) error {
	if err := fc.drafts.Save(ctx, d, fc.cfg.DraftTTL); err != nil {
		return fmt.Errorf("failed to save draft %s: %w", d.ID, err)
	}
	return nil
}

func (fc *FormController) saveQuietly(ctx context.Context, d *models.BookingDraft) {
	if err := fc.save(ctx, d); err != nil {
		fc.logger.Error("Failed to save draft", zap.String("draftID", d.ID), zap.Error(err))
	}
}
