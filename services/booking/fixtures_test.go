package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "panditseva/database/repository/booking"
	draftRepo "panditseva/database/repository/draft"
	panditRepo "panditseva/database/repository/pandit"
	"panditseva/models"

	"go.uber.org/zap"
)

// 2030-01-01 is a Tuesday.
var fixedNow = time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

const (
	nextMonday  = "2030-01-07"
	nextTuesday = "2030-01-08"
	morningSlot = "9:00 AM - 12:00 PM"
)

func rajesh() models.PanditProfile {
	rating := 4.8
	return models.PanditProfile{
		ID:             "pandit-1",
		FullName:       "Pandit Rajesh Sharma",
		City:           "Delhi",
		State:          "Delhi",
		Languages:      []string{"Hindi", "Sanskrit"},
		RitualsOffered: []string{"griha-pravesh", "ganesh-puja"},
		Availability: models.WeeklyAvailability{
			"monday":    {morningSlot},
			"tuesday":   {},
			"wednesday": {morningSlot, "4:00 PM - 7:00 PM"},
		},
		RitualPrices: map[string]float64{"griha-pravesh": 5500},
		Rating:       &rating,
	}
}

var userSession = models.Session{UserID: "user-1", Role: models.RoleUser, Name: "Rahul Sharma"}

type fakeGateway struct {
	mu       sync.Mutex
	calls    int
	requests []models.ChargeRequest
	chargeFn func(ctx context.Context, req models.ChargeRequest) (*models.PaymentOutcome, error)
}

func (g *fakeGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.PaymentOutcome, error) {
	g.mu.Lock()
	g.calls++
	g.requests = append(g.requests, req)
	fn := g.chargeFn
	g.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return &models.PaymentOutcome{Status: models.OutcomeSucceeded, PaymentID: "pay_test", Gateway: "fake"}, nil
}

func (g *fakeGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fakeReconciler struct {
	mu      sync.Mutex
	records []models.BookingRecord
	err     error
}

func (r *fakeReconciler) ScheduleReconcile(_ context.Context, rec *models.BookingRecord, _ error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, *rec)
	return nil
}

// flakyDrafts fails the next failSaves writes.
type flakyDrafts struct {
	*draftRepo.MemoryDraftStore
	mu        sync.Mutex
	failSaves int
	failed    int
}

func (f *flakyDrafts) Save(ctx context.Context, d *models.BookingDraft, ttl time.Duration) error {
	f.mu.Lock()
	if f.failSaves > 0 {
		f.failSaves--
		f.failed++
		f.mu.Unlock()
		return errors.New("redis: connection reset")
	}
	f.mu.Unlock()
	return f.MemoryDraftStore.Save(ctx, d, ttl)
}

type harness struct {
	fc         *FormController
	gateway    *fakeGateway
	bookings   *bookingRepo.MemoryBookingRepo
	drafts     *draftRepo.MemoryDraftStore
	reconciler *fakeReconciler
}

func newHarness(t *testing.T, pandits ...models.PanditProfile) *harness {
	t.Helper()
	if len(pandits) == 0 {
		pandits = []models.PanditProfile{rajesh()}
	}
	logger := zap.NewNop()
	dir := NewDirectory(panditRepo.NewMemoryPanditRepo(pandits...), "INR", logger)
	h := &harness{
		gateway:    &fakeGateway{},
		bookings:   bookingRepo.NewMemoryBookingRepo(),
		drafts:     draftRepo.NewMemoryDraftStore(),
		reconciler: &fakeReconciler{},
	}
	sub := NewSubmitter(h.bookings, h.reconciler, nil, logger)
	sub.now = func() time.Time { return fixedNow }
	h.fc = NewFormController(dir, h.drafts, h.gateway, sub, FormConfig{Currency: "INR"}, logger)
	h.fc.Now = func() time.Time { return fixedNow }
	return h
}

func strPtr(s string) *string { return &s }

// fill starts a draft and fills every detail field.
func (h *harness) fill(t *testing.T, date, slot, address string) *models.BookingDraft {
	t.Helper()
	ctx := context.Background()
	d, err := h.fc.Start(ctx, userSession, "pandit-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	d, err = h.fc.Update(ctx, userSession, d.ID, models.DraftChanges{
		RitualID: strPtr("griha-pravesh"),
		Date:     strPtr(date),
		Address:  strPtr(address),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if slot != "" {
		d, err = h.fc.Update(ctx, userSession, d.ID, models.DraftChanges{TimeSlot: strPtr(slot)})
		if err != nil {
			t.Fatalf("update slot: %v", err)
		}
	}
	return d
}
