package bookingRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"panditseva/database/repository"
	"panditseva/models"
)

// MemoryBookingRepo is an in-process BookingRepository.
type MemoryBookingRepo struct {
	mu      sync.Mutex
	byID    map[string]models.BookingRecord
	byDraft map[string]string

	// FailNext, when set, is returned by the next CreateIdempotent calls until
	// it reaches zero. Lets tests simulate a datastore outage.
	FailNext  int
	FailError error
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{
		byID:    make(map[string]models.BookingRecord),
		byDraft: make(map[string]string),
	}
}

func (r *MemoryBookingRepo) CreateIdempotent(_ context.Context, rec *models.BookingRecord) (*models.BookingRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailNext > 0 {
		r.FailNext--
		return nil, false, r.FailError
	}
	if id, ok := r.byDraft[rec.DraftID]; ok {
		existing := r.byID[id]
		return &existing, false, nil
	}
	if _, ok := r.byID[rec.ID]; ok {
		return nil, false, repository.ErrConflict
	}
	r.byID[rec.ID] = *rec
	r.byDraft[rec.DraftID] = rec.ID
	stored := *rec
	return &stored, true, nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.BookingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *MemoryBookingRepo) GetByDraftID(_ context.Context, draftID string) (*models.BookingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byDraft[draftID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec := r.byID[id]
	return &rec, nil
}

func (r *MemoryBookingRepo) ListByUser(_ context.Context, userID string) ([]models.BookingRecord, error) {
	out := r.collect(func(rec models.BookingRecord) bool { return rec.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryBookingRepo) ListByPandit(_ context.Context, panditID string, status models.BookingStatus) ([]models.BookingRecord, error) {
	out := r.collect(func(rec models.BookingRecord) bool {
		return rec.PanditID == panditID && (status == "" || rec.Status == status)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledDate != out[j].ScheduledDate {
			return out[i].ScheduledDate < out[j].ScheduledDate
		}
		return out[i].ScheduledTime < out[j].ScheduledTime
	})
	return out, nil
}

func (r *MemoryBookingRepo) collect(keep func(models.BookingRecord) bool) []models.BookingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.BookingRecord{}
	for _, rec := range r.byID {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (r *MemoryBookingRepo) UpdateStatus(_ context.Context, id string, from []models.BookingStatus, to models.BookingStatus) (*models.BookingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	allowed := false
	for _, s := range from {
		if rec.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, repository.ErrConflict
	}
	rec.Status = to
	rec.UpdatedAt = time.Now().UTC()
	r.byID[id] = rec
	return &rec, nil
}

// Count returns how many records are stored.
func (r *MemoryBookingRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
