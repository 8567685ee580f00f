package draftRepo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"panditseva/database/repository"
	"panditseva/models"

	"github.com/google/uuid"
)

type entry struct {
	data    []byte
	expires time.Time
}

type lock struct {
	token   string
	expires time.Time
}

// MemoryDraftStore is an in-process DraftStore. Drafts are stored encoded so
// callers never share a pointer with the store.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]entry
	locks  map[string]lock
	Now    func() time.Time
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		drafts: make(map[string]entry),
		locks:  make(map[string]lock),
		Now:    time.Now,
	}
}

func (s *MemoryDraftStore) Get(_ context.Context, id string) (*models.BookingDraft, error) {
	s.mu.Lock()
	e, ok := s.drafts[id]
	if ok && !s.Now().Before(e.expires) {
		delete(s.drafts, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	var d models.BookingDraft
	if err := json.Unmarshal(e.data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MemoryDraftStore) Save(_ context.Context, d *models.BookingDraft, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = entry{data: data, expires: s.Now().Add(ttl)}
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

func (s *MemoryDraftStore) AcquireSubmitLock(_ context.Context, id string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	if l, held := s.locks[id]; held && now.Before(l.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	s.locks[id] = lock{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (s *MemoryDraftStore) ReleaseSubmitLock(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, held := s.locks[id]; held && l.token == token {
		delete(s.locks, id)
	}
	return nil
}
