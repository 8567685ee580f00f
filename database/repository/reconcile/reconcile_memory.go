package reconcileRepo

import (
	"context"
	"sort"
	"sync"

	"panditseva/database/repository"
	"panditseva/models"
)

type MemoryReviewQueue struct {
	mu    sync.Mutex
	cases map[string]models.ReconciliationCase
}

func NewMemoryReviewQueue() *MemoryReviewQueue {
	return &MemoryReviewQueue{cases: make(map[string]models.ReconciliationCase)}
}

func (q *MemoryReviewQueue) Add(_ context.Context, c *models.ReconciliationCase) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	next := *c
	if existing, ok := q.cases[c.DraftID]; ok {
		next.CreatedAt = existing.CreatedAt
	}
	next.Resolved = false
	q.cases[c.DraftID] = next
	return nil
}

func (q *MemoryReviewQueue) ListOpen(_ context.Context) ([]models.ReconciliationCase, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := []models.ReconciliationCase{}
	for _, c := range q.cases {
		if !c.Resolved {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (q *MemoryReviewQueue) Resolve(_ context.Context, draftID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	c, ok := q.cases[draftID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Resolved = true
	q.cases[draftID] = c
	return nil
}
