package panditRepo

import (
	"context"
	"sort"
	"sync"

	"panditseva/database/repository"
	"panditseva/models"
)

// MemoryPanditRepo keeps the directory in process. Used for local runs and tests.
type MemoryPanditRepo struct {
	mu      sync.RWMutex
	pandits map[string]models.PanditProfile
}

func NewMemoryPanditRepo(seed ...models.PanditProfile) *MemoryPanditRepo {
	r := &MemoryPanditRepo{pandits: make(map[string]models.PanditProfile, len(seed))}
	for _, p := range seed {
		r.pandits[p.ID] = p
	}
	return r
}

func (r *MemoryPanditRepo) GetByID(_ context.Context, id string) (*models.PanditProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pandits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryPanditRepo) List(_ context.Context, filter models.PanditFilter) ([]models.PanditProfile, error) {
	r.mu.RLock()
	out := make([]models.PanditProfile, 0, len(r.pandits))
	for _, p := range r.pandits {
		if filter.Matches(&p) {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		ri, rj := ratingOf(out[i]), ratingOf(out[j])
		if ri != rj {
			return ri > rj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryPanditRepo) Upsert(_ context.Context, p *models.PanditProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pandits[p.ID] = *p
	return nil
}

func ratingOf(p models.PanditProfile) float64 {
	if p.Rating == nil {
		return -1
	}
	return *p.Rating
}
