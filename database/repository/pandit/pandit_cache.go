package panditRepo

import (
	"context"
	"encoding/json"
	"time"

	"panditseva/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const listKeyPrefix = "pandits:list:"

// CachedPanditRepo serves directory listings from Redis, falling through to
// the wrapped repository on a miss. Cache errors never fail a request.
type CachedPanditRepo struct {
	inner  PanditRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedPanditRepo(inner PanditRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedPanditRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedPanditRepo{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *CachedPanditRepo) GetByID(ctx context.Context, id string) (*models.PanditProfile, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *CachedPanditRepo) List(ctx context.Context, filter models.PanditFilter) ([]models.PanditProfile, error) {
	key := listKeyPrefix + filter.Key()

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var cached []models.PanditProfile
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		r.logger.Warn("Discarding corrupt directory cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		r.logger.Warn("Directory cache read failed", zap.String("key", key), zap.Error(err))
	}

	pandits, err := r.inner.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(pandits); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("Directory cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return pandits, nil
}

// Upsert writes through and drops every cached listing.
func (r *CachedPanditRepo) Upsert(ctx context.Context, p *models.PanditProfile) error {
	if err := r.inner.Upsert(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedPanditRepo) invalidate(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, listKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Warn("Directory cache scan failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			r.logger.Warn("Directory cache invalidation failed", zap.Error(err))
		}
	}
}
