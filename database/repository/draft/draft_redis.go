package draftRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"panditseva/database/repository"
	"panditseva/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	draftKeyPrefix = "draft:"
	lockKeyPrefix  = "draft:lock:"
)

// releaseScript deletes the lock only when it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisDraftStore keeps drafts as JSON blobs with a TTL.
type RedisDraftStore struct {
	client *redis.Client
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{client: client}
}

func (s *RedisDraftStore) Get(ctx context.Context, id string) (*models.BookingDraft, error) {
	data, err := s.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft %s: %w", id, err)
	}
	var d models.BookingDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse draft %s: %w", id, err)
	}
	return &d, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, d *models.BookingDraft, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKeyPrefix+d.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store draft %s: %w", d.ID, err)
	}
	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, draftKeyPrefix+id).Err()
}

func (s *RedisDraftStore) AcquireSubmitLock(ctx context.Context, id string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, lockKeyPrefix+id, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire submit lock for %s: %w", id, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisDraftStore) ReleaseSubmitLock(ctx context.Context, id, token string) error {
	return releaseScript.Run(ctx, s.client, []string{lockKeyPrefix + id}, token).Err()
}
