// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"panditseva/config"

	"github.com/go-redis/redis/v8"
)

var (
	// DraftCacheClient holds booking drafts and their submit locks.
	DraftCacheClient *redis.Client
	// CacheClient is the generic cache client (directory listings).
	CacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitRedis initializes every Redis client used by the service.
func InitRedis() {
	GetDraftCacheClient()
	GetCacheClient()
}

// GetDraftCacheClient returns the Redis client for booking drafts.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		DraftCacheClient = newRedisClient(config.AppConfig.RedisDraftDB, "Drafts")
	}
	return DraftCacheClient
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
	}
	return CacheClient
}
