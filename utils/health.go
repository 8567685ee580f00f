package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services. Mongo is nil
// when the service runs on in-memory storage.
type HealthStatus struct {
	Mongo     *bool           `json:"mongo,omitempty"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every checked dependency answered.
func (h HealthStatus) Healthy() bool {
	if h.Mongo != nil && !*h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

// HealthMonitor keeps the latest dependency health snapshot.
type HealthMonitor struct {
	redisClients map[string]*redis.Client
	mongoClient  *mongo.Client

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(redisClients map[string]*redis.Client, mongoClient *mongo.Client) *HealthMonitor {
	return &HealthMonitor{redisClients: redisClients, mongoClient: mongoClient}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check pings every dependency once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{Redis: make(map[string]bool, len(m.redisClients)), CheckedAt: time.Now()}
	for name, client := range m.redisClients {
		status.Redis[name] = client.Ping(ctx).Err() == nil
	}
	if m.mongoClient != nil {
		ok := m.mongoClient.Ping(ctx, nil) == nil
		status.Mongo = &ok
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start checks immediately and then every interval until ctx ends.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
