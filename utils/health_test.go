package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatus_Healthy(t *testing.T) {
	up, down := true, false
	assert.True(t, HealthStatus{}.Healthy())
	assert.True(t, HealthStatus{Mongo: &up, Redis: map[string]bool{"drafts": true}}.Healthy())
	assert.False(t, HealthStatus{Mongo: &down}.Healthy())
	assert.False(t, HealthStatus{Redis: map[string]bool{"cache": false}}.Healthy())
}

func TestHealthMonitor_NoDependencies(t *testing.T) {
	m := NewHealthMonitor(nil, nil)
	status := m.Check(context.Background())
	assert.True(t, status.Healthy())
	assert.Nil(t, status.Mongo)
	assert.Equal(t, status, m.Status())
}
