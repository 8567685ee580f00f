package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mock", cfg.PaymentGateway)
	assert.Equal(t, "INR", cfg.PaymentCurrency)
	assert.Equal(t, 1500*time.Millisecond, cfg.MockPaymentDelay)
	assert.Equal(t, 30*time.Minute, cfg.DraftTTL)
	assert.Equal(t, 2*time.Minute, cfg.SubmitLockTTL)
	assert.Equal(t, 90*time.Second, cfg.ConfirmTimeout)
	assert.Equal(t, 8, cfg.ReconcileMaxRetry)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY", "stripe")
	t.Setenv("DRAFT_TTL", "10m")
	t.Setenv("RECONCILE_MAX_RETRY", "3")
	t.Setenv("CONFIRM_TIMEOUT", "45s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "stripe", cfg.PaymentGateway)
	assert.Equal(t, 10*time.Minute, cfg.DraftTTL)
	assert.Equal(t, 3, cfg.ReconcileMaxRetry)
	assert.Equal(t, 45*time.Second, cfg.ConfirmTimeout)
}

func TestIsProduction(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig.Env = "production"
	assert.True(t, IsProduction())
	AppConfig.Env = "development"
	assert.False(t, IsProduction())
}
