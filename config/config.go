package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	// OpsAPIKey guards the reconciliation review endpoints. Empty disables them.
	OpsAPIKey string `mapstructure:"OPS_API_KEY"`

	// Storage. STORAGE_DRIVER is "mongo" or "memory".
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Payments. PAYMENT_GATEWAY is "mock" or "stripe".
	PaymentGateway   string        `mapstructure:"PAYMENT_GATEWAY"`
	PaymentCurrency  string        `mapstructure:"PAYMENT_CURRENCY"`
	StripeKey        string        `mapstructure:"STRIPE_KEY"`
	MockPaymentDelay time.Duration `mapstructure:"MOCK_PAYMENT_DELAY"`

	// Booking workflow.
	DraftTTL          time.Duration `mapstructure:"DRAFT_TTL"`
	SubmitLockTTL     time.Duration `mapstructure:"SUBMIT_LOCK_TTL"`
	ConfirmTimeout    time.Duration `mapstructure:"CONFIRM_TIMEOUT"`
	ReconcileMaxRetry int           `mapstructure:"RECONCILE_MAX_RETRY"`
	DirectoryCacheTTL time.Duration `mapstructure:"DIRECTORY_CACHE_TTL"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("OPS_API_KEY", "")
	v.SetDefault("STORAGE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "panditseva")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DRAFT_DB", 0)
	v.SetDefault("REDIS_CACHE_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("PAYMENT_GATEWAY", "mock")
	v.SetDefault("PAYMENT_CURRENCY", "INR")
	v.SetDefault("STRIPE_KEY", "")
	v.SetDefault("MOCK_PAYMENT_DELAY", "1500ms")
	v.SetDefault("DRAFT_TTL", "30m")
	v.SetDefault("SUBMIT_LOCK_TTL", "2m")
	v.SetDefault("CONFIRM_TIMEOUT", "90s")
	v.SetDefault("RECONCILE_MAX_RETRY", 8)
	v.SetDefault("DIRECTORY_CACHE_TTL", "5m")
}

// Load reads configuration into a fresh Config using the given viper instance.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesMemoryStorage reports whether repositories should run in-process.
func UsesMemoryStorage() bool {
	return AppConfig.StorageDriver == "memory"
}
