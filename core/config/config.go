package config

import (
	"time"

	"rehearsal-room-api/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Server    ServerConfig
		Admin     AdminConfig
		Ledger    LedgerConfig
		Redis     RedisConfig
		RateLimit RateLimitConfig
		LogLevel  string
	}

	ServerConfig struct {
		Host string
		Port int
	}

	AdminConfig struct {
		// PIN is the administrator override secret. Compared as plaintext,
		// never persisted and never hashed into the ledger. Empty means no
		// administrator override is available.
		PIN string
	}

	LedgerConfig struct {
		File        string
		LockTimeout time.Duration
		S3          S3Config
	}

	// S3Config points the ledger at an S3 (or S3-compatible) object.
	// When fully populated the remote backend replaces the local file.
	S3Config struct {
		Bucket    string
		Key       string
		Region    string
		Endpoint  string
		AccessKey string
		SecretKey string
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	RateLimitConfig struct {
		Enabled        bool
		Capacity       int
		RefillTokens   int
		RefillInterval time.Duration
		TTL            time.Duration
	}
)

// Configured reports whether every setting the remote backend needs is present.
func (c S3Config) Configured() bool {
	return c.Bucket != "" && c.Key != "" && c.AccessKey != "" && c.SecretKey != ""
}

func (c RedisConfig) Configured() bool {
	return c.Addr != ""
}

var instance *Config

// Init loads configuration from the environment (a .env file is applied
// first when present) and caches it process-wide.
func Init() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", constants.DefaultServerHost)
	v.SetDefault("SERVER_PORT", constants.DefaultServerPort)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LEDGER_FILE", constants.DefaultLedgerFile)
	v.SetDefault("LEDGER_LOCK_TIMEOUT", constants.DefaultLockTimeout)
	v.SetDefault("LEDGER_S3_REGION", "us-east-1")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_CAPACITY", 30)
	v.SetDefault("RATE_LIMIT_REFILL_TOKENS", 1)
	v.SetDefault("RATE_LIMIT_REFILL_INTERVAL", time.Second)
	v.SetDefault("RATE_LIMIT_TTL", 10*time.Minute)

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Admin: AdminConfig{
			PIN: v.GetString("ADMIN_PIN"),
		},
		Ledger: LedgerConfig{
			File:        v.GetString("LEDGER_FILE"),
			LockTimeout: v.GetDuration("LEDGER_LOCK_TIMEOUT"),
			S3: S3Config{
				Bucket:    v.GetString("LEDGER_S3_BUCKET"),
				Key:       v.GetString("LEDGER_S3_KEY"),
				Region:    v.GetString("LEDGER_S3_REGION"),
				Endpoint:  v.GetString("LEDGER_S3_ENDPOINT"),
				AccessKey: v.GetString("LEDGER_S3_ACCESS_KEY"),
				SecretKey: v.GetString("LEDGER_S3_SECRET_KEY"),
			},
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:        v.GetBool("RATE_LIMIT_ENABLED"),
			Capacity:       v.GetInt("RATE_LIMIT_CAPACITY"),
			RefillTokens:   v.GetInt("RATE_LIMIT_REFILL_TOKENS"),
			RefillInterval: v.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
			TTL:            v.GetDuration("RATE_LIMIT_TTL"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.Ledger.LockTimeout <= 0 {
		cfg.Ledger.LockTimeout = constants.DefaultLockTimeout
	}
	if cfg.RateLimit.Capacity < 1 {
		cfg.RateLimit.Capacity = 1
	}
	if cfg.RateLimit.RefillTokens < 1 {
		cfg.RateLimit.RefillTokens = 1
	}
	if cfg.RateLimit.RefillInterval <= 0 {
		cfg.RateLimit.RefillInterval = time.Second
	}

	instance = cfg
	return cfg, nil
}

func Get() *Config {
	return instance
}

func GetSafe() (*Config, bool) {
	return instance, instance != nil
}
