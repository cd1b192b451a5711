package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	// BackendURL and PaymentBackendURL are configured separately because the
	// deployed frontend talks to two hosts. They are not reconciled here.
	BackendURL        string
	PaymentBackendURL string
	BackendTimeout    time.Duration

	RoleCacheTTL time.Duration
	RedisAddr    string

	StripeSecretKey string

	StorageBucket string
	MaxUploadSize int64

	RateLimitPerMinute int
}

// Load reads configuration from the environment. envFiles are loaded first
// (missing files are ignored); a plain .env is tried when none are given.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		godotenv.Load()
	} else {
		godotenv.Load(envFiles...)
	}

	backendURL := strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:3000"), "/")

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "./firebase-service-account.json"),

		BackendURL:        backendURL,
		PaymentBackendURL: strings.TrimRight(getEnv("PAYMENT_BACKEND_URL", backendURL), "/"),
		BackendTimeout:    getEnvAsDuration("BACKEND_TIMEOUT", 0),

		RoleCacheTTL: getEnvAsDuration("ROLE_CACHE_TTL", 5*time.Minute),
		RedisAddr:    getEnv("REDIS_ADDR", ""),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),

		StorageBucket: getEnv("STORAGE_BUCKET", ""),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 5*1024*1024),

		RateLimitPerMinute: int(getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 30)),
	}

	return config, nil
}

// BackendHostsDiverge reports whether payment calls go to a different host
// than the rest of the API.
func (c *Config) BackendHostsDiverge() bool {
	return c.PaymentBackendURL != c.BackendURL
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
