package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTokenTTL is 100 hours.
const DefaultTokenTTL = 360000 * time.Second

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	GitHub    GitHubConfig
	Cleanup   CleanupConfig
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	// StoreDriver selects "postgres" or "memory".
	StoreDriver string
}

type DatabaseConfig struct {
	PrimaryDSN      string
	ReplicaDSNs     []string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	StreamName string
}

type AuthConfig struct {
	JWTSecret            string
	TokenTTL             time.Duration
	Header               string
	BcryptCost           int
	BcryptMaxConcurrency int
	RegisterLockTTL      time.Duration
}

type CacheConfig struct {
	L1Capacity int
	L2TTL      time.Duration
	GitHubTTL  time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type GitHubConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type CleanupConfig struct {
	ConsumerGroup string
	ConsumerName  string
	SweepInterval time.Duration
	BlockTime     time.Duration
	LockTTL       time.Duration
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not (K8s uses ConfigMaps/Secrets)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),
			ReadTimeout:    getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
		},
		Database: DatabaseConfig{
			PrimaryDSN:      getEnv("DB_PRIMARY_DSN", ""),
			ReplicaDSNs:     getEnvAsList("DB_REPLICA_DSNS"),
			MaxConns:        int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:        int32(getEnvAsInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Enabled:    getEnvAsBool("REDIS_ENABLED", true),
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			StreamName: getEnv("REDIS_STREAM_NAME", "account:events"),
		},
		Auth: AuthConfig{
			JWTSecret:            getEnv("JWT_SECRET", ""),
			TokenTTL:             getEnvAsDuration("JWT_TTL", DefaultTokenTTL),
			Header:               getEnv("AUTH_HEADER", "x-auth-token"),
			BcryptCost:           getEnvAsInt("BCRYPT_COST", 10),
			BcryptMaxConcurrency: getEnvAsInt("BCRYPT_MAX_CONCURRENCY", runtime.GOMAXPROCS(0)),
			RegisterLockTTL:      getEnvAsDuration("REGISTER_LOCK_TTL", 5*time.Second),
		},
		Cache: CacheConfig{
			L1Capacity: getEnvAsInt("CACHE_L1_CAPACITY", 1000),
			L2TTL:      getEnvAsDuration("CACHE_L2_TTL", 10*time.Minute),
			GitHubTTL:  getEnvAsDuration("CACHE_GITHUB_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 20),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		GitHub: GitHubConfig{
			BaseURL:      getEnv("GITHUB_API_URL", "https://api.github.com"),
			ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
			ClientSecret: getEnv("GITHUB_SECRET", ""),
			Timeout:      getEnvAsDuration("GITHUB_TIMEOUT", 10*time.Second),
		},
		Cleanup: CleanupConfig{
			ConsumerGroup: getEnv("CLEANUP_CONSUMER_GROUP", "cleanup-group"),
			ConsumerName:  getEnv("CLEANUP_CONSUMER_NAME", "worker-1"),
			SweepInterval: getEnvAsDuration("CLEANUP_SWEEP_INTERVAL", time.Hour),
			BlockTime:     getEnvAsDuration("CLEANUP_BLOCK_TIME", 5*time.Second),
			LockTTL:       getEnvAsDuration("CLEANUP_LOCK_TTL", 10*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// bare integers are seconds, as in jsonwebtoken's expiresIn
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
