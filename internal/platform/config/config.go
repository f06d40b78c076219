package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "trackwatch/pkg/platform/strings"
)

// Config aggregates all runtime configuration so main stays lean.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Monitor  MonitorConfig
	Push     PushConfig
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr          string
	JWTSigningKey string
}

// PostgresConfig holds connection settings for the alert and directory store.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds connection settings for the live location state store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the location change feed consumer.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	Group   string
}

// MonitorConfig holds the health monitoring thresholds and sweep cadences.
// All are externally tunable; the defaults match the product contract.
type MonitorConfig struct {
	MaxStaleTime      time.Duration
	ReconcileInterval time.Duration
	RetentionInterval time.Duration
	RetentionHorizon  time.Duration
}

// PushConfig holds settings for the push notification gateway.
type PushConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// FromEnv builds the full configuration from environment variables.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Addr:          envString("TRACKWATCH_ADDR", ":8080"),
			JWTSigningKey: envString("TRACKWATCH_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		},
		Postgres: PostgresConfig{
			DSN:             envString("TRACKWATCH_POSTGRES_DSN", ""),
			MaxOpenConns:    envInt("TRACKWATCH_POSTGRES_MAX_OPEN_CONNS", 10),
			ConnMaxLifetime: envDuration("TRACKWATCH_POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          envString("TRACKWATCH_REDIS_URL", ""),
			PoolSize:     envInt("TRACKWATCH_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("TRACKWATCH_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("TRACKWATCH_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("TRACKWATCH_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("TRACKWATCH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envStrings("TRACKWATCH_KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   envString("TRACKWATCH_KAFKA_TOPIC", "location-updates"),
			Group:   envString("TRACKWATCH_KAFKA_GROUP", "trackwatch-monitor"),
		},
		Monitor: MonitorConfig{
			MaxStaleTime:      envDuration("TRACKWATCH_MAX_STALE_TIME", 15*time.Minute),
			ReconcileInterval: envDuration("TRACKWATCH_RECONCILE_INTERVAL", 15*time.Minute),
			RetentionInterval: envDuration("TRACKWATCH_RETENTION_INTERVAL", 24*time.Hour),
			RetentionHorizon:  envDuration("TRACKWATCH_RETENTION_HORIZON", 30*24*time.Hour),
		},
		Push: PushConfig{
			Endpoint: envString("TRACKWATCH_PUSH_ENDPOINT", ""),
			APIKey:   envString("TRACKWATCH_PUSH_API_KEY", ""),
			Timeout:  envDuration("TRACKWATCH_PUSH_TIMEOUT", 10*time.Second),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envStrings(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	out := pstrings.DedupeAndTrim(strings.Split(v, ","))
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
