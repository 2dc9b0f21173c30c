package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs, built once in main and passed
// to constructors explicitly. No component reads the environment on its own.
type Config struct {
	Addr       string
	AdminToken string

	// DatabaseURL selects the postgres stores; when empty the server runs on
	// in-memory stores (dev mode).
	DatabaseURL string

	Oracle OracleConfig
	Redis  RedisConfig
	Audit  AuditConfig
}

// OracleConfig configures the Gemini-backed rule oracle.
type OracleConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// RedisConfig configures the optional materialization lease backend.
type RedisConfig struct {
	URL      string
	LeaseTTL time.Duration
}

// AuditConfig configures the optional Kafka audit sink.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("RENTCHECK_ADDR", ":8080"),
		AdminToken:  os.Getenv("RENTCHECK_ADMIN_TOKEN"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Oracle: OracleConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   envOr("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: envDuration("ORACLE_TIMEOUT", 20*time.Second),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			LeaseTTL: envDuration("MATERIALIZE_LEASE_TTL", 30*time.Second),
		},
		Audit: AuditConfig{
			Topic: envOr("AUDIT_TOPIC", "rentcheck.audit"),
		},
	}
	if brokers := os.Getenv("AUDIT_BROKERS"); brokers != "" {
		cfg.Audit.Brokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
