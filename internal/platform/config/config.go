// Package config builds the typed server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	strs "shoplist/pkg/platform/strings"
)

// Config is the full server configuration.
type Config struct {
	Server    Server
	Logging   Logging
	Database  Database
	Redis     RedisConfig
	Kafka     KafkaConfig
	Auth      Auth
	RateLimit RateLimit
	Audit     Audit
	Users     Users
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	HTTPLogEnabled  bool
}

type Logging struct {
	Level  string
	Format string
}

// Database selects the list store. An empty URL keeps everything in memory.
type Database struct {
	URL          string
	MaxConns     int32
	AutoMigrate  bool
	QueryTimeout time.Duration
}

// RedisConfig configures the rate limiter backend. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit sink. No brokers means audit events go to the log.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
	ClientID          string
}

// Auth configures credential handling. A JWT secret enables bearer tokens.
type Auth struct {
	JWTSecret  string
	JWTIssuer  string
	RequireJWT bool
}

type RateLimit struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

type Audit struct {
	BufferSize int
}

// Users seeds the directory at startup. Entries are "<uuid>:<name>".
type Users struct {
	Seed []string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	e := &envReader{}
	cfg := Config{
		Server: Server{
			Addr:            e.str("SHOPLIST_ADDR", ":8080"),
			ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  e.duration("REQUEST_TIMEOUT", 30*time.Second),
			HTTPLogEnabled:  e.boolean("HTTP_LOG_ENABLED", true),
		},
		Logging: Logging{
			Level:  e.str("LOG_LEVEL", "info"),
			Format: e.str("LOG_FORMAT", "json"),
		},
		Database: Database{
			URL:          e.str("DATABASE_URL", ""),
			MaxConns:     int32(e.integer("DATABASE_MAX_CONNS", 10)),
			AutoMigrate:  e.boolean("DATABASE_AUTO_MIGRATE", true),
			QueryTimeout: e.duration("DATABASE_QUERY_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			PoolSize:     e.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:           e.list("KAFKA_BROKERS"),
			Topic:             e.str("KAFKA_AUDIT_TOPIC", "shoplist.audit"),
			Partitions:        int32(e.integer("KAFKA_AUDIT_PARTITIONS", 3)),
			ReplicationFactor: int16(e.integer("KAFKA_AUDIT_REPLICATION", 1)),
			ClientID:          e.str("KAFKA_CLIENT_ID", "shoplist"),
		},
		Auth: Auth{
			JWTSecret:  e.str("AUTH_JWT_SECRET", ""),
			JWTIssuer:  e.str("AUTH_JWT_ISSUER", "shoplist"),
			RequireJWT: e.boolean("AUTH_REQUIRE_JWT", false),
		},
		RateLimit: RateLimit{
			Enabled:  e.boolean("RATE_LIMIT_ENABLED", true),
			Requests: e.integer("RATE_LIMIT_REQUESTS", 300),
			Window:   e.duration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Audit: Audit{
			BufferSize: e.integer("AUDIT_BUFFER_SIZE", 1024),
		},
		Users: Users{
			Seed: e.list("USERS_SEED"),
		},
	}
	if e.err != nil {
		return Config{}, e.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Auth.RequireJWT && c.Auth.JWTSecret == "":
		return fmt.Errorf("AUTH_REQUIRE_JWT needs AUTH_JWT_SECRET")
	case c.RateLimit.Enabled && (c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0):
		return fmt.Errorf("rate limit needs positive RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW")
	case c.Audit.BufferSize < 1:
		return fmt.Errorf("AUDIT_BUFFER_SIZE must be positive")
	}
	return nil
}

// envReader keeps the first parse error so FromEnv can report it once.
type envReader struct {
	err error
}

func (e *envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *envReader) integer(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return n
}

func (e *envReader) boolean(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return b
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return d
}

func (e *envReader) list(key string) []string {
	return strs.SplitList(os.Getenv(key))
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
