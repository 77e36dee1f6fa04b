package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Security  SecurityConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
	RateLimit RateLimitConfig
	// TimeZone names the IANA zone used to compute "today" for menus and votes.
	TimeZone string `env:"TIME_ZONE,default=UTC"`
}

type ServerConfig struct {
	Port            string        `env:"PORT,default=8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

type LoggingConfig struct {
	Directory string `env:"LOG_DIRECTORY,default=./logs"`
	Level     string `env:"LOG_LEVEL,default=info"`
	Format    string `env:"LOG_FORMAT,default=text"`
}

type DatabaseConfig struct {
	// Driver is one of pgx, pq or sqlite.
	Driver          string        `env:"DATABASE_DRIVER,default=sqlite"`
	URL             string        `env:"DATABASE_URL,default=lunchvote.db"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS,default=10"`
	ConnectAttempts int           `env:"DATABASE_CONNECT_ATTEMPTS,default=10"`
	ConnectBackoff  time.Duration `env:"DATABASE_CONNECT_BACKOFF,default=5s"`
}

type SecurityConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,default=5m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL,default=24h"`
	BcryptCost int           `env:"BCRYPT_COST,default=10"`
}

type KafkaConfig struct {
	// RawBrokers is a comma separated list; KAFKA_BROKER is accepted for single broker setups.
	RawBrokers  string `env:"KAFKA_BROKERS"`
	Broker      string `env:"KAFKA_BROKER"`
	GroupID     string `env:"KAFKA_GROUP_ID,default=lunchvote-notifications"`
	TopicPrefix string `env:"KAFKA_TOPIC_PREFIX,default=lunchvote"`

	Brokers []string
}

type WebsocketConfig struct {
	SendBuffer int `env:"WS_SEND_BUFFER,default=16"`
}

type RateLimitConfig struct {
	// RequestsPerSecond applies per client IP on login, refresh and register. Zero disables it.
	RequestsPerSecond float64 `env:"AUTH_RATE_LIMIT_RPS,default=5"`
	Burst             int     `env:"AUTH_RATE_LIMIT_BURST,default=10"`
}

var supportedDrivers = map[string]struct{}{"pgx": {}, "pq": {}, "sqlite": {}}

// Load decodes the process environment. Call godotenv before Load to honour a .env file.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}

	cfg.Kafka.Brokers = splitList(cfg.Kafka.RawBrokers)
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = splitList(cfg.Kafka.Broker)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var problems []string
	if strings.TrimSpace(c.Security.JWTSecret) == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if _, ok := supportedDrivers[c.Database.Driver]; !ok {
		problems = append(problems, fmt.Sprintf("DATABASE_DRIVER %q is not one of pgx, pq, sqlite", c.Database.Driver))
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("TIME_ZONE %q: %v", c.TimeZone, err))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the configured business time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// KafkaTopic prefixes an event topic with the configured namespace.
func (c KafkaConfig) KafkaTopic(eventTopic string) string {
	if c.TopicPrefix == "" {
		return eventTopic
	}
	return c.TopicPrefix + "." + eventTopic
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
