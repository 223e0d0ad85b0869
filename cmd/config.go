package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"production/internal/adapters/out/postgres"
	"production/internal/jobs"

	"github.com/labstack/gommon/bytes"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	RedisAddr    string
	RedisChannel string

	EvidenceGatewayURL string
	EvidenceTimeout    time.Duration
	EvidenceMaxBytes   string
	IdentityTimeout    time.Duration
	CodeTimeout        time.Duration

	OutboxBatchSize int
	OutboxSchedule  string

	ServiceName string
	Environment string
	LogLevel    string
}

const (
	defaultHTTPPort        = "8080"
	defaultOrderTopic      = "production.order-changed"
	defaultRedisChannel    = "production.orders"
	defaultEvidenceTimeout = 10 * time.Second
	defaultEvidenceMax     = "10M"
	defaultIdentityTimeout = 3 * time.Second
	defaultCodeTimeout     = 2 * time.Second
	defaultOutboxBatchSize = 100
	defaultServiceName     = "production"
)

// LoadConfig reads Config through getenv, applying defaults for optional
// keys. Missing required keys are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	var problems []error
	duration := func(key string, fallback time.Duration) time.Duration {
		raw := get(key, "")
		if raw == "" {
			return fallback
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Errorf("%s: %q is not a positive duration", key, raw))
			return fallback
		}
		return d
	}

	cfg := Config{
		HTTPPort:               get("HTTP_PORT", defaultHTTPPort),
		DBHost:                 get("DB_HOST", ""),
		DBPort:                 get("DB_PORT", "5432"),
		DBUser:                 get("DB_USER", ""),
		DBPassword:             get("DB_PASSWORD", ""),
		DBName:                 get("DB_NAME", ""),
		DBSslMode:              get("DB_SSLMODE", "disable"),
		KafkaHost:              get("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: get("KAFKA_ORDER_CHANGED_TOPIC", defaultOrderTopic),
		RedisAddr:              get("REDIS_ADDR", ""),
		RedisChannel:           get("REDIS_CHANNEL", defaultRedisChannel),
		EvidenceGatewayURL:     get("EVIDENCE_GATEWAY_URL", ""),
		EvidenceTimeout:        duration("EVIDENCE_TIMEOUT", defaultEvidenceTimeout),
		EvidenceMaxBytes:       get("EVIDENCE_MAX_BYTES", defaultEvidenceMax),
		IdentityTimeout:        duration("IDENTITY_TIMEOUT", defaultIdentityTimeout),
		CodeTimeout:            duration("CODE_TIMEOUT", defaultCodeTimeout),
		OutboxBatchSize:        defaultOutboxBatchSize,
		OutboxSchedule:         get("OUTBOX_SCHEDULE", jobs.DefaultOutboxSchedule),
		ServiceName:            get("SERVICE_NAME", defaultServiceName),
		Environment:            get("ENVIRONMENT", "development"),
		LogLevel:               get("LOG_LEVEL", "info"),
	}

	// echo's body limit panics on a size it cannot parse.
	if n, err := bytes.Parse(cfg.EvidenceMaxBytes); err != nil || n <= 0 {
		problems = append(problems, fmt.Errorf("EVIDENCE_MAX_BYTES: %q is not a positive size", cfg.EvidenceMaxBytes))
	}

	if raw := get("OUTBOX_BATCH_SIZE", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("OUTBOX_BATCH_SIZE: %q is not a number", raw))
		} else {
			cfg.OutboxBatchSize = n
		}
	}

	for key, v := range map[string]string{
		"DB_HOST":              cfg.DBHost,
		"DB_USER":              cfg.DBUser,
		"DB_NAME":              cfg.DBName,
		"KAFKA_HOST":           cfg.KafkaHost,
		"EVIDENCE_GATEWAY_URL": cfg.EvidenceGatewayURL,
	} {
		if v == "" {
			problems = append(problems, fmt.Errorf("%s is required", key))
		}
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
	}
	return cfg, nil
}

func (c Config) Database() postgres.Settings {
	return postgres.Settings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
