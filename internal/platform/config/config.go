// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	Server       Server             `envPrefix:"SERVER_"`
	Database     DatabaseConfig     `envPrefix:"DATABASE_"`
	Redis        RedisConfig        `envPrefix:"REDIS_"`
	Kafka        KafkaConfig        `envPrefix:"KAFKA_"`
	Auth         AuthConfig         `envPrefix:"AUTH_"`
	Reference    ReferenceConfig    `envPrefix:"REFERENCE_"`
	Ingestion    IngestionConfig    `envPrefix:"INGESTION_"`
	Subscription SubscriptionConfig `envPrefix:"SUBSCRIPTION_"`
	Notify       NotifyConfig       `envPrefix:"NOTIFY_"`
	Access       AccessConfig       `envPrefix:"ACCESS_"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig configures the Postgres connection. An empty URL selects the
// in-memory stores.
type DatabaseConfig struct {
	URL             string        `env:"URL"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	EnsureSchema    bool          `env:"ENSURE_SCHEMA" envDefault:"false"`
}

// RedisConfig configures the shared reference-data cache. An empty URL
// disables it.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig configures the publication event bus. No brokers selects the
// in-process channel bus.
type KafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:","`
	Topic         string   `env:"TOPIC" envDefault:"artefact-published"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"courtpub-notifier"`
	Partitions    int32    `env:"PARTITIONS" envDefault:"3"`
	Replication   int16    `env:"REPLICATION" envDefault:"1"`
}

// AuthConfig configures viewer bearer-token verification.
type AuthConfig struct {
	JWTSigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"courtpub"`
}

// ReferenceConfig locates the reference-data seed.
type ReferenceConfig struct {
	Path            string        `env:"PATH" envDefault:"configs/reference.yaml"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5m"`
	RedisKey        string        `env:"REDIS_KEY" envDefault:"courtpub:reference:snapshot"`
}

// IngestionConfig bounds inbound submissions.
type IngestionConfig struct {
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"2097152"`
}

// SubscriptionConfig bounds per-user subscriptions.
type SubscriptionConfig struct {
	MaxPerUser int           `env:"MAX_PER_USER" envDefault:"50"`
	TxTimeout  time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`

	// UsersSeedPath lists the user records loaded into the in-memory store.
	// Postgres deployments read users from the database instead.
	UsersSeedPath string `env:"USERS_SEED_PATH"`
}

// NotifyConfig configures outbound notifications.
type NotifyConfig struct {
	Provider           string        `env:"PROVIDER" envDefault:"log"`
	RetryAttempts      int           `env:"RETRY_ATTEMPTS" envDefault:"1"`
	RetryDelay         time.Duration `env:"RETRY_DELAY" envDefault:"1s"`
	PDFSizeLimitBytes  int64         `env:"PDF_SIZE_LIMIT_BYTES" envDefault:"2097152"`
	Concurrency        int           `env:"CONCURRENCY" envDefault:"8"`
	PDFTemplateID      string        `env:"PDF_TEMPLATE_ID" envDefault:"pdf-and-summary"`
	SummaryTemplateID  string        `env:"SUMMARY_TEMPLATE_ID" envDefault:"summary-only"`
	BreakerFailures    uint32        `env:"BREAKER_FAILURES" envDefault:"5"`
	BreakerOpenTimeout time.Duration `env:"BREAKER_OPEN_TIMEOUT" envDefault:"30s"`
	NotifyAPIKey       string        `env:"API_KEY"`
	NotifyBaseURL      string        `env:"BASE_URL" envDefault:"https://api.notifications.service.gov.uk"`
	MailgunDomain      string        `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey      string        `env:"MAILGUN_API_KEY"`
	MailgunSender      string        `env:"MAILGUN_SENDER"`
	MailgunAPIBase     string        `env:"MAILGUN_API_BASE"`
	ServiceURL         string        `env:"SERVICE_URL" envDefault:"https://court-tribunal-hearings.service.gov.uk"`
}

// AccessConfig is the configurable part of the access matrix.
type AccessConfig struct {
	InternalAdminData          []string `env:"INTERNAL_ADMIN_DATA" envSeparator:"," envDefault:"PUBLIC"`
	VerifiedData               []string `env:"VERIFIED_DATA" envSeparator:"," envDefault:"PUBLIC,PRIVATE,CLASSIFIED"`
	GateClassifiedByProvenance bool     `env:"GATE_CLASSIFIED_BY_PROVENANCE" envDefault:"true"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no deployment could want.
func (c Config) Validate() error {
	var errs []error
	if c.Ingestion.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("INGESTION_MAX_BODY_BYTES must be positive"))
	}
	if c.Subscription.MaxPerUser <= 0 {
		errs = append(errs, errors.New("SUBSCRIPTION_MAX_PER_USER must be positive"))
	}
	if c.Notify.RetryAttempts < 0 {
		errs = append(errs, errors.New("NOTIFY_RETRY_ATTEMPTS must not be negative"))
	}
	if c.Notify.RetryDelay < 0 {
		errs = append(errs, errors.New("NOTIFY_RETRY_DELAY must not be negative"))
	}
	if c.Notify.PDFSizeLimitBytes <= 0 {
		errs = append(errs, errors.New("NOTIFY_PDF_SIZE_LIMIT_BYTES must be positive"))
	}
	if c.Notify.Concurrency <= 0 {
		errs = append(errs, errors.New("NOTIFY_CONCURRENCY must be positive"))
	}
	if c.IsProduction() && c.Auth.JWTSigningKey == "dev-secret-key-change-in-production" {
		errs = append(errs, errors.New("AUTH_JWT_SIGNING_KEY must be set in production"))
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
