package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/kafka"
)

// Events backends.
const (
	EventsBackendKafka  = "kafka"
	EventsBackendOutbox = "outbox"
	EventsBackendLog    = "log"
)

// Config holds all configuration for the jobsentinel service.
type Config struct {
	DB        DBConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
	Scoring   ScoringConfig
	Remote    RemoteConfig
	Extractor ExtractorConfig
	Telegram  TelegramConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	Outbox    OutboxConfig
	TLS       TLSConfig

	HTTPPort       int
	GRPCPort       int
	RateLimit      int // requests per second per client
	LogLevel       string
	LogFormat      string
	Environment    string
	EventsBackend  string
	GRPCReflection bool
}

type DBConfig struct {
	URL           string
	MigrationsDir string
	MaxConns      int32
	MinConns      int32
}

// Enabled reports whether a database is configured.
func (c DBConfig) Enabled() bool { return c.URL != "" }

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	IntakeTopic   string
	ConsumerGroup string
	ClientID      string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	TLS           bool
	SASLEnabled   bool
}

// Client converts to the shared Kafka client configuration.
func (c KafkaConfig) Client() kafka.Config {
	return kafka.Config{
		Brokers:       c.Brokers,
		ClientID:      c.ClientID,
		ConsumerGroup: c.ConsumerGroup,
		SASLEnabled:   c.SASLEnabled,
		SASLMechanism: c.SASLMechanism,
		SASLUsername:  c.SASLUsername,
		SASLPassword:  c.SASLPassword,
		TLS:           c.TLS,
	}
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type ScoringConfig struct {
	Strategy         string
	Fallback         bool
	BatchConcurrency int
}

type RemoteConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

type ExtractorConfig struct {
	SelectorsFile string
	UserAgent     string
	Timeout       time.Duration
	MaxBodyBytes  int64
	FetchRate     float64 // page fetches per second
	UseBrowser    bool
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Enabled reports whether both token and chat are set.
func (c TelegramConfig) Enabled() bool { return c.Token != "" && c.ChatID != 0 }

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
	SampleRatio  float64
}

type OutboxConfig struct {
	Schedule  string
	BatchSize int
}

type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first when
// present; variables already set win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		GRPCPort:       getEnvInt("GRPC_PORT", 9090),
		RateLimit:      getEnvInt("RATE_LIMIT", 20),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		EventsBackend:  strings.ToLower(getEnv("EVENTS_BACKEND", EventsBackendLog)),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		DB: DBConfig{
			URL:           getEnv("DATABASE_URL", ""),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/infrastructure/postgres/migrations"),
			MaxConns:      int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns:      int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Brokers:       kafka.ParseBrokers(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:         getEnv("KAFKA_TOPIC", "jobsentinel.events"),
			IntakeTopic:   getEnv("KAFKA_INTAKE_TOPIC", ""),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "jobsentinel"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "jobsentineld"),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			TLS:           getEnvBool("KAFKA_TLS", false),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
			TTL: getEnvDuration("REDIS_TTL", 24*time.Hour),
		},
		Scoring: ScoringConfig{
			Strategy:         strings.ToLower(getEnv("SCORING_STRATEGY", valueobject.StrategyRules.String())),
			Fallback:         getEnvBool("SCORING_FALLBACK", true),
			BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 4),
		},
		Remote: RemoteConfig{
			BaseURL: getEnv("REMOTE_ANALYZER_URL", "https://api.openai.com/v1"),
			Model:   getEnv("REMOTE_ANALYZER_MODEL", "gpt-4"),
			APIKey:  getEnv("REMOTE_ANALYZER_API_KEY", ""),
			Timeout: getEnvDuration("REMOTE_ANALYZER_TIMEOUT", 30*time.Second),
		},
		Extractor: ExtractorConfig{
			SelectorsFile: getEnv("EXTRACTOR_SELECTORS_FILE", ""),
			UserAgent:     getEnv("EXTRACTOR_USER_AGENT", "Mozilla/5.0 (compatible; jobsentinel/1.0)"),
			Timeout:       getEnvDuration("EXTRACTOR_TIMEOUT", 15*time.Second),
			MaxBodyBytes:  int64(getEnvInt("EXTRACTOR_MAX_BODY_BYTES", 5<<20)),
			FetchRate:     getEnvFloat("EXTRACTOR_FETCH_RATE", 2),
			UseBrowser:    getEnvBool("EXTRACTOR_USE_BROWSER", false),
		},
		Telegram: TelegramConfig{
			Token:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID: int64(getEnvInt("TELEGRAM_CHAT_ID", 0)),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-prod"),
			Issuer:    getEnv("JWT_ISSUER", "jobsentinel"),
			TokenTTL:  getEnvDuration("JWT_TTL", time.Hour),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "jobsentinel"),
			SampleRatio:  getEnvFloat("OTEL_SAMPLE_RATIO", 1),
		},
		Outbox: OutboxConfig{
			Schedule:  getEnv("OUTBOX_SCHEDULE", "@every 5s"),
			BatchSize: getEnvInt("OUTBOX_BATCH_SIZE", 100),
		},
		TLS: TLSConfig{
			CertFile:     getEnv("TLS_CERT_FILE", ""),
			KeyFile:      getEnv("TLS_KEY_FILE", ""),
			ClientCAFile: getEnv("TLS_CLIENT_CA_FILE", ""),
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	var errs []error

	strategy, err := valueobject.StrategyFromString(c.Scoring.Strategy)
	if err != nil {
		errs = append(errs, fmt.Errorf("SCORING_STRATEGY: %w", err))
	} else if strategy.Equal(valueobject.StrategyRemote) && c.Remote.APIKey == "" {
		errs = append(errs, errors.New("REMOTE_ANALYZER_API_KEY is required when SCORING_STRATEGY=remote"))
	}

	switch c.EventsBackend {
	case EventsBackendKafka, EventsBackendLog:
	case EventsBackendOutbox:
		if !c.DB.Enabled() {
			errs = append(errs, errors.New("DATABASE_URL is required when EVENTS_BACKEND=outbox"))
		}
	default:
		errs = append(errs, fmt.Errorf("EVENTS_BACKEND: unknown backend %q", c.EventsBackend))
	}

	if c.Scoring.BatchConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("BATCH_CONCURRENCY must be positive, got %d", c.Scoring.BatchConcurrency))
	}

	return errors.Join(errs...)
}

// GRPCAddress returns the full gRPC listen address.
func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
