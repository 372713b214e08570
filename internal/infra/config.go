package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	// Refill scheduler. The period deliberately stays configurable: deployed
	// variants of this job have run anywhere from two minutes to several
	// hours apart.
	RefillSchedulerPeriod time.Duration

	// Kafka ingestion.
	KafkaBrokers            []string
	KafkaGroupID            string
	AuthEventsTopic         string
	SubscriptionEventsTopic string
	PaymentEventsTopic      string

	// Outward mission-service calls (dashboard/passport reads).
	MissionServiceBaseURL string
	MissionClientTimeout  time.Duration

	// Optional GeoIP database for enriching login-failed security logs.
	GeoIPDBPath string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	AllowedOrigins   []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RefillSchedulerPeriod: getEnvDuration("REFILL_SCHEDULER_PERIOD", 2*time.Minute),

		KafkaBrokers:            splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaGroupID:            getEnv("KAFKA_GROUP_ID", "user-service"),
		AuthEventsTopic:         getEnv("KAFKA_AUTH_EVENTS_TOPIC", "auth-events"),
		SubscriptionEventsTopic: getEnv("KAFKA_SUBSCRIPTION_EVENTS_TOPIC", "subscription-events"),
		PaymentEventsTopic:      getEnv("KAFKA_PAYMENT_EVENTS_TOPIC", "payment-events"),

		MissionServiceBaseURL: getEnv("MISSION_SERVICE_BASE_URL", "http://mission-service"),
		MissionClientTimeout:  getEnvDuration("MISSION_CLIENT_TIMEOUT", 5*time.Second),

		GeoIPDBPath: os.Getenv("GEOIP_DB_PATH"),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.RefillSchedulerPeriod <= 0 {
		return nil, fmt.Errorf("REFILL_SCHEDULER_PERIOD must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
