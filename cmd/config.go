package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/pkg/errs"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"

	EventBusDriverRedis  = "redis"
	EventBusDriverMemory = "memory"

	NotificationDriverRedis = "redis"
	NotificationDriverLog   = "log"
)

type Config struct {
	HTTPPort string

	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	SQLitePath  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	EventBusDriver             string
	EventBusStream             string
	EventBusGroupPrefix        string
	EventBusMaxDeliveries      int
	EventBusRedeliveryIdle     time.Duration
	EventBusRedeliverySchedule string
	ConsumerWorkers            int

	NotificationDriver  string
	NotificationChannel string

	DemandAccumulationMode commands.AccumulationMode
	PricingEmitOnCreate    bool

	CORSAllowedOrigins []string

	LogMode         string
	OtelEnabled     bool
	OtelServiceName string
	ShutdownTimeout time.Duration
}

// LoadConfig reads the process environment. Missing or unparsable values fall back to
// defaults; unknown drivers and accumulation modes fail.
func LoadConfig() (Config, error) {
	mode, modeErr := commands.ParseAccumulationMode(getenv("DEMAND_ACCUMULATION_MODE", ""))

	redisAddr := getenv("REDIS_ADDR", "")
	notificationDefault := NotificationDriverLog
	if redisAddr != "" {
		notificationDefault = NotificationDriverRedis
	}

	cfg := Config{
		HTTPPort: getenv("HTTP_PORT", "8080"),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", StoreDriverPostgres)),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPassword:  getenv("DB_PASSWORD", ""),
		DBName:      getenv("DB_NAME", "pricing"),
		DBSslMode:   getenv("DB_SSLMODE", "disable"),
		SQLitePath:  getenv("SQLITE_PATH", "pricing.db"),

		RedisAddr:     redisAddr,
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       atoienv("REDIS_DB", 0),

		EventBusDriver:             strings.ToLower(getenv("EVENT_BUS_DRIVER", EventBusDriverMemory)),
		EventBusStream:             getenv("EVENT_BUS_STREAM", "pricing-events"),
		EventBusGroupPrefix:        getenv("EVENT_BUS_GROUP_PREFIX", "pricing"),
		EventBusMaxDeliveries:      atoienv("EVENT_BUS_MAX_DELIVERIES", 5),
		EventBusRedeliveryIdle:     durenv("EVENT_BUS_REDELIVERY_IDLE", 30*time.Second),
		EventBusRedeliverySchedule: getenv("EVENT_BUS_REDELIVERY_SCHEDULE", "*/10 * * * * *"),
		ConsumerWorkers:            atoienv("CONSUMER_WORKERS", 4),

		NotificationDriver:  strings.ToLower(getenv("NOTIFICATION_DRIVER", notificationDefault)),
		NotificationChannel: getenv("NOTIFICATION_CHANNEL", "price-updates"),

		DemandAccumulationMode: mode,
		PricingEmitOnCreate:    boolenv("PRICING_EMIT_ON_CREATE", true),

		CORSAllowedOrigins: listenv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		LogMode:         getenv("LOG_MODE", "dev"),
		OtelEnabled:     boolenv("OTEL_ENABLED", false),
		OtelServiceName: getenv("OTEL_SERVICE_NAME", "pricing"),
		ShutdownTimeout: durenv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	if err := errors.Join(modeErr, cfg.Validate()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown drivers and driver combinations that cannot start.
func (c Config) Validate() error {
	var problems []error

	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverSQLite {
		problems = append(problems, invalid("STORE_DRIVER", c.StoreDriver))
	}
	if c.EventBusDriver != EventBusDriverRedis && c.EventBusDriver != EventBusDriverMemory {
		problems = append(problems, invalid("EVENT_BUS_DRIVER", c.EventBusDriver))
	}
	if c.NotificationDriver != NotificationDriverRedis && c.NotificationDriver != NotificationDriverLog {
		problems = append(problems, invalid("NOTIFICATION_DRIVER", c.NotificationDriver))
	}
	if c.NeedsRedis() && c.RedisAddr == "" {
		problems = append(problems, errs.NewValueIsRequiredError("REDIS_ADDR"))
	}
	if c.ConsumerWorkers <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("CONSUMER_WORKERS", c.ConsumerWorkers, 1, "unbounded"))
	}
	if c.EventBusMaxDeliveries <= 0 {
		problems = append(problems,
			errs.NewValueIsOutOfRangeError("EVENT_BUS_MAX_DELIVERIES", c.EventBusMaxDeliveries, 1, "unbounded"))
	}

	return errors.Join(problems...)
}

// NeedsRedis reports whether any configured driver talks to Redis.
func (c Config) NeedsRedis() bool {
	return c.EventBusDriver == EventBusDriverRedis || c.NotificationDriver == NotificationDriverRedis
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func invalid(key, value string) error {
	return errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("unsupported value %q", value))
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	n, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	b, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return def
	}
	return b
}

func durenv(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func listenv(key string, def []string) []string {
	raw := getenv(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
