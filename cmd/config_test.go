package cmd_test

import (
	"testing"
	"time"

	"pricing/cmd"
	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "STORE_DRIVER", "EVENT_BUS_DRIVER", "NOTIFICATION_DRIVER", "REDIS_ADDR",
	"DEMAND_ACCUMULATION_MODE", "PRICING_EMIT_ON_CREATE", "EVENT_BUS_MAX_DELIVERIES",
	"EVENT_BUS_REDELIVERY_IDLE", "SHUTDOWN_TIMEOUT", "CORS_ALLOWED_ORIGINS", "CONSUMER_WORKERS",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, cmd.EventBusDriverMemory, cfg.EventBusDriver)
	assert.Equal(t, cmd.NotificationDriverLog, cfg.NotificationDriver)
	assert.Equal(t, commands.ReadModifyWrite, cfg.DemandAccumulationMode)
	assert.True(t, cfg.PricingEmitOnCreate)
	assert.Equal(t, 5, cfg.EventBusMaxDeliveries)
	assert.Equal(t, 30*time.Second, cfg.EventBusRedeliveryIdle)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("EVENT_BUS_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DEMAND_ACCUMULATION_MODE", "atomic")
	t.Setenv("PRICING_EMIT_ON_CREATE", "false")
	t.Setenv("EVENT_BUS_REDELIVERY_IDLE", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, cmd.StoreDriverSQLite, cfg.StoreDriver)
	assert.Equal(t, cmd.EventBusDriverRedis, cfg.EventBusDriver)
	assert.Equal(t, cmd.NotificationDriverRedis, cfg.NotificationDriver)
	assert.Equal(t, commands.Atomic, cfg.DemandAccumulationMode)
	assert.False(t, cfg.PricingEmitOnCreate)
	assert.Equal(t, 5*time.Second, cfg.EventBusRedeliveryIdle)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.NeedsRedis())
}

func TestLoadConfig_UnparsableNumbersFallBack(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CONSUMER_WORKERS", "many")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ConsumerWorkers)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":     {"STORE_DRIVER": "mysql"},
		"unknown bus":       {"EVENT_BUS_DRIVER": "kafka"},
		"unknown mode":      {"DEMAND_ACCUMULATION_MODE": "eventual"},
		"redis without url": {"NOTIFICATION_DRIVER": "redis"},
		"zero workers":      {"CONSUMER_WORKERS": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := cmd.LoadConfig()

			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := cmd.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "pricing", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=pricing sslmode=disable", cfg.PostgresDSN())
}
