package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "order-events", cfg.KafkaOrderEventsTopic)
	assert.Equal(t, "customer-notifications", cfg.KafkaNotificationsTopic)
	assert.Equal(t, "*/5 * * * * *", cfg.RelaySchedule)
	assert.Equal(t, 100, cfg.RelayBatchSize)
}

func TestLoadConfig_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("RELAY_BATCH_SIZE", "25")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 25, cfg.RelayBatchSize)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password= dbname=containerops sslmode=disable", cfg.DSN())
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nKAFKA_NOTIFICATIONS_TOPIC=sms-outbox\n"), 0o600))

	// godotenv sets process variables; register them so they are restored afterwards.
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("KAFKA_NOTIFICATIONS_TOPIC", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	require.NoError(t, os.Unsetenv("KAFKA_NOTIFICATIONS_TOPIC"))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sms-outbox", cfg.KafkaNotificationsTopic)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing explicit env file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
		require.Error(t, err)
	})

	t.Run("unknown store driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "redis")
		_, err := LoadConfig("")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("batch size out of range", func(t *testing.T) {
		t.Setenv("RELAY_BATCH_SIZE", "0")
		_, err := LoadConfig("")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("postgres without database name", func(t *testing.T) {
		cfg := Config{HTTPPort: "8080", StoreDriver: StorePostgres, DBHost: "localhost", RelayBatchSize: 1}
		require.ErrorIs(t, cfg.Validate(), errs.ErrValueIsRequired)
	})
}
