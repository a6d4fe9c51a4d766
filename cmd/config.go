package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"containerops/internal/core/application/usecases/commands"
	"containerops/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// STORE_DRIVER values.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	defaultEnvFile = ".env"
)

// Config is the service configuration, read by LoadConfig from the environment and
// an optional env file. StoreDriver selects StoreMemory or StorePostgres; the DB
// fields only matter for postgres. Empty KafkaBrokers disables kafka.
type Config struct {
	HTTPPort    string
	LogLevel    string
	StoreDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers            []string
	KafkaOrderEventsTopic   string
	KafkaNotificationsTopic string

	RelaySchedule  string
	RelayBatchSize int
}

// LoadConfig reads envFile into the process environment, then resolves every setting
// from the environment with defaults. A missing default .env is not an error, a
// missing explicitly named file is. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:    v.GetString("HTTP_PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		StoreDriver: strings.ToLower(v.GetString("STORE_DRIVER")),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		KafkaBrokers:            splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderEventsTopic:   v.GetString("KAFKA_ORDER_EVENTS_TOPIC"),
		KafkaNotificationsTopic: v.GetString("KAFKA_NOTIFICATIONS_TOPIC"),

		RelaySchedule:  v.GetString("RELAY_SCHEDULE"),
		RelayBatchSize: v.GetInt("RELAY_BATCH_SIZE"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreMemory)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "containerops")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("KAFKA_ORDER_EVENTS_TOPIC", "order-events")
	v.SetDefault("KAFKA_NOTIFICATIONS_TOPIC", "customer-notifications")

	v.SetDefault("RELAY_SCHEDULE", "*/5 * * * * *")
	v.SetDefault("RELAY_BATCH_SIZE", 100)
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// Validate checks the fields the selected store and the relay job need.
//
// Returns:
//   - nil for a usable configuration
//   - errs.ValueIsRequiredError naming the missing variable, or an error prefixed
//     with the offending variable name
func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return errs.NewValueIsRequiredError("HTTP_PORT")
	}
	if _, err := commands.NewRelayNotificationsCommand(c.RelayBatchSize); err != nil {
		return fmt.Errorf("RELAY_BATCH_SIZE: %w", err)
	}

	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DBHost == "" {
			return errs.NewValueIsRequiredError("DB_HOST")
		}
		if c.DBName == "" {
			return errs.NewValueIsRequiredError("DB_NAME")
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("STORE_DRIVER",
			fmt.Errorf("%q, want %s or %s", c.StoreDriver, StoreMemory, StorePostgres))
	}
	return nil
}

// DSN is the key/value connection string understood by both lib/pq and pgx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
