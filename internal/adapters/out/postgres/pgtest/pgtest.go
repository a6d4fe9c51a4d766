// Package pgtest starts a throwaway PostgreSQL container with the schema applied,
// for the integration suites of the postgres adapter.
package pgtest

import (
	"context"
	"time"

	"containerops/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database is a migrated test database.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, applies the embedded migrations with goose and opens
// a GORM connection with error translation enabled.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	database := &Database{Container: container}
	if err = database.migrate(ctx); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	return database, nil
}

func (d *Database) migrate(ctx context.Context) error {
	dsn, err := d.Container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return err
	}

	sqlDB, err := migrations.Open(dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err = migrations.Up(sqlDB); err != nil {
		return err
	}

	d.DB, err = gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	return err
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE notifications, delivery_records, orders").Error
}

// Terminate closes the connection and removes the container.
func (d *Database) Terminate(ctx context.Context) error {
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return d.Container.Terminate(ctx)
}
