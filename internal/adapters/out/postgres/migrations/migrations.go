// Package migrations embeds the SQL schema of the postgres store and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fs embed.FS

// Open connects through lib/pq and pings the server.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db error: %w", err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db error: %w", err)
	}
	return db, nil
}

// Up applies every pending migration.
func Up(db *sql.DB) error {
	if err := prepare(); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up error: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(db *sql.DB) error {
	if err := prepare(); err != nil {
		return err
	}
	if err := goose.Down(db, "."); err != nil {
		return fmt.Errorf("goose down error: %w", err)
	}
	return nil
}

// Version reports the applied schema version.
func Version(db *sql.DB) (int64, error) {
	if err := prepare(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}

func prepare() error {
	goose.SetBaseFS(fs)
	return goose.SetDialect("postgres")
}
