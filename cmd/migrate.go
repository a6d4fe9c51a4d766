package cmd

import (
	"fmt"

	"containerops/internal/adapters/out/postgres/migrations"
	"containerops/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the postgres schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		log, err := logger.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		return migrateUp(log)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		log, err := logger.New(cfg.LogLevel)
		if err != nil {
			return err
		}

		db, err := migrations.Open(cfg.DSN())
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		if err = migrations.Down(db); err != nil {
			return err
		}
		version, err := migrations.Version(db)
		if err != nil {
			return err
		}
		log.Info("rolled back one migration", zap.Int64("version", version))
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := migrations.Open(cfg.DSN())
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		version, err := migrations.Version(db)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), version)
		return err
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
