package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     Config
)

var rootCmd = &cobra.Command{
	Use:          "containerops",
	Short:        "Order workflow service for container hire and sales",
	Long:         `Takes container bookings, moves them through their lifecycle and keeps the admin, driver and customer views in step.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		cfg, err = LoadConfig(envFile)
		return err
	},
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is ./.env when present)")
}
