package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jobsift/jobsift-server/internal/config"
	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/repository/postgres"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "jobsiftctl",
	Short: "Administrative tool for the JobSift server",
	Long: `jobsiftctl runs maintenance tasks against the JobSift database:
applying migrations, creating users, issuing development tokens and
exporting interview calendars.

Configuration is read from the same environment variables as the server.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(feedCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	if envFile != "" {
		// Missing file is not an error.
		_ = godotenv.Load(envFile)
	}

	c, err := config.NewConfig()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// openDatabase connects and applies pending migrations.
func openDatabase(ctx context.Context) (*postgres.Connection, error) {
	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newLogger() *logger.Logger {
	return logger.NewWithWriter(os.Stderr, cfg.LogLevel)
}
