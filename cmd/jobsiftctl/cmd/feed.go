package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jobsift/jobsift-server/internal/repository/postgres"
	"github.com/jobsift/jobsift-server/internal/service"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Work with interview calendar feeds",
}

var feedExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a user's ICS feed to a file or stdout",
	Long: `Render the interviews a user has scheduled in the next --days days as an
iCalendar document.

Example:
  jobsiftctl feed export --user 4f0c7a8e-2f55-4a4a-9d55-3b9d0d3c8a11 --days 30 --out interviews.ics`,
	Args: cobra.NoArgs,
	RunE: runFeedExport,
}

func init() {
	feedExportCmd.Flags().String("user", "", "user ID whose interviews are exported")
	feedExportCmd.Flags().Int("days", 0, "days ahead to include (default CALENDAR_DEFAULT_FEED_DAYS)")
	feedExportCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	_ = feedExportCmd.MarkFlagRequired("user")

	feedCmd.AddCommand(feedExportCmd)
}

func runFeedExport(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("user")
	days, _ := cmd.Flags().GetInt("days")
	out, _ := cmd.Flags().GetString("out")

	userID, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}
	if days == 0 {
		days = cfg.Calendar.DefaultFeedDays
	}

	db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	feed := service.NewFeed(postgres.NewInterviewRepository(db), nil, service.FeedOptions{
		ProductDomain: cfg.Calendar.ProductDomain,
	}, newLogger())

	body, err := feed.Generate(cmd.Context(), userID, days)
	if err != nil {
		return err
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", len(body), out)
	return nil
}
