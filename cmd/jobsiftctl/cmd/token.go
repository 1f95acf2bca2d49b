package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jobsift/jobsift-server/internal/token"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token",
	Long: `Issue an access token signed with JWT_SECRET for an existing user.

Example:
  jobsiftctl token --user 4f0c7a8e-2f55-4a4a-9d55-3b9d0d3c8a11`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().String("user", "", "user ID the token is issued for")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runToken(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("user")
	userID, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}

	accessToken, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL).GenerateAccessToken(userID)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), accessToken)
	return nil
}
