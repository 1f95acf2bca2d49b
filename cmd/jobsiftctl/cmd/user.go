package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jobsift/jobsift-server/internal/model"
	"github.com/jobsift/jobsift-server/internal/repository/postgres"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user and print its ID",
	Args:  cobra.NoArgs,
	RunE:  runUserCreate,
}

func init() {
	userCreateCmd.Flags().String("email", "", "email address")
	userCreateCmd.Flags().String("name", "", "full name")
	userCreateCmd.Flags().String("locale", "en", "preferred locale")
	_ = userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd)
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	locale, _ := cmd.Flags().GetString("locale")

	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid --email %q", email)
	}

	db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := postgres.NewUserRepository(db).Create(cmd.Context(), model.User{
		ID:       uuid.New(),
		Email:    email,
		FullName: strings.TrimSpace(name),
		Locale:   locale,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), user.ID)
	return nil
}
