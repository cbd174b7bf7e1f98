package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	Long: `Removes the locally stored session token. The cached records stay on
disk; they are keyed by username and become reachable again on the next
login.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}

		color.Green("Logged out")
		return nil
	},
}
