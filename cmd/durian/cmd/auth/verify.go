package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check whether the stored session is still valid",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.Restore(); err != nil {
			return fmt.Errorf("no stored session: %w", err)
		}

		ok, err := app.Verify(cmd.Context())
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}

		if ok {
			color.Green("Session for %s is valid", app.Username())
		} else {
			color.Yellow("Session has expired, run: durian auth login")
		}
		return nil
	},
}
