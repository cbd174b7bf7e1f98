package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loginUsername string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the server",
	Long: `Authenticates against the durian server and stores the session token
locally, so later commands run without logging in again. The core
password is only checked implicitly: a wrong one decrypts nothing.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		username := loginUsername
		if username == "" {
			if username, err = readLine("Username: "); err != nil {
				return err
			}
		}
		if username == "" {
			return fmt.Errorf("username must not be empty")
		}

		password, err := readPassword("Login password: ")
		if err != nil {
			return err
		}
		corePassword, err := readPassword("Core password: ")
		if err != nil {
			return err
		}

		if err := app.Login(cmd.Context(), username, password, corePassword); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		color.Green("Logged in as %s", username)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username to log in with")
}
