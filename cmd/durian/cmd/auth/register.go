package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var registerUsername string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account on the server",
	Long: `Registers a user on the durian server.

Both passwords are hashed locally before transmission. Pick the core
password carefully: it encrypts every stored credential, and losing it
means losing access to them.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		username := registerUsername
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
		confirm, err := readPassword("Repeat login password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
		if len(password) < 8 {
			return fmt.Errorf("login password must be at least 8 characters")
		}

		corePassword, err := readPassword("Core password (encrypts your data): ")
		if err != nil {
			return err
		}
		coreConfirm, err := readPassword("Repeat core password: ")
		if err != nil {
			return err
		}
		if corePassword != coreConfirm {
			return fmt.Errorf("core passwords do not match")
		}
		if len(corePassword) < 8 {
			return fmt.Errorf("core password must be at least 8 characters")
		}

		if err := app.Register(cmd.Context(), username, password, corePassword); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		color.Green("Registered. Log in with: durian auth login")
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "username to register")
}
