package accounts

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	addWebsite string
	addAccount string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a credential record",
	Long: `Stores a new credential. The password is prompted, encrypted with the
core password and only then sent to the server.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := unlockedApp(cmd)
		if err != nil {
			return err
		}

		website := addWebsite
		if website == "" {
			if website, err = readLine("Website: "); err != nil {
				return err
			}
		}

		accountName := addAccount
		if accountName == "" {
			if accountName, err = readLine("Account (optional): "); err != nil {
				return err
			}
		}

		password, err := readPassword("Password to store: ")
		if err != nil {
			return err
		}

		res, err := app.Insert(cmd.Context(), website, accountName, password)
		if err != nil {
			return fmt.Errorf("failed to add record: %w", err)
		}
		if !res.OK {
			return fmt.Errorf("server rejected record: %s", res.Message)
		}

		color.Green("Record added")
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addWebsite, "website", "w", "", "website the credential belongs to")
	AddCmd.Flags().StringVarP(&addAccount, "account", "a", "", "account name on the website")
}
