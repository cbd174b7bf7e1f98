package accounts

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	updateWebsite string
	updateAccount string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rewrite a credential record",
	Long: `Replaces the record identified by id. All fields are rewritten, so
website and account must be given even when unchanged; find the id with
'durian account list'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id %q", args[0])
		}

		app, err := unlockedApp(cmd)
		if err != nil {
			return err
		}

		website := updateWebsite
		if website == "" {
			if website, err = readLine("Website: "); err != nil {
				return err
			}
		}

		accountName := updateAccount
		if accountName == "" {
			if accountName, err = readLine("Account (optional): "); err != nil {
				return err
			}
		}

		password, err := readPassword("New password: ")
		if err != nil {
			return err
		}

		res, err := app.Update(cmd.Context(), rid, website, accountName, password)
		if err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}
		if !res.OK {
			return fmt.Errorf("server rejected update: %s", res.Message)
		}

		color.Green("Record %d updated", rid)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateWebsite, "website", "w", "", "website the credential belongs to")
	UpdateCmd.Flags().StringVarP(&updateAccount, "account", "a", "", "account name on the website")
}
