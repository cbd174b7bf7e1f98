package accounts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a credential record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id %q", args[0])
		}

		app, err := unlockedApp(cmd)
		if err != nil {
			return err
		}

		if !deleteYes {
			answer, err := readLine(fmt.Sprintf("Delete record %d? [y/N]: ", rid))
			if err != nil {
				return err
			}
			if !strings.EqualFold(answer, "y") {
				fmt.Println("Aborted")
				return nil
			}
		}

		res, err := app.Delete(cmd.Context(), rid)
		if err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		if !res.OK {
			return fmt.Errorf("server rejected delete: %s", res.Message)
		}

		color.Green("Record %d deleted", rid)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
