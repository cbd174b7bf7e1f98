package accounts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

var (
	listRefresh      bool
	listFormat       string
	listShowPassword bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credential records",
	Long: `Shows the full record set. Served from the local cache when possible;
--refresh forces a pull from the server first.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := unlockedApp(cmd)
		if err != nil {
			return err
		}

		var records []account.DisplayRecord
		err = withSpinner("loading records...", func() error {
			var qerr error
			records, qerr = app.Query(cmd.Context(), listRefresh)
			return qerr
		})
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		records = app.Filter(records, "")

		switch listFormat {
		case "json":
			return printJSON(records)
		default:
			return printTable(records, listShowPassword)
		}
	},
}

func printTable(records []account.DisplayRecord, showPassword bool) error {
	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWebsite\tAccount\tPassword\t")
	fmt.Fprintln(w, "---\t---\t---\t---\t")
	for _, r := range records {
		password := maskPassword(r.Password, showPassword)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n", r.RID, r.Website, r.Account, password)
	}
	w.Flush()

	fmt.Printf("\nTotal records: %d\n", len(records))
	return nil
}

func printJSON(records []account.DisplayRecord) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func maskPassword(password string, show bool) string {
	if show {
		return password
	}
	if password == "" {
		return ""
	}
	return strings.Repeat("*", 8)
}

func init() {
	ListCmd.Flags().BoolVarP(&listRefresh, "refresh", "r", false, "force a pull from the server")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
	ListCmd.Flags().BoolVar(&listShowPassword, "show-password", false, "print passwords in the clear")
}
