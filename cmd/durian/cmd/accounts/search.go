package accounts

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/elvisding0307/durian-cli/internal/app/client/search"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

var (
	searchRefresh      bool
	searchInteractive  bool
	searchShowPassword bool
)

var SearchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search credential records",
	Long: `Filters records by keyword. Matching is case-insensitive and
pinyin-aware: "yh" and "yinhang" both find a record for 银行.

With --interactive the command keeps reading keywords from stdin and
re-filters the already loaded set on each line, debounced so fast input
does not flood the terminal. An empty line quits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := unlockedApp(cmd)
		if err != nil {
			return err
		}

		var records []account.DisplayRecord
		err = withSpinner("loading records...", func() error {
			var qerr error
			records, qerr = app.Query(cmd.Context(), searchRefresh)
			return qerr
		})
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		if searchInteractive {
			return runInteractive(app.Filter, app.DebounceWindow(), records)
		}

		keyword := ""
		if len(args) > 0 {
			keyword = args[0]
		}
		return printTable(app.Filter(records, keyword), searchShowPassword)
	},
}

type filterFunc func([]account.DisplayRecord, string) []account.DisplayRecord

// runInteractive re-filters the in-memory record set on every line of
// input. The record set is loaded once; only the filter runs per line.
func runInteractive(filter filterFunc, window time.Duration, records []account.DisplayRecord) error {
	debouncer := search.NewDebouncer(window)
	defer debouncer.Stop()

	color.Cyan("Interactive search over %d records. Empty line quits.", len(records))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("search> ")
		if !scanner.Scan() {
			break
		}
		keyword := scanner.Text()
		if keyword == "" {
			break
		}

		debouncer.Schedule(func() {
			matched := filter(records, keyword)
			if len(matched) == 0 {
				fmt.Println("No matches")
				return
			}
			_ = printTable(matched, searchShowPassword)
		})
	}
	return scanner.Err()
}

func init() {
	SearchCmd.Flags().BoolVarP(&searchRefresh, "refresh", "r", false, "force a pull from the server")
	SearchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "keep reading keywords from stdin")
	SearchCmd.Flags().BoolVar(&searchShowPassword, "show-password", false, "print passwords in the clear")
}
