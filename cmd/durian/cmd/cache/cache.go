package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/elvisding0307/durian-cli/cmd/durian/cmd/types"
	"github.com/elvisding0307/durian-cli/internal/app/client"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// CacheCmd groups operations on the local record cache.
var CacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local record cache",
	Long: `The cache mirrors the server-side record set per user. It only ever
changes through full replacement during sync, so clearing it is always
safe: the next query pulls everything again.`,
}

var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the cached records for the current user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := restoredApp(cmd)
		if err != nil {
			return err
		}

		if err := app.ClearCache(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}

		color.Green("Cache cleared for %s", app.Username())
		return nil
	},
}

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cache watermark for the current user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := restoredApp(cmd)
		if err != nil {
			return err
		}

		watermark, err := app.Watermark(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read cache state: %w", err)
		}

		fmt.Printf("User:      %s\n", app.Describe())
		if watermark == 0 {
			fmt.Println("Cache:     empty (next query pulls from the server)")
			return nil
		}
		fmt.Printf("Cache:     populated\n")
		fmt.Printf("Watermark: %d (%s)\n", watermark, time.Unix(watermark, 0).Format("2006-01-02 15:04:05"))
		return nil
	},
}

func restoredApp(cmd *cobra.Command) (*client.App, error) {
	app, _ := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if app == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	if err := app.Restore(); err != nil {
		if errors.Is(err, account.ErrNotAuthenticated) {
			return nil, fmt.Errorf("not logged in, run: durian auth login")
		}
		return nil, err
	}
	return app, nil
}

func init() {
	CacheCmd.AddCommand(ClearCmd)
	CacheCmd.AddCommand(StatusCmd)
}
