package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/elvisding0307/durian-cli/cmd/durian/cmd/types"
	"github.com/elvisding0307/durian-cli/internal/app/client"
	"github.com/elvisding0307/durian-cli/internal/app/client/config"
	"github.com/elvisding0307/durian-cli/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	jsonLogs  bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "durian",
	Short: "Durian - a personal credential manager",
	Long: `Durian keeps website credentials on a server, encrypted on the client
before they leave the machine, and mirrors them into a local cache so
day-to-day lookups work without a network round trip.

Two passwords are involved: the login password authenticates you to the
server, the core password encrypts the stored credentials. The server
never sees either one in the clear.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if app != nil {
		_ = app.Close()
	}
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Command-line flags win over config file and environment.
	if serverURL != "" {
		cfg.APIBaseURL = serverURL
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if jsonLogs {
		cfg.LogJSON = true
	}

	log = logger.New(cfg.LogLevel, cfg.LogJSON)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "durian server base URL")

	// Subcommands attach themselves in init.go.
}
