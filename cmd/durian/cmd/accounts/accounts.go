package accounts

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/elvisding0307/durian-cli/cmd/durian/cmd/types"
	"github.com/elvisding0307/durian-cli/internal/app/client"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

// AccountCmd is the parent command for credential record operations.
var AccountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"acc"},
	Short:   "Manage stored credentials",
	Long:    `List, search, add, update and delete credential records.`,
}

// unlockedApp restores the stored session and unlocks the cipher with a
// prompted core password. Every record command starts here.
func unlockedApp(cmd *cobra.Command) (*client.App, error) {
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

	corePassword, err := readPassword("Core password: ")
	if err != nil {
		return nil, err
	}
	if err := app.Unlock(corePassword); err != nil {
		return nil, err
	}
	return app, nil
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// withSpinner runs fn behind a terminal spinner. The spinner writes to
// stderr so piped stdout stays clean.
func withSpinner(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()
	return fn()
}
