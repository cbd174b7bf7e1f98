package cmd

import (
	"github.com/elvisding0307/durian-cli/cmd/durian/cmd/accounts"
	"github.com/elvisding0307/durian-cli/cmd/durian/cmd/auth"
	"github.com/elvisding0307/durian-cli/cmd/durian/cmd/cache"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.VerifyCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(accounts.AccountCmd)
	accounts.AccountCmd.AddCommand(accounts.ListCmd)
	accounts.AccountCmd.AddCommand(accounts.SearchCmd)
	accounts.AccountCmd.AddCommand(accounts.AddCmd)
	accounts.AccountCmd.AddCommand(accounts.UpdateCmd)
	accounts.AccountCmd.AddCommand(accounts.DeleteCmd)

	rootCmd.AddCommand(cache.CacheCmd)
}
