package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/account"
)

var switchCmd = &cobra.Command{
	Use:     "switch [id]",
	Aliases: []string{"s"},
	Short:   "Switch to another account",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		active, err := app.Switch(name)
		if err != nil {
			if errors.Is(err, account.ErrNoMoreAccounts) {
				printer.Info("No more accounts")
				return nil
			}
			var choose *account.ChooseError
			if errors.As(err, &choose) {
				printer.Info("Pick one of: %s", strings.Join(choose.Candidates, ", "))
				return nil
			}
			return err
		}
		printer.Succeed("Switched to %s", active)
		return nil
	},
}
