package main

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out the current account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := app.Logout()
		if err != nil {
			return err
		}
		if removed == "" {
			printer.Info("Nothing to do")
			return nil
		}
		printer.Succeed("Logout from %s", removed)
		return nil
	},
}
