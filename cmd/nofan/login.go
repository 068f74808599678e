package main

import (
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in with a Fanfou account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Login(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		printer.Succeed("Login succeed!")
		return nil
	},
}
