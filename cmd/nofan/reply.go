package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var replyCmd = &cobra.Command{
	Use:     "reply <id> [text]...",
	Aliases: []string{"re"},
	Short:   "Reply to a status",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Reply(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		printer.Succeed("Sent!")
		return nil
	},
}
