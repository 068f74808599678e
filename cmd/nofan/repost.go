package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var repostCmd = &cobra.Command{
	Use:     "repost <id> [text]...",
	Aliases: []string{"rt"},
	Short:   "Repost a status",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Repost(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		printer.Succeed("Sent!")
		return nil
	},
}
