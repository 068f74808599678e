package main

import (
	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Delete your latest status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Undo(cmd.Context()); err != nil {
			return err
		}
		printer.Succeed("Deleted!")
		return nil
	},
}
