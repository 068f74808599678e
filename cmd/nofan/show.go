package main

import (
	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/fanfou"
	"github.com/nofan-cli/nofan/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := app.Show(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		lines, err := ui.RenderTimeline([]fanfou.Status{*status}, app.RenderOptions())
		if err != nil {
			return err
		}
		for _, line := range lines {
			printer.Line(line)
		}
		return nil
	},
}
