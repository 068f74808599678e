package main

import (
	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
)

var contextCmd = &cobra.Command{
	Use:     "context <id>",
	Aliases: []string{"cont"},
	Short:   "Show context timeline of a status",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTimeline(cmd.Context(), nofan.TimelineContext, args[0])
	},
}
