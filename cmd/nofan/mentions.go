package main

import (
	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
)

var mentionsCmd = &cobra.Command{
	Use:     "mentions",
	Aliases: []string{"m"},
	Short:   "Show mentions",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTimeline(cmd.Context(), nofan.TimelineMentions, "")
	},
}
