package main

import (
	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
)

var homeCmd = &cobra.Command{
	Use:     "home",
	Aliases: []string{"h"},
	Short:   "Show home timeline",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTimeline(cmd.Context(), nofan.TimelineHome, "")
	},
}
