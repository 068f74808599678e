package main

import (
	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show my statuses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTimeline(cmd.Context(), nofan.TimelineMe, "")
	},
}
