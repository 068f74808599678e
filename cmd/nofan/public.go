package main

import (
	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
)

var publicCmd = &cobra.Command{
	Use:     "public",
	Aliases: []string{"p"},
	Short:   "Show public timeline",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTimeline(cmd.Context(), nofan.TimelinePublic, "")
	},
}
