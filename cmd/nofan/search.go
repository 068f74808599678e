package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>...",
	Aliases: []string{"se"},
	Short:   "Search the public timeline",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTimeline(cmd.Context(), nofan.TimelineSearch, strings.Join(args, " "))
	},
}
