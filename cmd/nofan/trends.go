package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
)

var trendsCmd = &cobra.Command{
	Use:     "trends",
	Aliases: []string{"tr"},
	Short:   "Show hot topics and saved searches",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		trends, err := app.Trends(cmd.Context())
		if err != nil {
			if errors.Is(err, nofan.ErrNoTrends) {
				printer.Info("No trends found")
				return nil
			}
			return err
		}
		for _, trend := range trends {
			printer.Line(trend.Name)
		}
		return nil
	},
}
