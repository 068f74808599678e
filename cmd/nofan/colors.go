package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var colorsCmd = &cobra.Command{
	Use:   "colors [role=style]...",
	Short: "Show or change the color scheme",
	Long: `Show or change the color scheme.

Each argument sets one role, e.g. "text=#ff99cc" or
"timeago=dim.green.italic". With no arguments the current scheme is
printed. Styles are dot-separated keywords: color names, hex values,
attributes like bold or underline, and bg-prefixed backgrounds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			roles := make([]string, 0, len(app.Config.ColorScheme))
			for role := range app.Config.ColorScheme {
				roles = append(roles, role)
			}
			sort.Strings(roles)
			for _, role := range roles {
				printer.Line(fmt.Sprintf("%s: %s", role, app.Config.ColorScheme[role]))
			}
			return nil
		}

		updates := make(map[string]string, len(args))
		for _, arg := range args {
			role, descriptor, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("invalid color assignment %q, want role=style", arg)
			}
			updates[role] = descriptor
		}
		if err := app.SetColors(updates); err != nil {
			return err
		}
		printer.Succeed("Colors saved")
		return nil
	},
}
