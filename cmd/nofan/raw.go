package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <uri>",
	Short: "GET an arbitrary API path and print the JSON response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := app.Raw(cmd.Context(), http.MethodGet, args[0])
		if err != nil {
			return err
		}
		return printJSON(payload)
	},
}

var postCmd = &cobra.Command{
	Use:   "post <uri>",
	Short: "POST to an arbitrary API path and print the JSON response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := app.Raw(cmd.Context(), http.MethodPost, args[0])
		if err != nil {
			return err
		}
		return printJSON(payload)
	},
}
