package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
)

var (
	cfgKey         string
	cfgSecret      string
	cfgCount       int
	cfgTimeTag     bool
	cfgPhotoTag    bool
	cfgSSL         bool
	cfgVerbose     bool
	cfgAPIDomain   string
	cfgOAuthDomain string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change settings.

With no flags the current configuration is printed. Each flag updates one
setting; only the flags you pass are changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("key") && !flags.Changed("secret") && !flags.Changed("count") &&
			!flags.Changed("time-tag") && !flags.Changed("photo-tag") && !flags.Changed("ssl") &&
			!flags.Changed("verbose-mode") && !flags.Changed("api-domain") && !flags.Changed("oauth-domain") {
			doc, err := json.MarshalIndent(app.Config, "", "  ")
			if err != nil {
				return err
			}
			printer.Line(string(doc))
			return nil
		}

		var settings nofan.Settings
		if flags.Changed("key") {
			settings.ConsumerKey = &cfgKey
		}
		if flags.Changed("secret") {
			settings.ConsumerSecret = &cfgSecret
		}
		if flags.Changed("count") {
			settings.DisplayCount = &cfgCount
		}
		if flags.Changed("time-tag") {
			settings.TimeTag = &cfgTimeTag
		}
		if flags.Changed("photo-tag") {
			settings.PhotoTag = &cfgPhotoTag
		}
		if flags.Changed("ssl") {
			settings.UseSSL = &cfgSSL
		}
		if flags.Changed("verbose-mode") {
			settings.Verbose = &cfgVerbose
		}
		if flags.Changed("api-domain") {
			settings.APIDomain = &cfgAPIDomain
		}
		if flags.Changed("oauth-domain") {
			settings.OAuthDomain = &cfgOAuthDomain
		}
		if err := app.Configure(settings); err != nil {
			return err
		}
		printer.Succeed("Config saved")
		return nil
	},
}

func init() {
	f := configCmd.Flags()
	f.StringVar(&cfgKey, "key", "", "consumer key")
	f.StringVar(&cfgSecret, "secret", "", "consumer secret")
	f.IntVar(&cfgCount, "count", 0, "number of statuses to fetch per timeline")
	f.BoolVar(&cfgTimeTag, "time-tag", false, "append relative timestamps to statuses")
	f.BoolVar(&cfgPhotoTag, "photo-tag", false, "mark statuses that carry a photo")
	f.BoolVar(&cfgSSL, "ssl", false, "use https for API requests")
	f.BoolVar(&cfgVerbose, "verbose-mode", false, "always render in verbose mode")
	f.StringVar(&cfgAPIDomain, "api-domain", "", "API domain")
	f.StringVar(&cfgOAuthDomain, "oauth-domain", "", "OAuth domain")
}
