package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/config"
	"github.com/nofan-cli/nofan/internal/nofan"
	"github.com/nofan-cli/nofan/internal/ui"
)

var (
	verboseFlag   bool
	photoFlag     string
	clipboardFlag bool

	app     *nofan.App
	printer *ui.Printer
)

var rootCmd = &cobra.Command{
	Use:   "nofan [text]...",
	Short: "A command-line client for Fanfou",
	Long: `nofan is a command-line client for Fanfou.

Run it with no arguments to read your home timeline, or with freeform
text to post a status.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.DefaultDir()
		if err != nil {
			return err
		}
		return initApp(dir)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return showTimeline(cmd.Context(), nofan.TimelineHome, "")
		}
		return postStatus(cmd, args)
	},
}

// initApp loads the persisted documents and builds the shared state every
// command uses.
func initApp(dir string) error {
	level := slog.LevelWarn
	if verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store := &config.Store{Dir: dir}
	loaded, err := nofan.Load(store, logger)
	if err != nil {
		return err
	}
	loaded.Verbose = loaded.Config.Verbose || verboseFlag
	app = loaded
	printer = ui.NewPrinter()
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVarP(&photoFlag, "photo", "p", "", "attach a photo from path")
	rootCmd.Flags().BoolVarP(&clipboardFlag, "clipboard", "c", false, "attach the photo whose path is on the clipboard")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(colorsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(mentionsCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(publicCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(replyCmd)
	rootCmd.AddCommand(repostCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if printer == nil {
			printer = ui.NewPrinter()
		}
		printer.Fail("%v", err)
		os.Exit(1)
	}
}
