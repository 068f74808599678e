package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nofan-cli/nofan/internal/nofan"
	"github.com/nofan-cli/nofan/internal/ui"
)

// showTimeline fetches one timeline and prints it line by line.
func showTimeline(ctx context.Context, kind nofan.TimelineKind, arg string) error {
	statuses, err := app.FetchTimeline(ctx, kind, arg)
	if err != nil {
		return err
	}
	lines, err := ui.RenderTimeline(statuses, app.RenderOptions())
	if err != nil {
		return err
	}
	for _, line := range lines {
		printer.Line(line)
	}
	return nil
}

// postStatus publishes the freeform text given to the root command,
// attaching a photo when -p or -c was passed.
func postStatus(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	switch {
	case photoFlag != "":
		if err := app.Upload(cmd.Context(), photoFlag, text); err != nil {
			return err
		}
	case clipboardFlag:
		if err := app.UploadFromClipboard(cmd.Context(), text); err != nil {
			return err
		}
	default:
		if err := app.Post(cmd.Context(), text); err != nil {
			return err
		}
	}
	printer.Succeed("Sent!")
	return nil
}

// printJSON pretty-prints a raw API payload.
func printJSON(raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("formatting response: %w", err)
	}
	printer.Line(buf.String())
	return nil
}
