package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nofan-cli/nofan/internal/fanfou"
)

// photoSuffixRe matches the size/crop suffix Fanfou appends to photo URLs,
// e.g. "...jpg@596w_1l.jpg".
var photoSuffixRe = regexp.MustCompile(`@.+\..+$`)

// photoGlyph is the indicator appended to statuses carrying a photo.
const photoGlyph = "[图]"

// MalformedStatusError reports a fetched status missing required fields —
// an upstream contract breach, surfaced instead of rendering a blank line.
type MalformedStatusError struct {
	StatusID string
	Reason   string
}

func (e *MalformedStatusError) Error() string {
	return fmt.Sprintf("malformed status %q: %s", e.StatusID, e.Reason)
}

// RenderOptions controls timeline formatting.
type RenderOptions struct {
	Verbose    bool
	TimeTag    bool
	PhotoTag   bool
	Scheme     map[string]string
	NoColor    bool
	Hyperlinks bool
	// Now anchors relative-time formatting; nil means time.Now.
	Now func() time.Time
}

// RenderTimeline formats statuses into one line each, preserving input
// order. It is pure formatting over already-fetched data: no filtering,
// sorting, or retries.
func RenderTimeline(statuses []fanfou.Status, opts RenderOptions) ([]string, error) {
	palette := NewPalette(opts.Scheme, opts.NoColor)
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	lines := make([]string, 0, len(statuses))
	for i := range statuses {
		line, err := renderStatus(&statuses[i], palette, opts, now)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func renderStatus(status *fanfou.Status, palette *Palette, opts RenderOptions, now func() time.Time) (string, error) {
	if status.User == nil || status.User.Name == "" {
		return "", &MalformedStatusError{StatusID: status.ID, Reason: "missing author"}
	}
	if status.Text == "" && status.Photo == nil {
		return "", &MalformedStatusError{StatusID: status.ID, Reason: "missing text"}
	}

	var text strings.Builder
	for _, seg := range fanfou.Entities(status.Text) {
		text.WriteString(renderSegment(seg, palette, opts.Verbose))
	}

	name := palette.Render("text", "[") +
		palette.Render("name", authorLabel(status, opts.Verbose)) +
		palette.Render("text", "]")

	line := name + " " + text.String()
	if status.Photo != nil && opts.PhotoTag {
		tag := palette.Render("photo", photoTag(status.Photo, opts.Hyperlinks))
		if text.Len() > 0 {
			line += " " + tag
		} else {
			line += tag
		}
	}

	if opts.TimeTag {
		created, err := status.CreatedTime()
		if err != nil {
			return "", &MalformedStatusError{StatusID: status.ID, Reason: err.Error()}
		}
		var stamp string
		if opts.Verbose {
			stamp = created.Local().Format("2006-01-02 15:04:05")
		} else {
			stamp = humanize.RelTime(created, now(), "ago", "from now")
		}
		line += " " + palette.Render("timeago", "("+stamp+")")
	}
	return line, nil
}

func authorLabel(status *fanfou.Status, verbose bool) string {
	if verbose {
		return fmt.Sprintf("%s(%s):%s", status.User.Name, status.User.ID, status.ID)
	}
	return status.User.Name
}

func segmentRole(typ fanfou.SegmentType) string {
	switch typ {
	case fanfou.SegmentMention:
		return "at"
	case fanfou.SegmentLink:
		return "link"
	case fanfou.SegmentHashtag:
		return "tag"
	default:
		return "text"
	}
}

// renderSegment colors one segment. A segment with highlight spans renders
// span by span, the bold spans in the highlight variant; this branch fully
// replaces the whole-segment coloring.
func renderSegment(seg fanfou.Segment, palette *Palette, verbose bool) string {
	role := segmentRole(seg.Type)

	idSuffix := ""
	if verbose && seg.Type == fanfou.SegmentMention {
		idSuffix = ":" + seg.ID
	}

	if seg.Spans != nil {
		var b strings.Builder
		for _, span := range seg.Spans {
			if span.Bold {
				b.WriteString(palette.RenderHighlight(role, span.Text))
			} else {
				b.WriteString(palette.Render(role, span.Text))
			}
		}
		if idSuffix != "" {
			b.WriteString(palette.Render(role, idSuffix))
		}
		return b.String()
	}
	return palette.Render(role, seg.Text+idSuffix)
}

func photoTag(photo *fanfou.Photo, hyperlinks bool) string {
	url := photoSuffixRe.ReplaceAllString(photo.LargeURL, "")
	if hyperlinks && url != "" {
		return Hyperlink(photoGlyph, url)
	}
	return photoGlyph
}
