package fanfou

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

// SegmentType classifies one span of status text.
type SegmentType string

const (
	SegmentPlain   SegmentType = "plain"
	SegmentMention SegmentType = "mention"
	SegmentLink    SegmentType = "link"
	SegmentHashtag SegmentType = "hashtag"
)

// Span is a sub-highlighted run inside a segment. Search results mark the
// matched keywords bold.
type Span struct {
	Text string
	Bold bool
}

// Segment is a contiguous classified span of a status's text. Spans is nil
// unless the segment carries search highlights.
type Segment struct {
	Type  SegmentType
	Text  string // display text: "@name", "#topic#", the link URL, or plain text
	ID    string // mention: the user id from the anchor href
	Query string // hashtag: the decoded search query
	Spans []Span
}

var (
	anchorRe = regexp.MustCompile(`<a href="([^"]*)"[^>]*>(.*?)</a>`)
	boldRe   = regexp.MustCompile(`<b>(.*?)</b>`)
)

// Entities segments a format=html status body into an ordered sequence of
// plain/mention/link/hashtag runs. Mentions look like
// `@<a href="http://fanfou.com/userid" class="former">name</a>`, hashtags
// like `#<a href="/q/query">topic</a>#`, anything else anchored is a link.
func Entities(text string) []Segment {
	var segments []Segment
	rest := text

	for {
		loc := anchorRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		before := rest[:loc[0]]
		href := rest[loc[2]:loc[3]]
		inner := rest[loc[4]:loc[5]]
		after := rest[loc[1]:]

		switch {
		case strings.HasSuffix(before, "@") && isUserHref(href):
			segments = appendPlain(segments, strings.TrimSuffix(before, "@"))
			segments = append(segments, mentionSegment(href, inner))
		case strings.HasSuffix(before, "#") && strings.HasPrefix(href, "/q/") && strings.HasPrefix(after, "#"):
			segments = appendPlain(segments, strings.TrimSuffix(before, "#"))
			segments = append(segments, hashtagSegment(href, inner))
			after = strings.TrimPrefix(after, "#")
		default:
			segments = appendPlain(segments, before)
			segments = append(segments, textSegment(SegmentLink, inner))
		}
		rest = after
	}
	return appendPlain(segments, rest)
}

// PlainText flattens segments back to their display text, highlight tags
// removed. Used when composing repost bodies.
func PlainText(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func isUserHref(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Host, "fanfou.com") && u.Path != "/"
}

func mentionSegment(href, inner string) Segment {
	id := ""
	if u, err := url.Parse(href); err == nil {
		id = strings.Trim(u.Path, "/")
	}
	seg := textSegment(SegmentMention, inner)
	seg.Text = "@" + seg.Text
	if seg.Spans != nil {
		seg.Spans = append([]Span{{Text: "@"}}, seg.Spans...)
	}
	seg.ID = id
	return seg
}

func hashtagSegment(href, inner string) Segment {
	query := strings.TrimPrefix(href, "/q/")
	if decoded, err := url.QueryUnescape(query); err == nil {
		query = decoded
	}
	seg := textSegment(SegmentHashtag, inner)
	seg.Text = "#" + seg.Text + "#"
	if seg.Spans != nil {
		seg.Spans = append([]Span{{Text: "#"}}, seg.Spans...)
		seg.Spans = append(seg.Spans, Span{Text: "#"})
	}
	seg.Query = query
	return seg
}

func appendPlain(segments []Segment, raw string) []Segment {
	if raw == "" {
		return segments
	}
	return append(segments, textSegment(SegmentPlain, raw))
}

// textSegment builds a segment from raw (possibly <b>-annotated) anchor or
// plain text, recording highlight spans when present.
func textSegment(typ SegmentType, raw string) Segment {
	seg := Segment{Type: typ}
	if !boldRe.MatchString(raw) {
		seg.Text = html.UnescapeString(raw)
		return seg
	}

	rest := raw
	for {
		loc := boldRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		if before := rest[:loc[0]]; before != "" {
			seg.Spans = append(seg.Spans, Span{Text: html.UnescapeString(before)})
		}
		seg.Spans = append(seg.Spans, Span{Text: html.UnescapeString(rest[loc[2]:loc[3]]), Bold: true})
		rest = rest[loc[1]:]
	}
	if rest != "" {
		seg.Spans = append(seg.Spans, Span{Text: html.UnescapeString(rest)})
	}
	var b strings.Builder
	for _, span := range seg.Spans {
		b.WriteString(span.Text)
	}
	seg.Text = b.String()
	return seg
}
