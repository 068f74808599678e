package fanfou

import (
	"fmt"
	"time"
)

// createdAtLayout is the timestamp format Fanfou uses in status payloads,
// e.g. "Thu Aug 05 09:00:00 +0000 2021".
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// User is the author of a status.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}

// Photo is an attachment on a status. LargeURL may carry a size/crop suffix
// after an "@" which renderers strip before display.
type Photo struct {
	URL      string `json:"url"`
	ImageURL string `json:"imageurl"`
	ThumbURL string `json:"thumburl"`
	LargeURL string `json:"largeurl"`
}

// Status is one microblog post as returned by the API with format=html.
// Text carries the HTML-annotated body that Entities segments.
type Status struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	CreatedAt         string `json:"created_at"`
	User              *User  `json:"user"`
	Photo             *Photo `json:"photo,omitempty"`
	InReplyToStatusID string `json:"in_reply_to_status_id,omitempty"`
	RepostStatusID    string `json:"repost_status_id,omitempty"`
}

// CreatedTime parses the status timestamp.
func (s *Status) CreatedTime() (time.Time, error) {
	t, err := time.Parse(createdAtLayout, s.CreatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing created_at %q: %w", s.CreatedAt, err)
	}
	return t, nil
}

// Trend is one trending topic.
type Trend struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// TrendsResult is the response of /trends/list.
type TrendsResult struct {
	AsOf   string  `json:"as_of"`
	Trends []Trend `json:"trends"`
}

// SavedSearch is one saved search query.
type SavedSearch struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
}
