package nofan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/nofan-cli/nofan/internal/fanfou"
)

// TimelineKind names one of the fetchable timelines.
type TimelineKind string

const (
	TimelineHome     TimelineKind = "home"
	TimelineMentions TimelineKind = "mentions"
	TimelineMe       TimelineKind = "me"
	TimelinePublic   TimelineKind = "public"
	TimelineUser     TimelineKind = "user"
	TimelineContext  TimelineKind = "context"
	TimelineSearch   TimelineKind = "search"
)

// ErrNoTrends means the trends listing came back empty — informational,
// not a failure.
var ErrNoTrends = errors.New("no trends exist")

// FetchTimeline fetches one timeline. arg is the user id for TimelineUser,
// the status id for TimelineContext, and the query for TimelineSearch;
// other kinds ignore it.
func (a *App) FetchTimeline(ctx context.Context, kind TimelineKind, arg string) ([]fanfou.Status, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	params := a.countParams()
	switch kind {
	case TimelineHome:
		return client.HomeTimeline(ctx, params)
	case TimelineMentions:
		return client.Mentions(ctx, params)
	case TimelineMe:
		return client.UserTimeline(ctx, "", params)
	case TimelinePublic:
		return client.PublicTimeline(ctx, params)
	case TimelineUser:
		return client.UserTimeline(ctx, arg, params)
	case TimelineContext:
		return client.ContextTimeline(ctx, arg, nil)
	case TimelineSearch:
		return client.Search(ctx, arg, params)
	default:
		return nil, fmt.Errorf("unknown timeline kind %q", kind)
	}
}

// Trends merges hot trends with the user's saved searches.
func (a *App) Trends(ctx context.Context) ([]fanfou.Trend, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	result, err := client.Trends(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := client.SavedSearches(ctx)
	if err != nil {
		return nil, err
	}

	trends := result.Trends
	for _, s := range saved {
		trends = append(trends, fanfou.Trend{Name: s.Name, Query: s.Query})
	}
	if len(trends) == 0 {
		return nil, ErrNoTrends
	}
	return trends, nil
}

// Show fetches a single status by id.
func (a *App) Show(ctx context.Context, id string) (*fanfou.Status, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	return client.Show(ctx, id)
}

// Post publishes a new status.
func (a *App) Post(ctx context.Context, text string) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	_, err = client.Update(ctx, fanfou.UpdateRequest{Status: text})
	return err
}

// Reply posts text as a reply to the status with the given id, prefixed
// with the original author's mention.
func (a *App) Reply(ctx context.Context, id, text string) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	status, err := client.Show(ctx, id)
	if err != nil {
		return err
	}
	name := ""
	if status.User != nil {
		name = status.User.Name
	}
	replyText := strings.TrimSpace(fmt.Sprintf("@%s %s", name, text))
	_, err = client.Update(ctx, fanfou.UpdateRequest{
		Status:            replyText,
		InReplyToStatusID: id,
	})
	return err
}

// Repost reposts the status with the given id, appending the flattened
// original text after the 转@author marker.
func (a *App) Repost(ctx context.Context, id, text string) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	status, err := client.Show(ctx, id)
	if err != nil {
		return err
	}
	name := ""
	if status.User != nil {
		name = status.User.Name
	}
	plain := fanfou.PlainText(fanfou.Entities(status.Text))
	repostText := strings.TrimSpace(fmt.Sprintf("%s 转@%s %s", text, name, plain))
	_, err = client.Update(ctx, fanfou.UpdateRequest{
		Status:         repostText,
		RepostStatusID: id,
	})
	return err
}

// Undo deletes the authenticated user's most recent status.
func (a *App) Undo(ctx context.Context) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	statuses, err := client.UserTimeline(ctx, "", fanfou.Params{"count": "1"})
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		return errors.New("no status to delete")
	}
	_, err = client.Destroy(ctx, statuses[0].ID)
	return err
}

// Upload posts a status with a photo attached from the given path.
func (a *App) Upload(ctx context.Context, path, text string) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	_, err = client.UploadPhoto(ctx, path, text)
	return err
}

// UploadFromClipboard posts a status with the photo whose path is on the
// system clipboard. Extracting image data itself from the clipboard is a
// platform shim this tool does not carry.
func (a *App) UploadFromClipboard(ctx context.Context, text string) error {
	content, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}
	path := strings.TrimSpace(content)
	if path == "" {
		return errors.New("clipboard does not contain a file path")
	}
	return a.Upload(ctx, path, text)
}

// Raw performs a signed GET or POST against an arbitrary API path and
// returns the response payload undecoded.
func (a *App) Raw(ctx context.Context, method, uri string) (json.RawMessage, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return client.Raw(ctx, http.MethodGet, normalizePath(uri), nil)
	case http.MethodPost:
		return client.Raw(ctx, http.MethodPost, normalizePath(uri), nil)
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
}

func normalizePath(uri string) string {
	uri = strings.TrimSuffix(uri, ".json")
	if !strings.HasPrefix(uri, "/") {
		uri = "/" + uri
	}
	return uri
}
