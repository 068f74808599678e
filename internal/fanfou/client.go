// Package fanfou talks to the Fanfou REST API. Request signing is delegated
// to the oauth1 library; this package only maps endpoints, parameters and
// payloads.
package fanfou

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

// Params carries optional query parameters merged into a request.
type Params map[string]string

// Options configures a Client. BaseURL and OAuthBaseURL override the
// domain-derived endpoints; tests point them at a local server.
type Options struct {
	ConsumerKey      string
	ConsumerSecret   string
	OAuthToken       string
	OAuthTokenSecret string
	APIDomain        string
	OAuthDomain      string
	UseSSL           bool
	BaseURL          string
	OAuthBaseURL     string
	Logger           *slog.Logger
}

func (o Options) scheme() string {
	if o.UseSSL {
		return "https"
	}
	return "http"
}

func (o Options) apiBase() string {
	if o.BaseURL != "" {
		return strings.TrimRight(o.BaseURL, "/")
	}
	return o.scheme() + "://" + o.APIDomain
}

func (o Options) oauthBase() string {
	if o.OAuthBaseURL != "" {
		return strings.TrimRight(o.OAuthBaseURL, "/")
	}
	return o.scheme() + "://" + o.OAuthDomain
}

// Token is the long-lived credential pair returned by the xauth exchange.
type Token struct {
	OAuthToken       string
	OAuthTokenSecret string
}

// APIError is an error response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Client is an authenticated Fanfou API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a client signing every request with the given consumer
// and access tokens.
func NewClient(opts Options) *Client {
	oauthCfg := oauth1.NewConfig(opts.ConsumerKey, opts.ConsumerSecret)
	token := oauth1.NewToken(opts.OAuthToken, opts.OAuthTokenSecret)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    opts.apiBase(),
		httpClient: oauthCfg.Client(context.Background(), token),
		logger:     logger,
	}
}

// XAuth exchanges a username/password for an access token, signed with the
// consumer credentials only.
func XAuth(ctx context.Context, opts Options, username, password string) (*Token, error) {
	oauthCfg := oauth1.NewConfig(opts.ConsumerKey, opts.ConsumerSecret)
	httpClient := oauthCfg.Client(ctx, oauth1.NewToken("", ""))

	form := url.Values{}
	form.Set("x_auth_username", username)
	form.Set("x_auth_password", password)
	form.Set("x_auth_mode", "client_auth")

	endpoint := opts.oauthBase() + "/oauth/access_token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing xauth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading xauth response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("decoding xauth response: %w", err)
	}
	token := &Token{
		OAuthToken:       values.Get("oauth_token"),
		OAuthTokenSecret: values.Get("oauth_token_secret"),
	}
	if token.OAuthToken == "" || token.OAuthTokenSecret == "" {
		return nil, fmt.Errorf("xauth response missing token: %q", string(body))
	}
	return token, nil
}

// --- Timelines ---

func (c *Client) HomeTimeline(ctx context.Context, params Params) ([]Status, error) {
	return c.timeline(ctx, "/statuses/home_timeline", params)
}

func (c *Client) PublicTimeline(ctx context.Context, params Params) ([]Status, error) {
	return c.timeline(ctx, "/statuses/public_timeline", params)
}

func (c *Client) Mentions(ctx context.Context, params Params) ([]Status, error) {
	return c.timeline(ctx, "/statuses/mentions", params)
}

// UserTimeline fetches the statuses of one user; empty id means the
// authenticated user.
func (c *Client) UserTimeline(ctx context.Context, id string, params Params) ([]Status, error) {
	params = params.clone()
	if id != "" {
		params["id"] = id
	}
	return c.timeline(ctx, "/statuses/user_timeline", params)
}

func (c *Client) ContextTimeline(ctx context.Context, id string, params Params) ([]Status, error) {
	params = params.clone()
	params["id"] = id
	return c.timeline(ctx, "/statuses/context_timeline", params)
}

// Search queries the public timeline, or one user's timeline when the
// caller put an "id" in params.
func (c *Client) Search(ctx context.Context, query string, params Params) ([]Status, error) {
	params = params.clone()
	params["q"] = query
	path := "/search/public_timeline"
	if params["id"] != "" {
		path = "/search/user_timeline"
	}
	return c.timeline(ctx, path, params)
}

func (c *Client) timeline(ctx context.Context, path string, params Params) ([]Status, error) {
	params = params.clone()
	params["format"] = "html"
	var statuses []Status
	if err := c.do(ctx, http.MethodGet, path, params, nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// --- Trends ---

func (c *Client) Trends(ctx context.Context) (*TrendsResult, error) {
	var result TrendsResult
	if err := c.do(ctx, http.MethodGet, "/trends/list", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SavedSearches(ctx context.Context) ([]SavedSearch, error) {
	var searches []SavedSearch
	if err := c.do(ctx, http.MethodGet, "/saved_searches/list", nil, nil, &searches); err != nil {
		return nil, err
	}
	return searches, nil
}

// --- Statuses ---

func (c *Client) Show(ctx context.Context, id string) (*Status, error) {
	var status Status
	params := Params{"id": id, "format": "html"}
	if err := c.do(ctx, http.MethodGet, "/statuses/show", params, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// UpdateRequest holds the fields of a new status.
type UpdateRequest struct {
	Status            string
	InReplyToStatusID string
	RepostStatusID    string
}

func (c *Client) Update(ctx context.Context, req UpdateRequest) (*Status, error) {
	form := url.Values{}
	form.Set("status", req.Status)
	if req.InReplyToStatusID != "" {
		form.Set("in_reply_to_status_id", req.InReplyToStatusID)
	}
	if req.RepostStatusID != "" {
		form.Set("repost_status_id", req.RepostStatusID)
	}
	var status Status
	if err := c.do(ctx, http.MethodPost, "/statuses/update", nil, form, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Destroy(ctx context.Context, id string) (*Status, error) {
	form := url.Values{}
	form.Set("id", id)
	var status Status
	if err := c.do(ctx, http.MethodPost, "/statuses/destroy", nil, form, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// UploadPhoto posts a status with an attached photo file.
func (c *Client) UploadPhoto(ctx context.Context, path, text string) (*Status, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening photo: %w", err)
	}
	defer file.Close()

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	if err := writer.WriteField("status", text); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/photos/upload.json", strings.NewReader(body.String()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var status Status
	if err := c.send(req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Raw performs an arbitrary signed GET or POST against the API and returns
// the undecoded response payload.
func (c *Client) Raw(ctx context.Context, method, path string, params Params) (json.RawMessage, error) {
	var raw json.RawMessage
	switch method {
	case http.MethodGet:
		if err := c.do(ctx, http.MethodGet, path, params, nil, &raw); err != nil {
			return nil, err
		}
	case http.MethodPost:
		form := url.Values{}
		for k, v := range params {
			form.Set(k, v)
		}
		if err := c.do(ctx, http.MethodPost, path, nil, form, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
	return raw, nil
}

// --- internal helpers ---

func (p Params) clone() Params {
	out := make(Params, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// do performs a signed request against the API. Query parameters go on the
// URL; form, when non-nil, is sent urlencoded so the signer covers it.
func (c *Client) do(ctx context.Context, method, path string, params Params, form url.Values, result any) error {
	target := c.baseURL + path + ".json"
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		target += "?" + q.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return c.send(req, result)
}

func (c *Client) send(req *http.Request, result any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()
	c.logger.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
