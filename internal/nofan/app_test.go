package nofan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nofan-cli/nofan/internal/account"
	"github.com/nofan-cli/nofan/internal/config"
)

const statusJSON = `{"id": "s1", "text": "hello world", "created_at": "Thu Aug 05 09:00:00 +0000 2021", "user": {"id": "u1", "name": "Alice"}}`

// fakeAPI serves the handful of endpoints the app exercises and records
// the last form body it received per path.
type fakeAPI struct {
	mu        map[string]url.Values // path → last form
	responses map[string]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		mu: map[string]url.Values{},
		responses: map[string]string{
			"/oauth/access_token":           "oauth_token=tok&oauth_token_secret=sec",
			"/statuses/home_timeline.json":  "[" + statusJSON + "]",
			"/statuses/user_timeline.json":  "[" + statusJSON + "]",
			"/statuses/mentions.json":       "[]",
			"/statuses/show.json":           statusJSON,
			"/statuses/update.json":         statusJSON,
			"/statuses/destroy.json":        statusJSON,
			"/trends/list.json":             `{"as_of": "now", "trends": []}`,
			"/saved_searches/list.json":     `[]`,
		},
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	f.mu[r.URL.Path] = r.Form

	body, ok := f.responses[r.URL.Path]
	if !ok {
		http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
		return
	}
	if r.URL.Path != "/oauth/access_token" {
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write([]byte(body))
}

func newTestApp(t *testing.T, api *fakeAPI) (*App, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	store := &config.Store{Dir: t.TempDir()}
	app, err := Load(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	app.BaseURL = srv.URL
	app.OAuthBaseURL = srv.URL
	return app, srv
}

func withAccount(t *testing.T, app *App, name string) {
	t.Helper()
	app.Accounts[name] = config.Credential{
		ConsumerKey:      "ck",
		ConsumerSecret:   "cs",
		OAuthToken:       "ot",
		OAuthTokenSecret: "os",
	}
	app.Config.ActiveUser = name
	if err := app.Store.SaveConfig(app.Config); err != nil {
		t.Fatal(err)
	}
	if err := app.Store.SaveAccounts(app.Accounts); err != nil {
		t.Fatal(err)
	}
}

func TestLoginStoresCredentialAndActivates(t *testing.T) {
	api := newFakeAPI()
	app, _ := newTestApp(t, api)

	if err := app.Login(context.Background(), "alice", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	form := api.mu["/oauth/access_token"]
	if form.Get("x_auth_username") != "alice" || form.Get("x_auth_mode") != "client_auth" {
		t.Errorf("xauth form = %v", form)
	}

	// Both documents persisted.
	cfg, err := app.Store.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActiveUser != "alice" {
		t.Errorf("ActiveUser = %q, want %q", cfg.ActiveUser, "alice")
	}
	accounts, err := app.Store.LoadAccounts()
	if err != nil {
		t.Fatal(err)
	}
	cred, ok := accounts["alice"]
	if !ok {
		t.Fatalf("accounts = %v, want alice entry", accounts)
	}
	if cred.OAuthToken != "tok" || cred.OAuthTokenSecret != "sec" {
		t.Errorf("stored credential = %+v", cred)
	}
	if cred.ConsumerKey != config.DefaultConsumerKey {
		t.Errorf("ConsumerKey = %q, want default consumer key", cred.ConsumerKey)
	}
}

func TestLoginRejected(t *testing.T) {
	api := newFakeAPI()
	delete(api.responses, "/oauth/access_token")
	app, _ := newTestApp(t, api)

	err := app.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(app.Accounts) != 0 {
		t.Errorf("accounts = %v, want none stored after failed login", app.Accounts)
	}
}

func TestFetchTimelineUnauthenticated(t *testing.T) {
	app, _ := newTestApp(t, newFakeAPI())

	_, err := app.FetchTimeline(context.Background(), TimelineHome, "")
	if !errors.Is(err, account.ErrUnauthenticated) {
		t.Fatalf("error = %v, want ErrUnauthenticated", err)
	}
}

func TestFetchTimelinePersistsRepointedActiveUser(t *testing.T) {
	app, _ := newTestApp(t, newFakeAPI())
	withAccount(t, app, "bob")
	app.Config.ActiveUser = "alice" // stale
	if err := app.Store.SaveConfig(app.Config); err != nil {
		t.Fatal(err)
	}

	statuses, err := app.FetchTimeline(context.Background(), TimelineHome, "")
	if err != nil {
		t.Fatalf("FetchTimeline: %v", err)
	}
	if len(statuses) != 1 || statuses[0].ID != "s1" {
		t.Errorf("statuses = %+v", statuses)
	}

	cfg, err := app.Store.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActiveUser != "bob" {
		t.Errorf("persisted ActiveUser = %q, want %q", cfg.ActiveUser, "bob")
	}
}

func TestFetchTimelineKinds(t *testing.T) {
	api := newFakeAPI()
	api.responses["/statuses/public_timeline.json"] = "[]"
	api.responses["/statuses/context_timeline.json"] = "[]"
	api.responses["/search/public_timeline.json"] = "[]"

	app, _ := newTestApp(t, api)
	withAccount(t, app, "alice")

	for _, tc := range []struct {
		kind     TimelineKind
		arg      string
		wantPath string
		wantKey  string
		wantVal  string
	}{
		{TimelineHome, "", "/statuses/home_timeline.json", "count", "10"},
		{TimelineMentions, "", "/statuses/mentions.json", "count", "10"},
		{TimelineMe, "", "/statuses/user_timeline.json", "count", "10"},
		{TimelinePublic, "", "/statuses/public_timeline.json", "count", "10"},
		{TimelineUser, "carol", "/statuses/user_timeline.json", "id", "carol"},
		{TimelineContext, "s1", "/statuses/context_timeline.json", "id", "s1"},
		{TimelineSearch, "golang", "/search/public_timeline.json", "q", "golang"},
	} {
		t.Run(string(tc.kind), func(t *testing.T) {
			if _, err := app.FetchTimeline(context.Background(), tc.kind, tc.arg); err != nil {
				t.Fatalf("FetchTimeline(%s): %v", tc.kind, err)
			}
			form, ok := api.mu[tc.wantPath]
			if !ok {
				t.Fatalf("no request hit %s", tc.wantPath)
			}
			if form.Get(tc.wantKey) != tc.wantVal {
				t.Errorf("%s = %q, want %q", tc.wantKey, form.Get(tc.wantKey), tc.wantVal)
			}
		})
	}
}

func TestReplyComposesMention(t *testing.T) {
	api := newFakeAPI()
	app, _ := newTestApp(t, api)
	withAccount(t, app, "bob")

	if err := app.Reply(context.Background(), "s1", "nice one"); err != nil {
		t.Fatalf("Reply: %v", err)
	}
	form := api.mu["/statuses/update.json"]
	if got := form.Get("status"); got != "@Alice nice one" {
		t.Errorf("status = %q, want %q", got, "@Alice nice one")
	}
	if got := form.Get("in_reply_to_status_id"); got != "s1" {
		t.Errorf("in_reply_to_status_id = %q, want %q", got, "s1")
	}
}

func TestRepostComposesPlainText(t *testing.T) {
	api := newFakeAPI()
	api.responses["/statuses/show.json"] = `{"id": "s1",
		"text": "so @<a href=\"http://fanfou.com/u2\" class=\"former\">bob</a> cool",
		"created_at": "Thu Aug 05 09:00:00 +0000 2021",
		"user": {"id": "u1", "name": "Alice"}}`
	app, _ := newTestApp(t, api)
	withAccount(t, app, "carol")

	if err := app.Repost(context.Background(), "s1", "wow"); err != nil {
		t.Fatalf("Repost: %v", err)
	}
	form := api.mu["/statuses/update.json"]
	if got := form.Get("status"); got != "wow 转@Alice so @bob cool" {
		t.Errorf("status = %q, want %q", got, "wow 转@Alice so @bob cool")
	}
	if got := form.Get("repost_status_id"); got != "s1" {
		t.Errorf("repost_status_id = %q, want %q", got, "s1")
	}
}

func TestUndoDeletesLatest(t *testing.T) {
	api := newFakeAPI()
	app, _ := newTestApp(t, api)
	withAccount(t, app, "alice")

	if err := app.Undo(context.Background()); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	form := api.mu["/statuses/destroy.json"]
	if got := form.Get("id"); got != "s1" {
		t.Errorf("destroy id = %q, want %q", got, "s1")
	}
}

func TestTrendsEmpty(t *testing.T) {
	app, _ := newTestApp(t, newFakeAPI())
	withAccount(t, app, "alice")

	_, err := app.Trends(context.Background())
	if !errors.Is(err, ErrNoTrends) {
		t.Fatalf("error = %v, want ErrNoTrends", err)
	}
}

func TestTrendsMergesSavedSearches(t *testing.T) {
	api := newFakeAPI()
	api.responses["/trends/list.json"] = `{"as_of": "now", "trends": [{"name": "Go", "query": "Go"}]}`
	api.responses["/saved_searches/list.json"] = `[{"id": 1, "name": "gophers", "query": "gophers"}]`
	app, _ := newTestApp(t, api)
	withAccount(t, app, "alice")

	trends, err := app.Trends(context.Background())
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(trends) != 2 || trends[0].Name != "Go" || trends[1].Name != "gophers" {
		t.Errorf("trends = %+v", trends)
	}
}

func TestRawNormalizesPath(t *testing.T) {
	api := newFakeAPI()
	api.responses["/users/show.json"] = `{"id": "u1"}`
	app, _ := newTestApp(t, api)
	withAccount(t, app, "alice")

	raw, err := app.Raw(context.Background(), "get", "users/show.json")
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if !strings.Contains(string(raw), `"u1"`) {
		t.Errorf("raw = %s", raw)
	}
}

func TestConfigurePersists(t *testing.T) {
	app, _ := newTestApp(t, newFakeAPI())

	count := 25
	timeTag := false
	if err := app.Configure(Settings{DisplayCount: &count, TimeTag: &timeTag}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	cfg, err := app.Store.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DisplayCount != 25 {
		t.Errorf("DisplayCount = %d, want 25", cfg.DisplayCount)
	}
	if cfg.TimeTag {
		t.Error("TimeTag = true, want false")
	}

	bad := -1
	if err := app.Configure(Settings{DisplayCount: &bad}); err == nil {
		t.Error("expected error for non-positive display count")
	}
}

func TestSetColors(t *testing.T) {
	app, _ := newTestApp(t, newFakeAPI())

	if err := app.SetColors(map[string]string{"name": "magenta.bold"}); err != nil {
		t.Fatalf("SetColors: %v", err)
	}
	cfg, err := app.Store.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ColorScheme["name"] != "magenta.bold" {
		t.Errorf("name role = %q, want %q", cfg.ColorScheme["name"], "magenta.bold")
	}

	if err := app.SetColors(map[string]string{"sparkle": "red"}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestLogoutThroughApp(t *testing.T) {
	app, _ := newTestApp(t, newFakeAPI())
	withAccount(t, app, "bob")

	removed, err := app.Logout()
	if err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if removed != "bob" {
		t.Errorf("removed = %q, want %q", removed, "bob")
	}
	accounts, err := app.Store.LoadAccounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 0 {
		t.Errorf("persisted accounts = %v, want empty", accounts)
	}

	// Logging out with nothing active is a no-op.
	removed, err = app.Logout()
	if err != nil || removed != "" {
		t.Errorf("second Logout = (%q, %v), want no-op", removed, err)
	}
}

func TestSwitchThroughApp(t *testing.T) {
	app, _ := newTestApp(t, newFakeAPI())
	withAccount(t, app, "alice")
	withAccount(t, app, "bob")

	active, err := app.Switch("Alice")
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if active != "alice" {
		t.Errorf("active = %q, want %q", active, "alice")
	}
	cfg, err := app.Store.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActiveUser != "alice" {
		t.Errorf("persisted ActiveUser = %q, want %q", cfg.ActiveUser, "alice")
	}

	var notFound *account.NotFoundError
	if _, err := app.Switch("carol"); !errors.As(err, &notFound) {
		t.Errorf("Switch(carol) error = %v, want NotFoundError", err)
	}
}
