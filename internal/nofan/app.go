// Package nofan implements the operations the CLI dispatches to: account
// lifecycle, timeline fetching, posting, and the raw API passthrough. All
// state is threaded explicitly; nothing lives on process globals.
package nofan

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nofan-cli/nofan/internal/account"
	"github.com/nofan-cli/nofan/internal/config"
	"github.com/nofan-cli/nofan/internal/fanfou"
	"github.com/nofan-cli/nofan/internal/ui"
)

// App holds the loaded documents and the collaborators one CLI invocation
// needs. Build it with Load.
type App struct {
	Store    *config.Store
	Config   config.Config
	Accounts config.Accounts
	Logger   *slog.Logger

	// Verbose is the effective verbose mode: the config value OR'd with
	// the -v flag.
	Verbose bool

	// Endpoint overrides for tests.
	BaseURL      string
	OAuthBaseURL string
}

// Load reads both documents from the store.
func Load(store *config.Store, logger *slog.Logger) (*App, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	accounts, err := store.LoadAccounts()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		Store:    store,
		Config:   cfg,
		Accounts: accounts,
		Logger:   logger,
		Verbose:  cfg.Verbose,
	}, nil
}

func (a *App) clientOptions(cred config.Credential) fanfou.Options {
	return fanfou.Options{
		ConsumerKey:      cred.ConsumerKey,
		ConsumerSecret:   cred.ConsumerSecret,
		OAuthToken:       cred.OAuthToken,
		OAuthTokenSecret: cred.OAuthTokenSecret,
		APIDomain:        a.Config.APIDomain,
		OAuthDomain:      a.Config.OAuthDomain,
		UseSSL:           a.Config.UseSSL,
		BaseURL:          a.BaseURL,
		OAuthBaseURL:     a.OAuthBaseURL,
		Logger:           a.Logger,
	}
}

// client resolves the active credential and builds an authenticated API
// client. When resolution rewrote the active-user pointer the config is
// persisted before any request goes out.
func (a *App) client() (*fanfou.Client, error) {
	cred, changed, err := account.ResolveActive(&a.Config, a.Accounts)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := a.Store.SaveConfig(a.Config); err != nil {
			return nil, err
		}
	}
	return fanfou.NewClient(a.clientOptions(cred)), nil
}

// countParams returns the displayCount as request parameters.
func (a *App) countParams() fanfou.Params {
	return fanfou.Params{"count": strconv.Itoa(a.Config.DisplayCount)}
}

// RenderOptions assembles renderer options from the configuration and the
// terminal's capabilities.
func (a *App) RenderOptions() ui.RenderOptions {
	return ui.RenderOptions{
		Verbose:    a.Verbose,
		TimeTag:    a.Config.TimeTag,
		PhotoTag:   a.Config.PhotoTag,
		Scheme:     a.Config.ColorScheme,
		NoColor:    !ui.ShouldUseColor(),
		Hyperlinks: ui.SupportsHyperlinks(),
	}
}

// Login exchanges username/password for a long-lived token, stores the
// credential under username, and makes it the active account.
func (a *App) Login(ctx context.Context, username, password string) error {
	opts := a.clientOptions(config.Credential{
		ConsumerKey:    a.Config.APICredentials.ConsumerKey,
		ConsumerSecret: a.Config.APICredentials.ConsumerSecret,
	})
	token, err := fanfou.XAuth(ctx, opts, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	a.Accounts[username] = config.Credential{
		ConsumerKey:      a.Config.APICredentials.ConsumerKey,
		ConsumerSecret:   a.Config.APICredentials.ConsumerSecret,
		OAuthToken:       token.OAuthToken,
		OAuthTokenSecret: token.OAuthTokenSecret,
	}
	a.Config.ActiveUser = username
	if err := a.Store.SaveConfig(a.Config); err != nil {
		return err
	}
	return a.Store.SaveAccounts(a.Accounts)
}

// Logout removes the active account and activates the first remaining one.
// It reports the removed name, empty when nothing was active.
func (a *App) Logout() (string, error) {
	removed := account.Logout(&a.Config, a.Accounts)
	if removed == "" {
		return "", nil
	}
	if err := a.Store.SaveConfig(a.Config); err != nil {
		return "", err
	}
	return removed, a.Store.SaveAccounts(a.Accounts)
}

// Switch activates the named account (or the only other one when name is
// empty) and persists the pointer.
func (a *App) Switch(name string) (string, error) {
	if err := account.Switch(&a.Config, a.Accounts, name); err != nil {
		return "", err
	}
	return a.Config.ActiveUser, a.Store.SaveConfig(a.Config)
}

// Settings carries the optional fields the config command may update.
// Nil pointer fields mean "don't change".
type Settings struct {
	ConsumerKey    *string
	ConsumerSecret *string
	DisplayCount   *int
	TimeTag        *bool
	PhotoTag       *bool
	UseSSL         *bool
	Verbose        *bool
	APIDomain      *string
	OAuthDomain    *string
}

// Configure applies the given settings and persists the configuration.
func (a *App) Configure(s Settings) error {
	if s.ConsumerKey != nil {
		a.Config.APICredentials.ConsumerKey = *s.ConsumerKey
	}
	if s.ConsumerSecret != nil {
		a.Config.APICredentials.ConsumerSecret = *s.ConsumerSecret
	}
	if s.DisplayCount != nil {
		if *s.DisplayCount <= 0 {
			return fmt.Errorf("display count must be positive, got %d", *s.DisplayCount)
		}
		a.Config.DisplayCount = *s.DisplayCount
	}
	if s.TimeTag != nil {
		a.Config.TimeTag = *s.TimeTag
	}
	if s.PhotoTag != nil {
		a.Config.PhotoTag = *s.PhotoTag
	}
	if s.UseSSL != nil {
		a.Config.UseSSL = *s.UseSSL
	}
	if s.Verbose != nil {
		a.Config.Verbose = *s.Verbose
	}
	if s.APIDomain != nil {
		a.Config.APIDomain = *s.APIDomain
	}
	if s.OAuthDomain != nil {
		a.Config.OAuthDomain = *s.OAuthDomain
	}
	return a.Store.SaveConfig(a.Config)
}

// SetColors updates color scheme roles and persists the configuration.
// Unknown roles are rejected rather than silently stored.
func (a *App) SetColors(updates map[string]string) error {
	valid := config.DefaultColorScheme()
	for role, descriptor := range updates {
		if _, ok := valid[role]; !ok {
			return fmt.Errorf("unknown color role %q", role)
		}
		a.Config.ColorScheme[role] = descriptor
	}
	return a.Store.SaveConfig(a.Config)
}
