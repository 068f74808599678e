// Package config owns the two persisted nofan documents: the global
// configuration (config.json) and the account store (account.json). Both
// live in a single per-user directory and are written as indented JSON so
// they stay hand-editable.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Baked-in application credentials, used until the user configures their own.
const (
	DefaultConsumerKey    = "13456aa784cdf7688af69e85d482e011"
	DefaultConsumerSecret = "f75c02df373232732b69354ecfbcabea"
)

// APICredentials is the application-level OAuth consumer pair.
type APICredentials struct {
	ConsumerKey    string `json:"consumerKey"`
	ConsumerSecret string `json:"consumerSecret"`
}

// ColorScheme maps a semantic role (name, text, at, link, tag, photo,
// timeago, highlight) to a chalk-pipe style descriptor such as
// "dim.green.italic" or "#cccccc".
type ColorScheme map[string]string

// Config is the global configuration record. Every field is populated after
// Load; missing fields fall back to the built-in defaults.
type Config struct {
	ActiveUser     string         `json:"activeUser,omitempty"`
	APICredentials APICredentials `json:"apiCredentials"`
	DisplayCount   int            `json:"displayCount"`
	TimeTag        bool           `json:"timeTag"`
	PhotoTag       bool           `json:"photoTag"`
	UseSSL         bool           `json:"useSsl"`
	Verbose        bool           `json:"verbose"`
	APIDomain      string         `json:"apiDomain"`
	OAuthDomain    string         `json:"oauthDomain"`
	ColorScheme    ColorScheme    `json:"colorScheme"`
}

// Default returns the fully populated baseline configuration.
func Default() Config {
	return Config{
		APICredentials: APICredentials{
			ConsumerKey:    DefaultConsumerKey,
			ConsumerSecret: DefaultConsumerSecret,
		},
		DisplayCount: 10,
		TimeTag:      true,
		PhotoTag:     true,
		UseSSL:       true,
		APIDomain:    "api.fanfou.com",
		OAuthDomain:  "fanfou.com",
		ColorScheme:  DefaultColorScheme(),
	}
}

// DefaultColorScheme returns the stock palette.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		"name":      "green",
		"text":      "#cccccc",
		"at":        "cyan",
		"link":      "cyan.underline",
		"tag":       "orange.bold",
		"photo":     "grey",
		"timeago":   "dim.green.italic",
		"highlight": "bgYellow.black",
	}
}

// normalize backfills any field a hand-edited document may have zeroed out,
// so callers never observe a partially populated Config.
func (c *Config) normalize() {
	def := Default()
	if c.APICredentials.ConsumerKey == "" {
		c.APICredentials.ConsumerKey = def.APICredentials.ConsumerKey
	}
	if c.APICredentials.ConsumerSecret == "" {
		c.APICredentials.ConsumerSecret = def.APICredentials.ConsumerSecret
	}
	if c.DisplayCount <= 0 {
		c.DisplayCount = def.DisplayCount
	}
	if c.APIDomain == "" {
		c.APIDomain = def.APIDomain
	}
	if c.OAuthDomain == "" {
		c.OAuthDomain = def.OAuthDomain
	}
	if c.ColorScheme == nil {
		c.ColorScheme = ColorScheme{}
	}
	for role, style := range def.ColorScheme {
		if _, ok := c.ColorScheme[role]; !ok {
			c.ColorScheme[role] = style
		}
	}
}

// CorruptStateError reports a document that exists but cannot be parsed.
// This is deliberately distinct from "file absent" (which yields defaults):
// silently replacing a corrupt store would discard the user's accounts.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt state file %s: %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

// Store reads and writes the nofan documents under a base directory.
// The directory is injected rather than hard-coded so tests can point it at
// a scratch location.
type Store struct {
	Dir string
}

// DefaultDir returns ~/.nofan, or ~/.nofan-test when NOFAN_ENV=test so test
// runs never clobber real user state.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	name := ".nofan"
	if os.Getenv("NOFAN_ENV") == "test" {
		name = ".nofan-test"
	}
	return filepath.Join(home, name), nil
}

func (s *Store) configPath() string  { return filepath.Join(s.Dir, "config.json") }
func (s *Store) accountPath() string { return filepath.Join(s.Dir, "account.json") }

// LoadConfig reads config.json merged over the defaults. A missing file is
// not an error; a malformed one surfaces as CorruptStateError.
func (s *Store) LoadConfig() (Config, error) {
	cfg := Default()
	if err := readJSON(s.configPath(), &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Default(), err
	}
	cfg.normalize()
	return cfg, nil
}

// SaveConfig writes config.json, creating the store directory if needed.
func (s *Store) SaveConfig(cfg Config) error {
	return s.writeJSON(s.configPath(), cfg)
}

// LoadAccounts reads account.json with the same absent/corrupt semantics as
// LoadConfig, returning an empty store when the file does not exist.
func (s *Store) LoadAccounts() (Accounts, error) {
	accounts := Accounts{}
	if err := readJSON(s.accountPath(), &accounts); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Accounts{}, nil
		}
		return nil, err
	}
	if accounts == nil {
		accounts = Accounts{}
	}
	return accounts, nil
}

// SaveAccounts writes account.json.
func (s *Store) SaveAccounts(accounts Accounts) error {
	return s.writeJSON(s.accountPath(), accounts)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptStateError{Path: path, Err: err}
	}
	return nil
}

func (s *Store) writeJSON(path string, v any) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
