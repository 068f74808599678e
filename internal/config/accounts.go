package config

import (
	"sort"
	"strings"
)

// Credential is the four-tuple needed to authenticate as one account.
// All four fields are populated once a login succeeds.
type Credential struct {
	ConsumerKey      string `json:"consumerKey"`
	ConsumerSecret   string `json:"consumerSecret"`
	OAuthToken       string `json:"oauthToken"`
	OAuthTokenSecret string `json:"oauthTokenSecret"`
}

// Accounts maps account name to its stored credential. Keys are
// case-sensitive as stored, but lookups are case-insensitive.
type Accounts map[string]Credential

// Find returns the stored key matching name case-insensitively.
func (a Accounts) Find(name string) (string, bool) {
	if _, ok := a[name]; ok {
		return name, true
	}
	for key := range a {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// Names returns the stored account names in sorted order. Go map iteration
// is randomized, so the sorted order doubles as the deterministic
// "first account" fallback order.
func (a Accounts) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
