// Package account resolves which stored credential backs an outgoing
// request, and keeps the active-user pointer in the configuration consistent
// with the account store.
package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nofan-cli/nofan/internal/config"
)

// ErrUnauthenticated means no account exists to satisfy a request that
// needs credentials.
var ErrUnauthenticated = errors.New("not logged in, please run `nofan login` first")

// ErrNoMoreAccounts means a no-name switch found nothing to switch to.
// Callers treat it as informational rather than a hard failure.
var ErrNoMoreAccounts = errors.New("no more accounts")

// NotFoundError reports a switch target with no stored account.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s needs login", e.Name)
}

// ChooseError is returned by Switch when no name was given and more than
// one candidate exists. The caller decides how to present the choice; the
// resolver itself is name-driven only.
type ChooseError struct {
	Candidates []string
}

func (e *ChooseError) Error() string {
	return fmt.Sprintf("multiple accounts available (%s), pass a name to switch", strings.Join(e.Candidates, ", "))
}

// ResolveActive returns the credential for cfg.ActiveUser, matching stored
// keys case-insensitively. When the pointer is stale or unset it falls back
// to the first account in deterministic (sorted) order and rewrites
// cfg.ActiveUser; changed reports whether that happened so the caller knows
// to persist the config. With no accounts at all it fails with
// ErrUnauthenticated.
func ResolveActive(cfg *config.Config, accounts config.Accounts) (cred config.Credential, changed bool, err error) {
	if cfg.ActiveUser != "" {
		if key, ok := accounts.Find(cfg.ActiveUser); ok {
			if key != cfg.ActiveUser {
				cfg.ActiveUser = key
				changed = true
			}
			return accounts[key], changed, nil
		}
	}
	names := accounts.Names()
	if len(names) == 0 {
		return config.Credential{}, false, ErrUnauthenticated
	}
	cfg.ActiveUser = names[0]
	return accounts[names[0]], true, nil
}

// Switch activates the named account, matching case-insensitively. With an
// empty name it resolves trivially when only one candidate other than the
// current account exists, and returns ChooseError otherwise.
func Switch(cfg *config.Config, accounts config.Accounts, name string) error {
	if name != "" {
		key, ok := accounts.Find(name)
		if !ok {
			return &NotFoundError{Name: name}
		}
		cfg.ActiveUser = key
		return nil
	}

	var candidates []string
	for _, n := range accounts.Names() {
		if n != cfg.ActiveUser {
			candidates = append(candidates, n)
		}
	}
	switch len(candidates) {
	case 0:
		return ErrNoMoreAccounts
	case 1:
		cfg.ActiveUser = candidates[0]
		return nil
	default:
		return &ChooseError{Candidates: candidates}
	}
}

// Logout removes the active account from the store and activates the first
// remaining one, or clears the pointer when none remain. It reports the
// removed name, empty when nothing was active.
func Logout(cfg *config.Config, accounts config.Accounts) string {
	if cfg.ActiveUser == "" {
		return ""
	}
	key, ok := accounts.Find(cfg.ActiveUser)
	if !ok {
		return ""
	}
	delete(accounts, key)
	if names := accounts.Names(); len(names) > 0 {
		cfg.ActiveUser = names[0]
	} else {
		cfg.ActiveUser = ""
	}
	return key
}
