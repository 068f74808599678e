package account

import (
	"errors"
	"testing"

	"github.com/nofan-cli/nofan/internal/config"
)

func cred(token string) config.Credential {
	return config.Credential{
		ConsumerKey:      "ck",
		ConsumerSecret:   "cs",
		OAuthToken:       token,
		OAuthTokenSecret: token + "-secret",
	}
}

func TestResolveActiveEmptyStore(t *testing.T) {
	cfg := config.Default()

	_, _, err := ResolveActive(&cfg, config.Accounts{})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("ResolveActive() error = %v, want ErrUnauthenticated", err)
	}
}

func TestResolveActiveMatch(t *testing.T) {
	cfg := config.Default()
	cfg.ActiveUser = "bob"
	accounts := config.Accounts{"bob": cred("t1"), "alice": cred("t2")}

	got, changed, err := ResolveActive(&cfg, accounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("changed = true, want false for direct match")
	}
	if got.OAuthToken != "t1" {
		t.Errorf("resolved token = %q, want %q", got.OAuthToken, "t1")
	}
}

func TestResolveActiveCaseInsensitive(t *testing.T) {
	cfg := config.Default()
	cfg.ActiveUser = "Bob"
	accounts := config.Accounts{"bob": cred("t1")}

	got, changed, err := ResolveActive(&cfg, accounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("changed = false, want true when the pointer is rewritten to the stored key")
	}
	if cfg.ActiveUser != "bob" {
		t.Errorf("ActiveUser = %q, want %q", cfg.ActiveUser, "bob")
	}
	if got.OAuthToken != "t1" {
		t.Errorf("resolved token = %q, want %q", got.OAuthToken, "t1")
	}
}

func TestResolveActiveStalePointer(t *testing.T) {
	cfg := config.Default()
	cfg.ActiveUser = "alice" // stale, not in the store
	accounts := config.Accounts{"bob": cred("t1")}

	got, changed, err := ResolveActive(&cfg, accounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("changed = false, want true for fallback selection")
	}
	if cfg.ActiveUser != "bob" {
		t.Errorf("ActiveUser = %q, want %q", cfg.ActiveUser, "bob")
	}
	if got.OAuthToken != "t1" {
		t.Errorf("resolved token = %q, want %q", got.OAuthToken, "t1")
	}
}

func TestResolveActiveIdempotent(t *testing.T) {
	cfg := config.Default()
	accounts := config.Accounts{"carol": cred("t3"), "alice": cred("t1")}

	first, _, err := ResolveActive(&cfg, accounts)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, changed, err := ResolveActive(&cfg, accounts)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if changed {
		t.Error("second resolve reported changed = true, want false")
	}
	if first != second {
		t.Errorf("resolve not idempotent: %v then %v", first, second)
	}
	if cfg.ActiveUser != "alice" {
		t.Errorf("ActiveUser = %q, want deterministic first key %q", cfg.ActiveUser, "alice")
	}
}

func TestSwitchNamed(t *testing.T) {
	for _, tc := range []struct {
		name       string
		target     string
		wantActive string
		wantErr    bool
	}{
		{"ExactMatch", "bob", "bob", false},
		{"CaseInsensitive", "Alice", "alice", false},
		{"Unknown", "carol", "", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			accounts := config.Accounts{"alice": cred("t1"), "bob": cred("t2")}

			err := Switch(&cfg, accounts, tc.target)
			if tc.wantErr {
				var notFound *NotFoundError
				if !errors.As(err, &notFound) {
					t.Fatalf("Switch(%q) error = %v, want NotFoundError", tc.target, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Switch(%q): %v", tc.target, err)
			}
			if cfg.ActiveUser != tc.wantActive {
				t.Errorf("ActiveUser = %q, want %q", cfg.ActiveUser, tc.wantActive)
			}
		})
	}
}

func TestSwitchUnnamed(t *testing.T) {
	t.Run("SingleOtherAccount", func(t *testing.T) {
		cfg := config.Default()
		cfg.ActiveUser = "alice"
		accounts := config.Accounts{"alice": cred("t1"), "bob": cred("t2")}

		if err := Switch(&cfg, accounts, ""); err != nil {
			t.Fatalf("Switch: %v", err)
		}
		if cfg.ActiveUser != "bob" {
			t.Errorf("ActiveUser = %q, want %q", cfg.ActiveUser, "bob")
		}
	})

	t.Run("NoOtherAccount", func(t *testing.T) {
		cfg := config.Default()
		cfg.ActiveUser = "alice"
		accounts := config.Accounts{"alice": cred("t1")}

		if err := Switch(&cfg, accounts, ""); !errors.Is(err, ErrNoMoreAccounts) {
			t.Fatalf("Switch() error = %v, want ErrNoMoreAccounts", err)
		}
	})

	t.Run("Ambiguous", func(t *testing.T) {
		cfg := config.Default()
		cfg.ActiveUser = "alice"
		accounts := config.Accounts{"alice": cred("t1"), "bob": cred("t2"), "carol": cred("t3")}

		err := Switch(&cfg, accounts, "")
		var choose *ChooseError
		if !errors.As(err, &choose) {
			t.Fatalf("Switch() error = %v, want ChooseError", err)
		}
		if len(choose.Candidates) != 2 {
			t.Errorf("Candidates = %v, want 2 entries", choose.Candidates)
		}
	})
}

func TestLogout(t *testing.T) {
	t.Run("LastAccount", func(t *testing.T) {
		cfg := config.Default()
		cfg.ActiveUser = "bob"
		accounts := config.Accounts{"bob": cred("t1")}

		removed := Logout(&cfg, accounts)
		if removed != "bob" {
			t.Errorf("removed = %q, want %q", removed, "bob")
		}
		if len(accounts) != 0 {
			t.Errorf("accounts = %v, want empty", accounts)
		}
		if cfg.ActiveUser != "" {
			t.Errorf("ActiveUser = %q, want unset", cfg.ActiveUser)
		}
	})

	t.Run("ActivatesFirstRemaining", func(t *testing.T) {
		cfg := config.Default()
		cfg.ActiveUser = "bob"
		accounts := config.Accounts{"bob": cred("t1"), "carol": cred("t2"), "alice": cred("t3")}

		removed := Logout(&cfg, accounts)
		if removed != "bob" {
			t.Errorf("removed = %q, want %q", removed, "bob")
		}
		if cfg.ActiveUser != "alice" {
			t.Errorf("ActiveUser = %q, want %q", cfg.ActiveUser, "alice")
		}
	})

	t.Run("NothingActive", func(t *testing.T) {
		cfg := config.Default()
		accounts := config.Accounts{"bob": cred("t1")}

		if removed := Logout(&cfg, accounts); removed != "" {
			t.Errorf("removed = %q, want empty", removed)
		}
		if len(accounts) != 1 {
			t.Errorf("accounts = %v, want untouched", accounts)
		}
	})
}
