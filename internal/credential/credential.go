// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credential assembles the API key used to authenticate requests
// and tracks its expiration state.
//
// A full key has the form "ask_live_<identifier>_<secret>". Only the
// identifier is persisted in the config file; the secret lives in the OS
// vault and the two are recombined at request time. The ASSAY_API_KEY
// environment variable, when set, supplies the whole key verbatim and
// bypasses both stores.
package credential

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/assaylabs/assay/internal/keyring"
	"github.com/assaylabs/assay/pkg/types"
)

// KeyPrefix is the fixed prefix of every live API key.
const KeyPrefix = "ask_live_"

// EnvAPIKey supplies a full API key, overriding config and vault.
const EnvAPIKey = "ASSAY_API_KEY"

// ExpiryWarningWindow is how close to expiry a key may get before commands
// start warning about it.
const ExpiryWarningWindow = 30 * time.Minute

// Resolver produces the authoritative API key from the environment, the
// config document, and the secret vault, in that priority order.
type Resolver struct {
	Config  types.Config
	Secrets keyring.Store

	// Getenv is swapped in tests; nil means os.Getenv.
	Getenv func(string) string
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv != nil {
		return r.Getenv(key)
	}
	return os.Getenv(key)
}

// APIKey resolves the key, or returns ok=false when no credential can be
// assembled. Resolution order: ASSAY_API_KEY verbatim; else config key
// identifier plus vault secret recombined. A config without a key
// identifier short-circuits without touching the vault.
func (r *Resolver) APIKey() (key string, ok bool) {
	if env := r.getenv(EnvAPIKey); env != "" {
		return env, true
	}
	if r.Config.KeyIdentifier == "" {
		return "", false
	}
	secret, ok := r.Secrets.Get()
	if !ok {
		return "", false
	}
	return KeyPrefix + r.Config.KeyIdentifier + "_" + secret, true
}

// Expiration describes the state of a key's expiration timestamp.
type Expiration struct {
	// Expired means the key is past its expiration; requests are refused
	// client-side before reaching the network.
	Expired bool
	// ExpiringSoon means the key expires within ExpiryWarningWindow;
	// advisory only, the request proceeds.
	ExpiringSoon bool
	// Message is remediation or warning text for the user, empty when both
	// flags are false.
	Message string
}

// CheckExpiration classifies an RFC 3339 expiration timestamp against now.
// An empty or unparseable timestamp yields the zero Expiration.
func CheckExpiration(expiresAt string, now time.Time) Expiration {
	if expiresAt == "" {
		return Expiration{}
	}
	t, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return Expiration{}
	}

	if !now.Before(t) {
		return Expiration{
			Expired: true,
			Message: "API key has expired. Run 'assay auth login' to authenticate with a new key.",
		}
	}
	if remaining := t.Sub(now); remaining < ExpiryWarningWindow {
		return Expiration{
			ExpiringSoon: true,
			Message:      fmt.Sprintf("API key expires in %s. Run 'assay auth login' to rotate it.", remaining.Round(time.Minute)),
		}
	}
	return Expiration{}
}

// ValidateKey checks the lexical shape of a pasted key before any network
// call: the live prefix followed by at least an identifier and a secret
// segment.
func ValidateKey(key string) error {
	if !strings.HasPrefix(key, KeyPrefix) {
		return fmt.Errorf("key must start with %q", KeyPrefix)
	}
	rest := strings.TrimPrefix(key, KeyPrefix)
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("key must have the form %s<identifier>_<secret>", KeyPrefix)
	}
	return nil
}

// SplitKey separates a validated key into its identifier and secret
// portions. The identifier is the first segment after the prefix; the
// remainder is the secret and may itself contain underscores.
func SplitKey(key string) (identifier, secret string, err error) {
	if err := ValidateKey(key); err != nil {
		return "", "", err
	}
	rest := strings.TrimPrefix(key, KeyPrefix)
	parts := strings.SplitN(rest, "_", 2)
	return parts[0], parts[1], nil
}
