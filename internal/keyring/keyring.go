// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keyring adapts the OS credential vault for storing the secret
// portion of the API key. A single entry is used, keyed by a fixed
// service/account pair.
//
// Retrieval and deletion swallow vault errors: callers only ever observe
// "present" or "absent". Hosts without a usable vault (headless Linux
// without a secret service, stripped containers) degrade to the
// ASSAY_API_KEY environment variable instead of failing commands.
package keyring

import (
	"errors"
	"sync"

	gokeyring "github.com/zalando/go-keyring"
)

const (
	// ServiceName identifies assay entries in the OS vault.
	ServiceName = "assay-cli"
	// AccountName is the key under which the secret portion is stored.
	AccountName = "api-key-secret"
)

// ErrUnavailable is returned by Set when the vault cannot be used on this
// host.
var ErrUnavailable = errors.New("system keyring unavailable")

// Store is the minimal vault surface the credential resolver needs.
// SystemStore implements it against the OS vault; tests substitute fakes.
type Store interface {
	// Available reports whether the vault is usable on this host.
	Available() bool
	// Set writes the secret, replacing any previous value.
	Set(secret string) error
	// Get returns the stored secret. ok is false when the secret is absent
	// or the vault failed; the two are deliberately indistinguishable.
	Get() (secret string, ok bool)
	// Delete removes the stored secret. Best effort; errors are swallowed.
	Delete()
}

// SystemStore is the OS vault adapter. The availability probe runs once per
// process and is cached; construct with NewSystemStore and pass it down
// explicitly rather than reaching for a package global.
type SystemStore struct {
	probeOnce sync.Once
	available bool
}

// NewSystemStore returns an adapter for the OS vault. No vault access
// happens until the first operation.
func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

// Available probes the vault with a best-effort read. A "not found" error
// still means the vault answered, so it counts as available. The result is
// cached for the process lifetime.
func (s *SystemStore) Available() bool {
	s.probeOnce.Do(func() {
		_, err := gokeyring.Get(ServiceName, AccountName)
		s.available = err == nil || errors.Is(err, gokeyring.ErrNotFound)
	})
	return s.available
}

// Set stores the secret. Returns ErrUnavailable when the vault is unusable,
// or the underlying write error otherwise.
func (s *SystemStore) Set(secret string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if err := gokeyring.Set(ServiceName, AccountName, secret); err != nil {
		return err
	}
	return nil
}

// Get returns the stored secret, or ok=false on any failure.
func (s *SystemStore) Get() (string, bool) {
	if !s.Available() {
		return "", false
	}
	secret, err := gokeyring.Get(ServiceName, AccountName)
	if err != nil || secret == "" {
		return "", false
	}
	return secret, true
}

// Delete removes the stored secret. Failures, including "not found", are
// swallowed.
func (s *SystemStore) Delete() {
	if !s.Available() {
		return
	}
	_ = gokeyring.Delete(ServiceName, AccountName)
}
