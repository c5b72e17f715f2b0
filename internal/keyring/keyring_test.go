// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keyring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestSystemStore_RoundTrip(t *testing.T) {
	gokeyring.MockInit()
	s := NewSystemStore()

	assert.True(t, s.Available())
	require.NoError(t, s.Set("s3cret"))

	secret, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "s3cret", secret)

	s.Delete()
	_, ok = s.Get()
	assert.False(t, ok)
}

func TestSystemStore_GetAbsent(t *testing.T) {
	gokeyring.MockInit()
	s := NewSystemStore()

	secret, ok := s.Get()
	assert.False(t, ok)
	assert.Empty(t, secret)
}

func TestSystemStore_Unavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no secret service on this host"))
	s := NewSystemStore()

	assert.False(t, s.Available())
	assert.ErrorIs(t, s.Set("s3cret"), ErrUnavailable)

	_, ok := s.Get()
	assert.False(t, ok)

	// Best effort, must not panic.
	s.Delete()
}

func TestSystemStore_ProbeIsCached(t *testing.T) {
	gokeyring.MockInit()
	s := NewSystemStore()
	require.True(t, s.Available())

	// Breaking the vault after the probe does not flip availability for
	// this store; the probe result is cached per process lifetime.
	gokeyring.MockInitWithError(errors.New("vault went away"))
	assert.True(t, s.Available())
}
