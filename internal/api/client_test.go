// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client whose sleeps are recorded instead of slept
// and whose clock is pinned to now.
func newTestClient(baseURL, key, expiresAt string, now time.Time) (*Client, *[]time.Duration) {
	waits := &[]time.Duration{}
	c := NewClient(baseURL, staticKey(key), expiresAt)
	c.now = func() time.Time { return now }
	c.sleep = func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return c, waits
}

func TestGet_AttachesAPIKeyHeader(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(HeaderAPIKey)
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL, "ask_live_abc123_s3cret", "", time.Now())
	var out struct{}
	require.NoError(t, c.get(context.Background(), "/api/v1/me", nil, &out))
	assert.Equal(t, "ask_live_abc123_s3cret", gotKey)
}

func TestGet_NoCredentialRefusedLocally(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL, "", "", time.Now())
	err := c.get(context.Background(), "/api/v1/me", nil, nil)
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Zero(t, atomic.LoadInt32(&calls), "no network call for a missing credential")
}

func TestGet_ExpiredCredentialRefusedLocally(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour).Format(time.RFC3339)
	c, _ := newTestClient(ts.URL, "ask_live_abc123_s3cret", expired, now)

	err := c.get(context.Background(), "/api/v1/me", nil, nil)
	assert.ErrorIs(t, err, ErrCredentialExpired)
	assert.Zero(t, atomic.LoadInt32(&calls), "no network call for an expired credential")
}

func TestGet_ExpiringSoonProceeds(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	soon := now.Add(10 * time.Minute).Format(time.RFC3339)
	c, _ := newTestClient(ts.URL, "ask_live_abc123_s3cret", soon, now)

	var out struct{}
	assert.NoError(t, c.get(context.Background(), "/api/v1/me", nil, &out))
}

func TestGet_RetriesThenSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"documents":[],"total":0}`)
	}))
	defer ts.Close()

	c, waits := newTestClient(ts.URL, "ask_live_abc123_s3cret", "", time.Now())
	var out struct{}
	require.NoError(t, c.get(context.Background(), "/api/v1/documents", nil, &out))

	// 3 rate-limited attempts, then the 200: 4 total.
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Len(t, *waits, 3)
}

func TestGet_RetriesExhausted(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"code":"rate_limit_exceeded","message":"slow down"}}`)
	}))
	defer ts.Close()

	c, waits := newTestClient(ts.URL, "ask_live_abc123_s3cret", "", time.Now())
	err := c.get(context.Background(), "/api/v1/documents", nil, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeRateLimitExceeded, apiErr.Code)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)

	// 4 attempts total, 3 backoff waits.
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Len(t, *waits, 3)
}

func TestGet_RateLimitWaitFromResetHeader(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set(HeaderRateLimitReset, fmt.Sprint(now.Add(7*time.Second).Unix()))
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	c, waits := newTestClient(ts.URL, "ask_live_abc123_s3cret", "", now)
	var out struct{}
	require.NoError(t, c.get(context.Background(), "/api/v1/me", nil, &out))

	require.Len(t, *waits, 1)
	assert.Equal(t, 7*time.Second, (*waits)[0])
}

func TestRateLimitWait_Clamping(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"absent falls back", "", fallbackRateLimitDelay},
		{"garbage falls back", "soonish", fallbackRateLimitDelay},
		{"ten minutes out clamps to 60s", fmt.Sprint(now.Add(10 * time.Minute).Unix()), maxRateLimitDelay},
		{"in the past clamps to 1s", fmt.Sprint(now.Add(-time.Minute).Unix()), minRateLimitDelay},
		{"within range used as-is", fmt.Sprint(now.Add(30 * time.Second).Unix()), 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rateLimitWait(tt.header, now))
		})
	}
}

func TestGet_RecordsRefreshedExpiry(t *testing.T) {
	refreshed := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderKeyExpiresAt, refreshed.Format(time.RFC3339))
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL, "ask_live_abc123_s3cret", "", time.Now())

	_, ok := c.LastKeyExpiresAt()
	assert.False(t, ok, "no refresh seen before any response")

	var out struct{}
	require.NoError(t, c.get(context.Background(), "/api/v1/me", nil, &out))

	got, ok := c.LastKeyExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(refreshed))
}

func TestGet_StructuredErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":"not_found","message":"no such document","details":{"id":"doc_404"}}}`)
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL, "ask_live_abc123_s3cret", "", time.Now())
	err := c.get(context.Background(), "/api/v1/documents/doc_404", nil, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeNotFound, apiErr.Code)
	assert.Equal(t, "no such document", apiErr.Message)
	assert.Equal(t, "doc_404", apiErr.Details["id"])
}

func TestGet_UnstructuredErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer ts.Close()

	c, _ := newTestClient(ts.URL, "ask_live_abc123_s3cret", "", time.Now())
	err := c.get(context.Background(), "/api/v1/me", nil, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Code)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestGet_ContextCancelledDuringBackoff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())

	c, _ := newTestClient(ts.URL, "ask_live_abc123_s3cret", "", time.Now())
	c.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	err := c.get(ctx, "/api/v1/me", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
