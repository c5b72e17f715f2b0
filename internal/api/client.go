// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api wraps the document intelligence HTTP API. Every outbound call
// runs the same explicit sequence: resolve credential, check expiration,
// attach the key header, send, retry on rate limiting. Each step is a plain
// function call on the client rather than a hook on the transport, so the
// contract is testable without real HTTP plumbing.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/assaylabs/assay/internal/credential"
)

// Headers on the wire.
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderRateLimitReset = "X-RateLimit-Reset"
	HeaderKeyExpiresAt   = "X-Api-Key-Expires-At"
)

const (
	// DefaultTimeout bounds every regular API request.
	DefaultTimeout = 30 * time.Second
	// VerifyTimeout bounds the out-of-band login verification call.
	VerifyTimeout = 10 * time.Second

	// maxAttempts is the total number of tries per logical request: the
	// initial attempt plus up to three rate-limit retries.
	maxAttempts = 4

	// fallbackRateLimitDelay is used when the server omits the reset header.
	fallbackRateLimitDelay = 5 * time.Second
	minRateLimitDelay      = 1 * time.Second
	maxRateLimitDelay      = 60 * time.Second
)

// CredentialSource resolves the API key for outbound calls.
type CredentialSource interface {
	APIKey() (key string, ok bool)
}

// Client issues authenticated requests against one base URL.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	Credentials CredentialSource

	// KeyExpiresAt is the stored expiration timestamp (RFC 3339, may be
	// empty); checked before every call.
	KeyExpiresAt string

	// lastKeyExpiresAt is the most recent refreshed expiration the server
	// sent via HeaderKeyExpiresAt. Persisting it is the caller's decision.
	lastKeyExpiresAt time.Time

	// now and sleep are swapped in tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a client with the fixed 30-second timeout.
func NewClient(baseURL string, creds CredentialSource, keyExpiresAt string) *Client {
	return &Client{
		BaseURL:      baseURL,
		HTTPClient:   &http.Client{Timeout: DefaultTimeout},
		Credentials:  creds,
		KeyExpiresAt: keyExpiresAt,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// LastKeyExpiresAt returns the refreshed expiration timestamp from the most
// recent response, if the server sent one.
func (c *Client) LastKeyExpiresAt() (time.Time, bool) {
	return c.lastKeyExpiresAt, !c.lastKeyExpiresAt.IsZero()
}

// get runs one logical GET: credential resolution, expiration pre-check,
// send with rate-limit retry, then JSON decode into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key, ok := c.Credentials.APIKey()
	if !ok {
		return ErrNoCredential
	}
	if exp := credential.CheckExpiration(c.KeyExpiresAt, c.now()); exp.Expired {
		return ErrCredentialExpired
	}

	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set(HeaderAPIKey, key)
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", path, err)
		}

		if raw := resp.Header.Get(HeaderKeyExpiresAt); raw != "" {
			if t, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
				c.lastKeyExpiresAt = t
			}
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxAttempts {
			wait := rateLimitWait(resp.Header.Get(HeaderRateLimitReset), c.now())
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		return decodeResponse(resp, out)
	}
}

// rateLimitWait computes the backoff before a retry. The server supplies a
// reset time as epoch seconds; absent or unparseable headers fall back to a
// fixed delay. The result is clamped to [1s, 60s] so a far-future reset
// cannot stall the CLI and a past reset still backs off briefly.
func rateLimitWait(resetHeader string, now time.Time) time.Duration {
	wait := fallbackRateLimitDelay
	if resetHeader != "" {
		if epoch, err := strconv.ParseInt(resetHeader, 10, 64); err == nil {
			wait = time.Unix(epoch, 0).Sub(now)
		}
	}
	if wait < minRateLimitDelay {
		wait = minRateLimitDelay
	}
	if wait > maxRateLimitDelay {
		wait = maxRateLimitDelay
	}
	return wait
}

// decodeResponse consumes the response body: JSON into out on 2xx, a
// structured *Error otherwise. Always closes the body.
func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing API response: %w", err)
	}
	return nil
}

// errorEnvelope is the server's structured error body.
type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &Error{Status: resp.StatusCode}
	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && (env.Error.Code != "" || env.Error.Message != "") {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.Details = env.Error.Details
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
