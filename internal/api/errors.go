// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"errors"
	"fmt"
	"net/url"
)

// Local precondition failures, refused before any network call.
var (
	// ErrNoCredential means no API key could be resolved from the
	// environment, config, or vault.
	ErrNoCredential = errors.New("no API key found")

	// ErrCredentialExpired means the stored key is past its expiration.
	ErrCredentialExpired = errors.New("API key has expired")
)

// Server error codes, from the structured error body
// {"error": {"code", "message", "details"}}.
const (
	CodeKeyExpired        = "key_expired"
	CodeKeyInvalid        = "key_invalid"
	CodeKeyRevoked        = "key_revoked"
	CodeRateLimitExceeded = "rate_limit_exceeded"
	CodeNotFound          = "not_found"
	CodeInvalidParameters = "invalid_parameters"
	CodePermissionDenied  = "permission_denied"
	CodeInternalError     = "internal_error"
)

// Error is a server-signaled failure decoded from a structured error body.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error %s (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.Status, e.Message)
}

// remediation maps server error codes to user-facing text. Unrecognized
// codes fall back to the raw server message.
var remediation = map[string]string{
	CodeKeyExpired:        "Your API key has expired. Run 'assay auth login' to authenticate with a new key.",
	CodeKeyInvalid:        "Your API key was not accepted. Run 'assay auth login' to authenticate again.",
	CodeKeyRevoked:        "Your API key has been revoked. Generate a new key from the dashboard and run 'assay auth login'.",
	CodeRateLimitExceeded: "Rate limit exceeded. Wait a moment and try again.",
	CodeNotFound:          "The requested resource was not found.",
	CodeInvalidParameters: "The request parameters were rejected by the server.",
	CodePermissionDenied:  "Your API key does not have permission for this operation.",
	CodeInternalError:     "The server encountered an internal error. Try again later.",
}

// UserMessage renders err as a single classified line for stderr.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoCredential):
		return "No API key found. Run 'assay auth login' or set ASSAY_API_KEY."
	case errors.Is(err, ErrCredentialExpired):
		return "API key has expired. Run 'assay auth login' to authenticate with a new key."
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if msg, ok := remediation[apiErr.Code]; ok {
			return msg
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Error()
	}

	// Transport failure: connection refused, timeout, DNS.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "Could not reach the API. Check your network connection and base URL."
	}

	return err.Error()
}
