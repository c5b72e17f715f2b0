// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data types of the assay CLI: the persisted
// configuration document and the payloads returned by the document
// intelligence API.
package types

// OutputFormat selects how command results are rendered.
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatYAML  OutputFormat = "yaml"
)

// Valid reports whether f is one of the supported output formats.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatJSON, FormatTable, FormatYAML:
		return true
	}
	return false
}

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.assay.dev"

// Config is the persisted configuration document, written wholesale to
// <configDir>/config.json on every save.
type Config struct {
	// KeyIdentifier is the non-secret portion of the API key. The secret
	// portion lives in the OS vault, keyed by a fixed service/account pair.
	KeyIdentifier string `json:"keyIdentifier,omitempty"`

	// KeyExpiresAt is the RFC 3339 expiration timestamp of the stored key,
	// empty when unknown.
	KeyExpiresAt string `json:"keyExpiresAt,omitempty"`

	// BaseURL is the API endpoint all requests are issued against.
	BaseURL string `json:"baseUrl"`

	// OutputFormat is the default rendering for command results.
	OutputFormat OutputFormat `json:"outputFormat"`
}

// DefaultConfig returns the configuration used when no file exists yet.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		OutputFormat: FormatJSON,
	}
}
