// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Document is a single document as returned by the API.
type Document struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Filename   string    `json:"filename,omitempty" yaml:"filename,omitempty"`
	Visibility string    `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	PageCount  int       `json:"pageCount,omitempty" yaml:"pageCount,omitempty"`
	Status     string    `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// DocumentList is the envelope for GET /api/v1/documents.
type DocumentList struct {
	Documents []Document `json:"documents" yaml:"documents"`
	Total     int        `json:"total" yaml:"total"`
}

// DocumentSummary is the server-generated summary of one document.
type DocumentSummary struct {
	DocumentID  string    `json:"documentId" yaml:"documentId"`
	Summary     string    `json:"summary" yaml:"summary"`
	KeyPoints   []string  `json:"keyPoints,omitempty" yaml:"keyPoints,omitempty"`
	GeneratedAt time.Time `json:"generatedAt,omitempty" yaml:"generatedAt,omitempty"`
}

// SearchHit is one result from GET /api/v1/documents/search. Ranking is
// entirely server-side; Score is reported as-is.
type SearchHit struct {
	Document Document `json:"document" yaml:"document"`
	Score    float64  `json:"score" yaml:"score"`
	Snippet  string   `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// SearchResults is the envelope for GET /api/v1/documents/search.
type SearchResults struct {
	Query string      `json:"query" yaml:"query"`
	Hits  []SearchHit `json:"hits" yaml:"hits"`
	Total int         `json:"total" yaml:"total"`
}

// Theme is a cross-document topic computed server-side.
type Theme struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	DocumentCount int      `json:"documentCount" yaml:"documentCount"`
	DocumentIDs   []string `json:"documentIds,omitempty" yaml:"documentIds,omitempty"`
}

// ThemeList is the envelope for GET /api/v1/themes.
type ThemeList struct {
	Themes []Theme `json:"themes" yaml:"themes"`
}

// Account describes the authenticated principal, from GET /api/v1/me.
type Account struct {
	ID           string    `json:"id" yaml:"id"`
	Email        string    `json:"email" yaml:"email"`
	Organization string    `json:"organization,omitempty" yaml:"organization,omitempty"`
	Plan         string    `json:"plan,omitempty" yaml:"plan,omitempty"`
	KeyExpiresAt time.Time `json:"keyExpiresAt,omitempty" yaml:"keyExpiresAt,omitempty"`
}
