// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/assaylabs/assay/pkg/types"
)

// Me returns the authenticated account, including the server's view of the
// key expiration.
func (c *Client) Me(ctx context.Context) (*types.Account, error) {
	var account types.Account
	if err := c.get(ctx, "/api/v1/me", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ListDocumentsOptions narrows a document listing. Zero values are omitted
// from the request.
type ListDocumentsOptions struct {
	Limit  int
	Offset int
	// Filter restricts the listing (e.g. "shared", "private"). It subsumes
	// the deprecated visibility flag; the cmd layer maps that alias onto
	// Filter before the request is built.
	Filter string
}

// ListDocuments lists documents visible to the key.
func (c *Client) ListDocuments(ctx context.Context, opts ListDocumentsOptions) (*types.DocumentList, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Filter != "" {
		query.Set("filter", opts.Filter)
	}

	var list types.DocumentList
	if err := c.get(ctx, "/api/v1/documents", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetDocument fetches one document by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	var doc types.Document
	if err := c.get(ctx, "/api/v1/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocumentSummary fetches the server-generated summary of one document.
func (c *Client) GetDocumentSummary(ctx context.Context, id string) (*types.DocumentSummary, error) {
	var summary types.DocumentSummary
	if err := c.get(ctx, "/api/v1/documents/"+url.PathEscape(id)+"/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SearchDocuments runs a server-side search. Ranking and snippets are
// computed remotely; results are returned in server order.
func (c *Client) SearchDocuments(ctx context.Context, queryText string, limit int) (*types.SearchResults, error) {
	if queryText == "" {
		return nil, fmt.Errorf("search query is required")
	}
	query := url.Values{"q": {queryText}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var results types.SearchResults
	if err := c.get(ctx, "/api/v1/documents/search", query, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// ListThemes lists the cross-document themes computed server-side.
func (c *Client) ListThemes(ctx context.Context) (*types.ThemeList, error) {
	var list types.ThemeList
	if err := c.get(ctx, "/api/v1/themes", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// staticKey satisfies CredentialSource with a literal key, for verification
// calls that run before anything is persisted.
type staticKey string

func (k staticKey) APIKey() (string, bool) { return string(k), k != "" }

// VerifyKey confirms a pasted key against GET /api/v1/me using a short
// 10-second timeout, returning the account so the caller can learn the
// key's expiration. Nothing is persisted here.
func VerifyKey(ctx context.Context, baseURL, key string) (*types.Account, error) {
	c := &Client{
		BaseURL:     baseURL,
		HTTPClient:  &http.Client{Timeout: VerifyTimeout},
		Credentials: staticKey(key),
		now:         time.Now,
		sleep:       sleepContext,
	}
	return c.Me(ctx)
}
