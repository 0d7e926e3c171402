// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire resolves free-form patent references into canonical keys and
// retrieves the raw material for a key from upstream: document markup from the
// documents host and metadata objects from the query service.
//
// Both collaborators make a single bounded request per call. A call that
// exceeds the configured timeout fails with *httputil.TimeoutError; nothing
// is retried.
package acquire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pdiddy/patent-content/internal/httputil"
	"github.com/pdiddy/patent-content/pkg/types"
)

const acceptMarkup = "text/html,application/xhtml+xml"

// DocumentClient fetches raw document markup.
type DocumentClient struct {
	client *http.Client
	cfg    types.UpstreamConfig
	logger *slog.Logger
}

// NewDocumentClient returns a client bound to cfg.DocumentsBaseURL. A nil
// logger discards output.
func NewDocumentClient(client *http.Client, cfg types.UpstreamConfig, logger *slog.Logger) *DocumentClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DocumentClient{client: client, cfg: cfg, logger: logger}
}

// URLFor returns the document URL for a canonical key.
func (c *DocumentClient) URLFor(key string) string {
	return DocumentURL(c.cfg.DocumentsBaseURL, key)
}

// FetchDocument returns the markup served at url.
func (c *DocumentClient) FetchDocument(ctx context.Context, url string) (string, error) {
	body, err := httputil.Get(ctx, c.client, httputil.Request{
		URL:       url,
		Accept:    acceptMarkup,
		UserAgent: c.cfg.UserAgent,
		Timeout:   c.cfg.Timeout,
	})
	if err != nil {
		c.logger.Debug("document fetch failed", "url", url, "error", err)
		return "", fmt.Errorf("fetching document: %w", err)
	}
	c.logger.Debug("document fetched", "url", url, "bytes", len(body))
	return string(body), nil
}
