// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/patent-content/internal/httputil"
	"github.com/pdiddy/patent-content/pkg/types"
)

// DetailsEngine is the query-service engine that returns one patent's metadata.
const DetailsEngine = "google_patents_details"

// errorPayload is the envelope the query service uses to report failures,
// sometimes with HTTP 200.
type errorPayload struct {
	Error string `json:"error"`
}

// MetadataClient fetches upstream metadata objects for canonical keys.
type MetadataClient struct {
	client *http.Client
	cfg    types.UpstreamConfig
	logger *slog.Logger
}

// NewMetadataClient returns a client bound to cfg.BaseURL. A nil logger
// discards output.
func NewMetadataClient(client *http.Client, cfg types.UpstreamConfig, logger *slog.Logger) *MetadataClient {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MetadataClient{client: client, cfg: cfg, logger: logger}
}

// FetchMetadata returns the raw metadata object for key. The shape of the
// object is left to the normalizer. An error message embedded in the payload
// comes back as *UpstreamError, a bare 404 as *NotFoundError, and deadline
// overruns as *httputil.TimeoutError.
func (c *MetadataClient) FetchMetadata(ctx context.Context, key string) (json.RawMessage, error) {
	params := url.Values{
		"engine":    {DetailsEngine},
		"patent_id": {key},
	}
	displayURL := c.cfg.BaseURL + "?" + params.Encode()
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	body, err := httputil.Get(ctx, c.client, httputil.Request{
		URL:        reqURL,
		DisplayURL: displayURL,
		Accept:     "application/json",
		UserAgent:  c.cfg.UserAgent,
		Timeout:    c.cfg.Timeout,
	})
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			if msg := UpstreamMessage(se.Body); msg != "" {
				return nil, &UpstreamError{StatusCode: se.StatusCode, Message: msg}
			}
			if se.StatusCode == http.StatusNotFound {
				return nil, &NotFoundError{Key: key}
			}
		}
		return nil, fmt.Errorf("metadata request for %s: %w", key, err)
	}

	if msg := UpstreamMessage(body); msg != "" {
		return nil, &UpstreamError{Message: msg}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("metadata response for %s is not valid JSON", key)
	}

	c.logger.Debug("metadata fetched", "key", key, "bytes", len(body))
	return json.RawMessage(body), nil
}

// UpstreamMessage returns the error message the query service embedded in
// body, or "" when body carries none.
func UpstreamMessage(body []byte) string {
	var p errorPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return ""
	}
	return strings.TrimSpace(p.Error)
}
