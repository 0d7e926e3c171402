// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/patent-content/internal/acquire"
	"github.com/pdiddy/patent-content/internal/content"
	"github.com/pdiddy/patent-content/internal/search"
	"github.com/pdiddy/patent-content/internal/secrets"
	"github.com/pdiddy/patent-content/pkg/types"
)

const (
	defaultBaseURL          = "https://serpapi.com/search.json"
	defaultDocumentsBaseURL = "https://patents.google.com/"
	defaultTimeout          = 30 * time.Second
	defaultUserAgent        = "patent-content/0.1"
	defaultConcurrency      = 4
	defaultContentMaxLength = 2000
	defaultAddr             = ":8080"
)

func setDefaults() {
	viper.SetDefault("upstream.api_key", "")
	viper.SetDefault("upstream.base_url", defaultBaseURL)
	viper.SetDefault("upstream.documents_base_url", defaultDocumentsBaseURL)
	viper.SetDefault("upstream.timeout", defaultTimeout)
	viper.SetDefault("upstream.user_agent", defaultUserAgent)
	viper.SetDefault("search.concurrency", defaultConcurrency)
	viper.SetDefault("search.content_max_length", defaultContentMaxLength)
	viper.SetDefault("server.transport", string(types.TransportStdio))
	viper.SetDefault("server.addr", defaultAddr)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// loadConfig materialises viper's merged view into types.Config. The API key
// falls back to the secrets directory.
func loadConfig(s map[string]string) (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if c.Upstream.APIKey == "" {
		c.Upstream.APIKey = s[secrets.APIKey]
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = defaultTimeout
	}
	if c.Search.Concurrency < 1 {
		c.Search.Concurrency = 1
	}

	switch c.Server.Transport {
	case types.TransportStdio, types.TransportHTTP:
	default:
		return types.Config{}, fmt.Errorf("server.transport must be %q or %q, got %q",
			types.TransportStdio, types.TransportHTTP, c.Server.Transport)
	}
	return c, nil
}

// newLogger builds the process logger. Output goes to w, never stdout, so
// the stdio transport stays clean.
func newLogger(c types.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log.format must be text or json, got %q", c.Format)
	}
}

func requireAPIKey(c types.Config) error {
	if c.Upstream.APIKey == "" {
		return fmt.Errorf("no API key configured: set PATENT_CONTENT_API_KEY or write it to .secrets/%s", secrets.APIKey)
	}
	return nil
}

// services holds the wired operations.
type services struct {
	content *content.Service
	search  *search.Searcher
}

func newServices(c types.Config, l *slog.Logger) services {
	client := &http.Client{Timeout: c.Upstream.Timeout}
	docs := acquire.NewDocumentClient(client, c.Upstream, l.With("component", "documents"))
	meta := acquire.NewMetadataClient(client, c.Upstream, l.With("component", "metadata"))
	return services{
		content: content.NewService(docs, meta, l.With("component", "content")),
		search:  search.NewSearcher(client, c.Upstream, c.Search, docs, l.With("component", "search")),
	}
}
