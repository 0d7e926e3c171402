// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs patent searches against the query service. Result
// summaries are returned exactly as the service sent them; the only addition
// is an optional per-result content excerpt fetched from the documents host.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/patent-content/internal/acquire"
	"github.com/pdiddy/patent-content/internal/extract"
	"github.com/pdiddy/patent-content/internal/httputil"
	"github.com/pdiddy/patent-content/internal/truncate"
	"github.com/pdiddy/patent-content/pkg/types"
)

// Keys added to a result by content enrichment.
const (
	ResultsKey      = "organic_results"
	ContentKey      = "content"
	ContentErrorKey = "content_error"

	// Unavailable replaces the content of a result whose document could not
	// be used.
	Unavailable = "unavailable"
)

// DocumentFetcher retrieves document markup for a canonical key.
type DocumentFetcher interface {
	URLFor(key string) string
	FetchDocument(ctx context.Context, url string) (string, error)
}

// Searcher implements the search operation.
type Searcher struct {
	client   *http.Client
	upstream types.UpstreamConfig
	cfg      types.SearchConfig
	docs     DocumentFetcher
	logger   *slog.Logger
}

// NewSearcher wires a Searcher. docs may be nil when content enrichment is
// never requested. A nil logger discards output.
func NewSearcher(client *http.Client, upstream types.UpstreamConfig, cfg types.SearchConfig, docs DocumentFetcher, logger *slog.Logger) *Searcher {
	if client == nil {
		client = &http.Client{Timeout: upstream.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Searcher{client: client, upstream: upstream, cfg: cfg, docs: docs, logger: logger}
}

// Search validates q, runs it, and returns the service's response object.
// With q.IncludeContent each organic result gains a content excerpt; a
// result whose document cannot be fetched is marked unavailable without
// affecting the others.
func (s *Searcher) Search(ctx context.Context, q Query) (map[string]any, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	params := q.Params()
	displayURL := s.upstream.BaseURL + "?" + params.Encode()
	if s.upstream.APIKey != "" {
		params.Set("api_key", s.upstream.APIKey)
	}

	body, err := httputil.Get(ctx, s.client, httputil.Request{
		URL:        s.upstream.BaseURL + "?" + params.Encode(),
		DisplayURL: displayURL,
		Accept:     "application/json",
		UserAgent:  s.upstream.UserAgent,
		Timeout:    s.upstream.Timeout,
	})
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			if msg := acquire.UpstreamMessage(se.Body); msg != "" {
				return nil, &acquire.UpstreamError{StatusCode: se.StatusCode, Message: msg}
			}
		}
		return nil, fmt.Errorf("search request: %w", err)
	}

	if msg := acquire.UpstreamMessage(body); msg != "" {
		return nil, &acquire.UpstreamError{Message: msg}
	}

	// Numbers stay json.Number so they pass through unchanged.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	results := Results(out)
	s.logger.Debug("search completed", "query", q.Text, "results", len(results))

	if q.IncludeContent && len(results) > 0 {
		s.enrich(ctx, results)
	}
	return out, nil
}

// Results returns the organic result objects of a search response.
func Results(out map[string]any) []map[string]any {
	items, _ := out[ResultsKey].([]any)
	results := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			results = append(results, m)
		}
	}
	return results
}

// enrich attaches a content excerpt to every result. Fetches run with at
// most cfg.Concurrency in flight and never cancel one another.
func (s *Searcher) enrich(ctx context.Context, results []map[string]any) {
	start := time.Now()
	var g errgroup.Group
	limit := s.cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, r := range results {
		g.Go(func() error {
			text, err := s.excerpt(ctx, r)
			if err != nil {
				r[ContentKey] = Unavailable
				r[ContentErrorKey] = err.Error()
				return nil
			}
			r[ContentKey] = text
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r[ContentKey] == Unavailable {
			failed++
		}
	}
	s.logger.Debug("search results enriched", "results", len(results), "unavailable", failed, "elapsed", time.Since(start))
}

// excerpt fetches one result's document and returns its description, or
// the abstract when the document has no description, cut to the content
// budget.
func (s *Searcher) excerpt(ctx context.Context, result map[string]any) (string, error) {
	if s.docs == nil {
		return "", errors.New("document fetching is not configured")
	}
	ref := resultRef(result)
	if ref == "" {
		return "", errors.New("result has no patent identifier")
	}
	key := acquire.Resolve(ref)

	markup, err := s.docs.FetchDocument(ctx, s.docs.URLFor(key))
	if err != nil {
		s.logger.Warn("result content unavailable", "key", key, "error", err)
		return "", err
	}

	sections := extract.Extract(markup, extract.Need{Description: true}, s.logger)
	text, ok := sections.Description.Get()
	if !ok {
		return "", errors.New("document has no description or abstract")
	}
	return truncate.Text(text, s.cfg.ContentMaxLength).Text, nil
}

// resultRef picks the identifier a result names its patent by.
func resultRef(result map[string]any) string {
	for _, k := range []string{"patent_id", "publication_number"} {
		if v, ok := result[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// FormatTable writes the organic results as a human-readable table to w.
func FormatTable(out map[string]any, w io.Writer) {
	results := Results(out)
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-16s  %-20s  %s\n",
		"Rank", "Title", "Number", "Assignee", "Priority")
	fmt.Fprintln(w, strings.Repeat("-", 116))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-60s  %-16s  %-20s  %s\n",
			i+1,
			clip(field(r, "title"), 60),
			clip(field(r, "publication_number"), 16),
			clip(field(r, "assignee"), 20),
			field(r, "priority_date"),
		)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

func field(r map[string]any, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func clip(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
