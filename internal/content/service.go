// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content turns a patent reference into a client-facing record. It
// resolves the reference, fetches metadata and document markup in parallel,
// normalizes and extracts what was requested, and formats the record under
// the caller's inclusion options and character budget.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/patent-content/internal/acquire"
	"github.com/pdiddy/patent-content/internal/extract"
	"github.com/pdiddy/patent-content/internal/httputil"
	"github.com/pdiddy/patent-content/internal/normalize"
	"github.com/pdiddy/patent-content/pkg/types"
)

// DocumentFetcher retrieves document markup for a canonical key.
type DocumentFetcher interface {
	URLFor(key string) string
	FetchDocument(ctx context.Context, url string) (string, error)
}

// MetadataFetcher retrieves the raw upstream metadata object for a key.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, key string) (json.RawMessage, error)
}

// Service implements the fetch-content operation.
type Service struct {
	docs   DocumentFetcher
	meta   MetadataFetcher
	logger *slog.Logger
}

// NewService wires a Service. A nil logger discards output.
func NewService(docs DocumentFetcher, meta MetadataFetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{docs: docs, meta: meta, logger: logger}
}

// Fetch resolves ref and returns its record shaped by opts.
//
// Metadata is always fetched. The document is fetched alongside it only when
// claims, description, or full text are requested. A timeout from either
// fetch fails the call with *httputil.TimeoutError. Any other document
// failure leaves the document sections absent. An upstream error message,
// or metadata without a title, abstract, or publication number, fails the
// call with *acquire.NotFoundError.
func (s *Service) Fetch(ctx context.Context, ref string, opts Options) (types.PatentRecord, error) {
	key := acquire.Resolve(ref)
	logger := s.logger.With("key", key)
	start := time.Now()

	var (
		raw    json.RawMessage
		markup string
		docErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.meta.FetchMetadata(gctx, key)
		if err != nil {
			return err
		}
		raw = r
		return nil
	})
	if opts.NeedsDocument() {
		g.Go(func() error {
			m, err := s.docs.FetchDocument(gctx, s.docs.URLFor(key))
			if err != nil {
				if httputil.IsTimeout(err) {
					return err
				}
				docErr = err
				return nil
			}
			markup = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var ue *acquire.UpstreamError
		if errors.As(err, &ue) {
			return types.PatentRecord{}, &acquire.NotFoundError{Key: key, Message: ue.Message}
		}
		return types.PatentRecord{}, err
	}

	meta, err := normalize.Parse(raw)
	if err != nil {
		return types.PatentRecord{}, fmt.Errorf("metadata for %s: %w", key, err)
	}
	if !meta.HasIdentity() {
		return types.PatentRecord{}, &acquire.NotFoundError{Key: key}
	}
	for _, fe := range meta.Skipped {
		logger.Warn("metadata field omitted", "field", fe.Field, "error", fe.Err)
	}

	var sections extract.Sections
	switch {
	case docErr != nil:
		logger.Warn("document unavailable, content sections omitted", "error", docErr)
	case markup != "":
		sections = extract.Extract(markup, opts.Need(), logger)
	}

	rec := Format(key, meta, sections, opts)
	logger.Debug("record formatted",
		"fields", opts.Selected(),
		"max_length", opts.MaxLength,
		"claims", len(rec.Claims),
		"elapsed", time.Since(start),
	)
	return rec, nil
}
