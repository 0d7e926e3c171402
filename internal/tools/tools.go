// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools exposes the search and fetch-content operations as MCP tools
// and serves them over stdio or streamable HTTP.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/patent-content/internal/content"
	"github.com/pdiddy/patent-content/internal/search"
	"github.com/pdiddy/patent-content/internal/validate"
	"github.com/pdiddy/patent-content/pkg/types"
)

// Tool names.
const (
	SearchTool = "search_patents"
	FetchTool  = "get_patent"
)

// Fetcher implements fetch-content.
type Fetcher interface {
	Fetch(ctx context.Context, ref string, opts content.Options) (types.PatentRecord, error)
}

// Searcher implements search.
type Searcher interface {
	Search(ctx context.Context, q search.Query) (map[string]any, error)
}

// NewServer returns an MCP server with both tools registered. A nil logger
// discards output.
func NewServer(fetcher Fetcher, searcher Searcher, version string, logger *slog.Logger) *mcp.Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	srv := mcp.NewServer(&mcp.Implementation{Name: "patent-content", Version: version}, nil)
	registerSearch(srv, searcher, logger)
	registerFetch(srv, fetcher, logger)
	return srv
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// endpoint runs one decoded tool call.
type endpoint func(ctx context.Context, logger *slog.Logger, args json.RawMessage) (any, error)

// register adds tool to srv. Every call gets a request ID in its log lines;
// failures come back as tool errors rather than protocol errors.
func register(srv *mcp.Server, tool *mcp.Tool, logger *slog.Logger, run endpoint) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logger.With("tool", tool.Name, "request_id", uuid.NewString())
		start := time.Now()

		var args json.RawMessage
		if req.Params != nil {
			args = req.Params.Arguments
		}

		resp, err := run(ctx, log, args)
		if err != nil {
			log.Warn("tool call failed", "error", err, "elapsed", time.Since(start))
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		log.Info("tool call completed", "bytes", len(data), "elapsed", time.Since(start))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func decode(args json.RawMessage, v any) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// --- search_patents ---

func registerSearch(srv *mcp.Server, searcher Searcher, logger *slog.Logger) {
	str := func(desc string) map[string]any { return map[string]any{"type": "string", "description": desc} }
	tool := &mcp.Tool{
		Name:        SearchTool,
		Description: "Search patents by free text with optional filters. Returns the upstream result list unmodified; include_content adds a description excerpt to each result.",
		InputSchema: inputSchema(map[string]any{
			"query":           str("Free-text search query"),
			"page":            map[string]any{"type": "integer", "minimum": 1, "description": "Result page, starting at 1"},
			"num":             map[string]any{"type": "integer", "minimum": 10, "maximum": 100, "description": "Results per page (10-100)"},
			"sort":            map[string]any{"type": "string", "enum": []string{"new", "old"}, "description": "Sort by date instead of relevance"},
			"before":          str("Only documents dated before YYYY-MM-DD"),
			"after":           str("Only documents dated after YYYY-MM-DD"),
			"date_type":       map[string]any{"type": "string", "enum": []string{"priority", "filing", "publication"}, "description": "Date that before/after apply to (default priority)"},
			"inventor":        str("Inventor name filter"),
			"assignee":        str("Assignee name filter"),
			"country":         str("Comma-separated jurisdiction codes, e.g. US,WO"),
			"language":        str("Document language, e.g. ENGLISH"),
			"status":          map[string]any{"type": "string", "enum": []string{"GRANT", "APPLICATION"}},
			"type":            map[string]any{"type": "string", "enum": []string{"PATENT", "DESIGN"}},
			"include_content": map[string]any{"type": "boolean", "description": "Fetch each result's document and attach a content excerpt"},
		}, []string{"query"}),
	}

	register(srv, tool, logger, func(ctx context.Context, log *slog.Logger, args json.RawMessage) (any, error) {
		var q search.Query
		if err := decode(args, &q); err != nil {
			return nil, err
		}
		log.Debug("searching", "query", q.Text, "include_content", q.IncludeContent)
		return searcher.Search(ctx, q)
	})
}

// --- get_patent ---

type fetchArgs struct {
	Patent    string   `json:"patent" validate:"required"`
	Include   []string `json:"include"`
	MaxLength *int     `json:"max_length"`
}

func registerFetch(srv *mcp.Server, fetcher Fetcher, logger *slog.Logger) {
	fields := make([]string, len(content.Fields))
	for i, f := range content.Fields {
		fields[i] = string(f)
	}
	defaults := make([]string, len(content.DefaultFields))
	for i, f := range content.DefaultFields {
		defaults[i] = string(f)
	}

	tool := &mcp.Tool{
		Name: FetchTool,
		Description: "Fetch one patent by URL, publication number, or patent/<number>/<lang> key. " +
			"include selects fields (default: " + strings.Join(defaults, ", ") + "); " +
			"max_length bounds each text field, cutting at paragraph, line, or word boundaries and never splitting a claim.",
		InputSchema: inputSchema(map[string]any{
			"patent": map[string]any{"type": "string", "description": "Patent URL, number, or key"},
			"include": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "enum": fields},
				"description": "Fields to include",
			},
			"max_length": map[string]any{"type": "integer", "minimum": 1, "description": "Character budget per field"},
		}, []string{"patent"}),
	}

	register(srv, tool, logger, func(ctx context.Context, log *slog.Logger, args json.RawMessage) (any, error) {
		var a fetchArgs
		if err := decode(args, &a); err != nil {
			return nil, err
		}
		a.Patent = strings.TrimSpace(a.Patent)
		if err := validate.Struct(a); err != nil {
			return nil, fmt.Errorf("invalid arguments: patent is required")
		}
		opts, err := content.ParseOptions(a.Include, a.MaxLength)
		if err != nil {
			return nil, err
		}
		log.Debug("fetching patent", "patent", a.Patent, "fields", opts.Selected(), "max_length", opts.MaxLength)
		return fetcher.Fetch(ctx, a.Patent, opts)
	})
}
