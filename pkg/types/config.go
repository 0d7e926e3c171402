// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the upstream collaborators.
type HTTPConfig struct {
	// Timeout bounds every upstream call. Exceeding it aborts the request and
	// surfaces a timeout error rather than a generic fetch failure.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "patent-content/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// UpstreamConfig locates the patent metadata service and the document host.
type UpstreamConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the JSON query endpoint used for both search and per-patent
	// metadata lookups (engine=google_patents / google_patents_details).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// DocumentsBaseURL is prepended to a canonical key to build the document
	// markup URL (e.g. "https://patents.google.com/" + "patent/US1234567A/en").
	DocumentsBaseURL string `json:"documents_base_url" yaml:"documents_base_url" mapstructure:"documents_base_url"`

	// APIKey authenticates against the metadata service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// SearchConfig holds settings for the search operation.
type SearchConfig struct {
	// Concurrency caps the number of per-result document fetches in flight
	// when search results are enriched with content (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// ContentMaxLength is the character budget applied to each per-result
	// content excerpt (default 2000).
	ContentMaxLength int `json:"content_max_length" yaml:"content_max_length" mapstructure:"content_max_length"`
}

// Transport selects how the server exposes its operations.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	// Transport is stdio (default) or http.
	Transport Transport `json:"transport" yaml:"transport" mapstructure:"transport"`

	// Addr is the listen address for the http transport (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text (default) or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every setting the CLI materialises from flags, environment,
// config file and secrets. Components receive the sub-struct they need at
// construction; nothing reads configuration globally.
type Config struct {
	Upstream UpstreamConfig `json:"upstream" yaml:"upstream" mapstructure:"upstream"`
	Search   SearchConfig   `json:"search" yaml:"search" mapstructure:"search"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}
