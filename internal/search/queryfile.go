// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a search and its results. A
// saved search can be rerun later by loading its query.
type QueryFile struct {
	Query   Query            `yaml:"query"`
	Results []map[string]any `yaml:"results,omitempty"`
	Summary QuerySummary     `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total       int       `yaml:"total"`
	Unavailable int       `yaml:"unavailable,omitempty"`
	Timestamp   time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a query and the results it produced as YAML.
func WriteQueryFile(path string, query Query, out map[string]any) error {
	results := Results(out)
	qf := QueryFile{
		Query:   query,
		Results: results,
		Summary: QuerySummary{
			Total:     len(results),
			Timestamp: time.Now().UTC(),
		},
	}
	for _, r := range results {
		if r[ContentKey] == Unavailable {
			qf.Summary.Unavailable++
		}
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
