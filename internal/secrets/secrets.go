// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials kept outside the config file. A secrets
// directory holds one plain-text file per credential; the filename is the
// name and the trimmed contents are the value.
//
// The only credential patent-content reads is APIKey.
package secrets

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// APIKey names the file holding the query-service API key.
const APIKey = "serpapi-api-key"

// Load returns the credentials found in dir. A missing directory yields an
// empty map. Hidden files, subdirectories and empty files are ignored;
// unreadable files are logged and skipped. A nil logger discards warnings.
func Load(dir string, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	entries, err := os.ReadDir(dir)
	switch {
	case os.IsNotExist(err):
		return map[string]string{}, nil
	case err != nil:
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	found := make(map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable secret", "dir", dir, "name", name, "error", err)
			continue
		}
		if v := strings.TrimSpace(string(raw)); v != "" {
			found[name] = v
		}
	}
	return found, nil
}

// Names lists the credential names in s, sorted. Values are never included
// so the result is safe to print.
func Names(s map[string]string) []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
