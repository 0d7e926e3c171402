// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		subdirs []string
		want    map[string]string
	}{
		{
			name:  "api key trimmed",
			files: map[string]string{APIKey: "  sk_abc123  \n", "other-key": "ok_xyz789"},
			want:  map[string]string{APIKey: "sk_abc123", "other-key": "ok_xyz789"},
		},
		{
			name:  "empty and blank files ignored",
			files: map[string]string{APIKey: "sk_1", "empty": "", "blank": "   \n\t  "},
			want:  map[string]string{APIKey: "sk_1"},
		},
		{
			name:  "hidden files ignored",
			files: map[string]string{".gitkeep": "", ".hidden": "secret", APIKey: "sk_2"},
			want:  map[string]string{APIKey: "sk_2"},
		},
		{
			name:    "subdirectories ignored",
			files:   map[string]string{APIKey: "sk_3"},
			subdirs: []string{"nested"},
			want:    map[string]string{APIKey: "sk_3"},
		},
		{
			name: "empty directory",
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}
			for _, d := range tt.subdirs {
				require.NoError(t, os.Mkdir(filepath.Join(dir, d), 0o755))
			}

			got, err := Load(dir, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent"), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "not-a-dir", "x")

	_, err := Load(filepath.Join(dir, "not-a-dir"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading secrets directory")
}

func TestLoad_UnreadableFileLogged(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, APIKey, "sk_ok")

	bad := filepath.Join(dir, "locked")
	require.NoError(t, os.WriteFile(bad, []byte("secret"), 0o000))
	t.Cleanup(func() { _ = os.Chmod(bad, 0o644) })

	var buf bytes.Buffer
	got, err := Load(dir, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{APIKey: "sk_ok"}, got)
	assert.Contains(t, buf.String(), "skipping unreadable secret")
	assert.Contains(t, buf.String(), "name=locked")
}

func TestNames(t *testing.T) {
	s := map[string]string{"zeta": "1", APIKey: "2", "alpha": "3"}
	assert.Equal(t, []string{"alpha", APIKey, "zeta"}, Names(s))
	assert.Empty(t, Names(nil))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
