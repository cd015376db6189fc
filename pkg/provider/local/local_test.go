// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/replacecontent/pkg/config"
	"github.com/walteh/replacecontent/pkg/provider"
)

func setupTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.js":                      "a",
		"b.TS":                      "b",
		"c.md":                      "c",
		"a.js.temp":                 "stale",
		"sub/d.js":                  "d",
		"sub/replacements/Name.txt": "value",
		"Replacements/Other.txt":    "value",
		"snippets/e.js":             "e",
		"vendor/lib.js":             "lib",
		".git/config.js":            "git",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func rel(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestListFiles(t *testing.T) {
	tests := []struct {
		name string
		args func(dir string) config.SourceArgs
		want []string
	}{
		{
			name: "all_files",
			args: func(dir string) config.SourceArgs {
				return config.SourceArgs{Directory: dir, SkipDirs: []string{"Replacements"}}
			},
			want: []string{"a.js", "b.TS", "c.md", "snippets/e.js", "sub/d.js", "vendor/lib.js"},
		},
		{
			name: "extension_filter_is_case_insensitive",
			args: func(dir string) config.SourceArgs {
				return config.SourceArgs{Directory: dir, Extensions: []string{".ts"}}
			},
			want: []string{"b.TS"},
		},
		{
			name: "configured_replacements_path_is_skipped",
			args: func(dir string) config.SourceArgs {
				return config.SourceArgs{
					Directory:  dir,
					Extensions: []string{".js"},
					SkipDirs:   []string{"Replacements", filepath.Join(dir, "snippets")},
				}
			},
			want: []string{"a.js", "sub/d.js", "vendor/lib.js"},
		},
		{
			name: "include_and_exclude",
			args: func(dir string) config.SourceArgs {
				return config.SourceArgs{
					Directory: dir,
					Include:   []string{"**/*.js"},
					Exclude:   []string{"vendor/**"},
				}
			},
			want: []string{"a.js", "snippets/e.js", "sub/d.js"},
		},
		{
			name: "file_and_directory_deduplicated",
			args: func(dir string) config.SourceArgs {
				return config.SourceArgs{
					File:       filepath.Join(dir, "sub", "d.js"),
					Directory:  dir,
					Extensions: []string{".js"},
					Exclude:    []string{"vendor/**", "snippets/**"},
				}
			},
			want: []string{"sub/d.js", "a.js"},
		},
		{
			name: "single_file_ignores_filters",
			args: func(dir string) config.SourceArgs {
				return config.SourceArgs{File: filepath.Join(dir, "c.md"), Extensions: []string{".js"}}
			},
			want: []string{"c.md"},
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupTree(t)
			p, err := New(ctx)
			require.NoError(t, err)

			files, err := p.ListFiles(ctx, tt.args(dir))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, files))
		})
	}
}

func TestListFiles_Errors(t *testing.T) {
	ctx := context.Background()
	p, err := New(ctx)
	require.NoError(t, err)
	dir := t.TempDir()

	_, err = p.ListFiles(ctx, config.SourceArgs{File: filepath.Join(dir, "missing.js")})
	assert.Error(t, err)

	_, err = p.ListFiles(ctx, config.SourceArgs{File: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")

	_, err = p.ListFiles(ctx, config.SourceArgs{Directory: filepath.Join(dir, "missing")})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.ListFiles(cancelled, config.SourceArgs{Directory: setupTree(t)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetFile(t *testing.T) {
	ctx := context.Background()
	dir := setupTree(t)

	p, err := provider.New(ctx, "local")
	require.NoError(t, err, "local provider should be registered")

	rc, err := p.GetFile(ctx, config.SourceArgs{}, filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "a", string(data))

	text, err := provider.ReadFile(ctx, p, config.SourceArgs{}, filepath.Join(dir, "sub", "d.js"))
	require.NoError(t, err)
	assert.Equal(t, "d", text)

	_, err = provider.ReadFile(ctx, p, config.SourceArgs{}, filepath.Join(dir, "nope.js"))
	assert.Error(t, err)

	info, err := p.GetSourceInfo(ctx, config.SourceArgs{Directory: dir, Extensions: []string{".js"}})
	require.NoError(t, err)
	assert.Equal(t, dir+" [.js]", info)

	_, err = provider.New(ctx, "github")
	assert.Error(t, err)
}
