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

// Package local lists content from the local file system.
package local

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/replacecontent/pkg/config"
	"github.com/walteh/replacecontent/pkg/provider"
	"github.com/walteh/replacecontent/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func init() {
	provider.Register("local", New)
}

// 🎯 Provider implements the provider interface for the local file system
type Provider struct {
	logger zerolog.Logger
}

// 🏭 New creates a new local provider
func New(ctx context.Context) (provider.Provider, error) {
	return &Provider{logger: *zerolog.Ctx(ctx)}, nil
}

// 📂 ListFiles returns args.File, then every selected file below
// args.Directory in lexical order. Each path appears once.
func (p *Provider) ListFiles(ctx context.Context, args config.SourceArgs) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if !seen[key] {
			seen[key] = true
			files = append(files, path)
		}
	}

	if args.File != "" {
		info, err := os.Stat(args.File)
		if err != nil {
			return nil, errors.Errorf("reading file %s: %w", args.File, err)
		}
		if info.IsDir() {
			return nil, errors.Errorf("file %s is a directory", args.File)
		}
		add(args.File)
	}

	if args.Directory == "" {
		return files, nil
	}

	skip := newSkipper(args.SkipDirs)
	filter := &filter{extensions: args.Extensions, include: args.Include, exclude: args.Exclude}

	err := filepath.WalkDir(args.Directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != args.Directory && skip.skip(path, d.Name()) {
				p.logger.Trace().Str("dir", path).Msg("skipping directory")
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(args.Directory, path)
		if err != nil {
			return errors.Errorf("relative path for %s: %w", path, err)
		}
		if filter.match(filepath.ToSlash(rel)) {
			add(path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", args.Directory, err)
	}

	p.logger.Debug().Str("dir", args.Directory).Int("files", len(files)).Msg("listed content files")
	return files, nil
}

// 📄 GetFile retrieves a single file's contents
func (p *Provider) GetFile(ctx context.Context, args config.SourceArgs, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening file: %w", err)
	}
	return f, nil
}

// 📝 GetSourceInfo returns a string describing the source
func (p *Provider) GetSourceInfo(ctx context.Context, args config.SourceArgs) (string, error) {
	var parts []string
	if args.Directory != "" {
		abs, err := filepath.Abs(args.Directory)
		if err != nil {
			return "", errors.Errorf("resolving directory: %w", err)
		}
		parts = append(parts, abs)
	}
	if args.File != "" {
		parts = append(parts, args.File)
	}
	exts := "*"
	if len(args.Extensions) > 0 {
		exts = strings.Join(args.Extensions, ",")
	}
	return fmt.Sprintf("%s [%s]", strings.Join(parts, " + "), exts), nil
}

// 🚫 skipper decides which directories are never walked
type skipper struct {
	names []string // matched against the directory name, case-insensitively
	paths []string // matched against the absolute directory path
}

func newSkipper(dirs []string) *skipper {
	s := &skipper{names: []string{".git"}}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if filepath.Base(d) == d {
			s.names = append(s.names, d)
			continue
		}
		if abs, err := filepath.Abs(d); err == nil {
			s.paths = append(s.paths, abs)
		}
	}
	return s
}

func (s *skipper) skip(path, name string) bool {
	for _, n := range s.names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	if len(s.paths) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, p := range s.paths {
		if p == abs {
			return true
		}
	}
	return false
}

// 🔍 filter selects files by extension and glob
type filter struct {
	extensions []string
	include    []string
	exclude    []string
}

// match reports whether the slash separated relative path is selected
func (f *filter) match(rel string) bool {
	if strings.HasSuffix(rel, status.TempSuffix) {
		return false
	}

	if len(f.extensions) > 0 && !slices.Contains(f.extensions, strings.ToLower(filepath.Ext(rel))) {
		return false
	}

	for _, pattern := range f.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, pattern := range f.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
