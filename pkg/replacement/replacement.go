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

// Package replacement loads placeholder values from files.
//
// A directory contributes every *.txt file as one value, named after the
// file without its extension, followed by the maps in *.json, *.yaml and
// *.yml files. Later files win over earlier ones for the same name.
package replacement

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/replacecontent/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// ErrDirectoryNotFound is returned for a missing required directory
var ErrDirectoryNotFound = errors.Base("replacements directory not found")

// loading order within a directory
var directoryPatterns = []string{"*.txt", "*.json", "*.yaml", "*.yml"}

// 📂 LoadDirectory adds the values found in dir to m and returns how many
// were added. A missing directory is an error unless optional is set.
func LoadDirectory(ctx context.Context, m *placeholder.ReplacementMap, dir string, optional bool) (int, error) {
	logger := zerolog.Ctx(ctx)

	abs, err := filepath.Abs(dir)
	if err != nil {
		return 0, errors.Errorf("resolving %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err) || (err == nil && !info.IsDir()):
		if optional {
			logger.Debug().Str("dir", abs).Msg("optional replacements directory not found")
			return 0, nil
		}
		return 0, errors.Errorf("%w: %s", ErrDirectoryNotFound, abs)
	case err != nil:
		return 0, errors.Errorf("reading replacements directory: %w", err)
	}

	total := 0
	for _, pattern := range directoryPatterns {
		files, err := filepath.Glob(filepath.Join(abs, pattern))
		if err != nil {
			return total, errors.Errorf("listing %s: %w", pattern, err)
		}
		sort.Strings(files)
		for _, file := range files {
			n, err := LoadFile(ctx, m, file)
			if err != nil {
				return total, err
			}
			total += n
		}
	}

	logger.Debug().Str("dir", abs).Int("values", total).Msg("loaded replacements directory")
	return total, nil
}

// 📄 LoadFile adds the values of one file to m and returns how many were
// added. Map files (.json, .yaml, .yml) hold string to string maps; any
// other file is a single value named after the file.
func LoadFile(ctx context.Context, m *placeholder.ReplacementMap, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Errorf("reading replacement file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var values map[string]string
	switch ext {
	case ".json":
		values, err = decodeJSON(data)
	case ".yaml", ".yml":
		values, err = decodeYAML(data)
	default:
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		m.Set(name, string(data))
		zerolog.Ctx(ctx).Trace().Str("file", path).Str("name", name).Msg("loaded replacement")
		return 1, nil
	}
	if err != nil {
		return 0, errors.Errorf("invalid content in file %s: %w", path, err)
	}

	m.SetAll(values)
	zerolog.Ctx(ctx).Trace().Str("file", path).Int("values", len(values)).Msg("loaded replacement map")
	return len(values), nil
}

func decodeJSON(data []byte) (map[string]string, error) {
	var values map[string]string
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&values); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if values == nil {
		return nil, errors.Errorf("parsing JSON: expected an object")
	}
	return values, nil
}

func decodeYAML(data []byte) (map[string]string, error) {
	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return values, nil
}
