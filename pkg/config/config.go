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

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/replacecontent/pkg/filetype"
	"gitlab.com/tozd/go/errors"
)

// DefaultReplacementsDirectory is used when no replacements directory is set
const DefaultReplacementsDirectory = "Replacements"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 SourceArgs tells a provider which content to list
type SourceArgs struct {
	Directory  string   // Root directory to walk, may be empty
	File       string   // Single file, may be empty
	Extensions []string // Lower-cased extensions to include, empty means all
	Include    []string // Doublestar globs relative to Directory, empty means all
	Exclude    []string // Doublestar globs relative to Directory
	SkipDirs   []string // Directory names or paths never walked
}

// 📚 Config represents the complete configuration
type Config struct {
	Directory             string                       `json:"directory,omitempty" yaml:"directory,omitempty"`
	File                  string                       `json:"file,omitempty" yaml:"file,omitempty"`
	ReplacementsDirectory string                       `json:"replacements_directory,omitempty" yaml:"replacements_directory,omitempty"`
	FileExtensions        []string                     `json:"file_extensions,omitempty" yaml:"file_extensions,omitempty"`
	Include               []string                     `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude               []string                     `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Write                 bool                         `json:"write,omitempty" yaml:"write,omitempty"`
	Verbose               bool                         `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Workers               int                          `json:"workers,omitempty" yaml:"workers,omitempty"`
	DiffTool              string                       `json:"diff_tool,omitempty" yaml:"diff_tool,omitempty"`
	FileTypes             map[string]filetype.FileType `json:"file_types,omitempty" yaml:"file_types,omitempty"`
	Replacements          map[string]string            `json:"replacements,omitempty" yaml:"replacements,omitempty"`

	location string // file the config was loaded from
}

// 🏭 Default returns a validated config for the current directory
func Default() *Config {
	cfg := &Config{}
	// a zero config always validates
	_ = cfg.Validate()
	return cfg
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration, normalizes paths and applies
// defaults
func (cfg *Config) Validate() error {
	if cfg.Directory != "" {
		cfg.Directory = filepath.Clean(cfg.Directory)
	}
	if cfg.File != "" {
		cfg.File = filepath.Clean(cfg.File)
	}
	if cfg.Directory == "" && cfg.File == "" {
		cfg.Directory = "."
	}

	if cfg.ReplacementsDirectory == "" {
		cfg.ReplacementsDirectory = DefaultReplacementsDirectory
	}
	cfg.ReplacementsDirectory = filepath.Clean(cfg.ReplacementsDirectory)

	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	cfg.FileExtensions = NormalizeExtensions(cfg.FileExtensions)

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern: %q", pattern)
		}
	}

	for ext, ft := range cfg.FileTypes {
		if err := ft.Validate(); err != nil {
			return errors.Errorf("file_types[%s]: %w", ext, err)
		}
	}

	return nil
}

// resolve makes relative paths relative to base
func (cfg *Config) resolve(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	cfg.Directory = abs(cfg.Directory)
	cfg.File = abs(cfg.File)
	cfg.ReplacementsDirectory = abs(cfg.ReplacementsDirectory)
}

// 📦 SourceArgs returns the content selection for a provider
func (cfg *Config) SourceArgs() SourceArgs {
	return SourceArgs{
		Directory:  cfg.Directory,
		File:       cfg.File,
		Extensions: cfg.FileExtensions,
		Include:    cfg.Include,
		Exclude:    cfg.Exclude,
		SkipDirs:   []string{DefaultReplacementsDirectory, cfg.ReplacementsDirectory},
	}
}

// 🗂️ FileTypeRegistry returns the configured file types, or the defaults
func (cfg *Config) FileTypeRegistry() *filetype.Registry {
	return filetype.FromMap(cfg.FileTypes)
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	source := cfg.Directory
	if cfg.File != "" {
		source = cfg.File
	}
	exts := "*"
	if len(cfg.FileExtensions) > 0 {
		exts = strings.Join(cfg.FileExtensions, ",")
	}
	mode := "show"
	if cfg.Write {
		mode = "write"
	}
	return fmt.Sprintf("%s [%s] <- %s (%s)", source, exts, cfg.ReplacementsDirectory, mode)
}

// 🔤 ParseExtensions splits a ',' or ';' separated extension list. A list
// containing ".*" selects every file and yields nil.
func ParseExtensions(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	return NormalizeExtensions(fields)
}

// NormalizeExtensions lower-cases, dot-prefixes, sorts and dedupes exts
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	var out []string
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if ext == filetype.Fallback {
			return nil
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !seen[ext] {
			seen[ext] = true
			out = append(out, ext)
		}
	}
	sort.Strings(out)
	return out
}
