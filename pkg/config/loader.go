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
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// rcName is the name of the format-sniffing config file
const rcName = ".replacecontent"

// 🔧 RCParser reads .replacecontent files, which may hold YAML or HCL
type RCParser struct{}

func init() {
	Register(&RCParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *RCParser) CanParse(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), rcName) || strings.EqualFold(filepath.Base(filename), rcName)
}

// 📝 Parse tries YAML first, then HCL
func (p *RCParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
	if yamlErr == nil {
		return cfg, nil
	}

	cfg, hclErr := (&HCLParser{}).Parse(ctx, data)
	if hclErr == nil {
		return cfg, nil
	}

	zerolog.Ctx(ctx).Debug().AnErr("yaml", yamlErr).AnErr("hcl", hclErr).Msg("config is neither YAML nor HCL")
	return nil, errors.Errorf("parsing %s as YAML or HCL: %w", rcName, hclErr)
}

// 🎯 Load loads the configuration from a file. Relative paths in the file
// are resolved against the file's directory.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.location = path
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.resolve(filepath.Dir(path))

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return cfg, nil
}
