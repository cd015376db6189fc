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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/replacecontent/pkg/filetype"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// hclFileType is one labelled file_type block
type hclFileType struct {
	Extension    string `hcl:"extension,label"`
	Name         string `hcl:"name,optional"`
	CommentStart string `hcl:"comment_start"`
	CommentEnd   string `hcl:"comment_end"`
}

// hclConfig is the HCL schema of Config
type hclConfig struct {
	Directory             string            `hcl:"directory,optional"`
	File                  string            `hcl:"file,optional"`
	ReplacementsDirectory string            `hcl:"replacements_directory,optional"`
	FileExtensions        []string          `hcl:"file_extensions,optional"`
	Include               []string          `hcl:"include,optional"`
	Exclude               []string          `hcl:"exclude,optional"`
	Write                 bool              `hcl:"write,optional"`
	Verbose               bool              `hcl:"verbose,optional"`
	Workers               int               `hcl:"workers,optional"`
	DiffTool              string            `hcl:"diff_tool,optional"`
	Replacements          map[string]string `hcl:"replacements,optional"`
	FileTypes             []hclFileType     `hcl:"file_type,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	// expressions may refer to the working directory as cwd
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cwd": cty.StringVal(cwd),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Directory:             hclCfg.Directory,
		File:                  hclCfg.File,
		ReplacementsDirectory: hclCfg.ReplacementsDirectory,
		FileExtensions:        hclCfg.FileExtensions,
		Include:               hclCfg.Include,
		Exclude:               hclCfg.Exclude,
		Write:                 hclCfg.Write,
		Verbose:               hclCfg.Verbose,
		Workers:               hclCfg.Workers,
		DiffTool:              hclCfg.DiffTool,
		Replacements:          hclCfg.Replacements,
	}

	if len(hclCfg.FileTypes) > 0 {
		cfg.FileTypes = make(map[string]filetype.FileType, len(hclCfg.FileTypes))
		for _, ft := range hclCfg.FileTypes {
			if _, dup := cfg.FileTypes[ft.Extension]; dup {
				return nil, errors.Errorf("decoding HCL: duplicate file_type %q", ft.Extension)
			}
			cfg.FileTypes[ft.Extension] = filetype.FileType{
				Name:         ft.Name,
				CommentStart: ft.CommentStart,
				CommentEnd:   ft.CommentEnd,
			}
		}
	}

	return cfg, nil
}
