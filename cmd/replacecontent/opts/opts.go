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

package opts

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/replacecontent/pkg/config"
	"github.com/walteh/replacecontent/pkg/log"
	"github.com/walteh/replacecontent/pkg/operation"
	"github.com/walteh/replacecontent/pkg/provider"
	"github.com/walteh/replacecontent/pkg/status"
	"gitlab.com/tozd/go/errors"

	// registers the "local" provider
	_ "github.com/walteh/replacecontent/pkg/provider/local"
)

// Flags holds the values of the root command's persistent flags
type Flags struct {
	ConfigFile   string
	Debug        bool
	Directory    string
	File         string
	Replacements string
	Extensions   string
	Write        bool
	Verbose      bool
	Workers      int
	DiffTool     string
}

// RootOpts contains shared options used by all commands. Config, Out and
// UserLogger are set once flags are parsed.
type RootOpts struct {
	Flags      Flags
	Config     *config.Config
	Out        io.Writer
	UserLogger *status.UserLogger
}

// 🏭 NewOperator creates an operator for the current configuration
func (o *RootOpts) NewOperator(ctx context.Context) (*operation.Operator, error) {
	if o.Config == nil {
		return nil, errors.Errorf("configuration not loaded")
	}

	prov, err := provider.New(ctx, "local")
	if err != nil {
		return nil, errors.Errorf("creating provider: %w", err)
	}

	out := o.Out
	if out == nil {
		out = os.Stdout
	}

	level := zerolog.InfoLevel
	if o.Flags.Debug {
		level = zerolog.DebugLevel
	}

	op, err := operation.New(operation.Options{
		Config:   o.Config,
		Provider: prov,
		Status:   status.New("", zerolog.Ctx(ctx)),
		Logger:   log.New(out, level),
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}
	return op, nil
}
