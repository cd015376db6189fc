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

package provider

import (
	"context"
	"io"

	"github.com/walteh/replacecontent/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Provider is the interface for content sources
type Provider interface {
	// 📂 ListFiles returns the paths of all content files selected by args
	ListFiles(ctx context.Context, args config.SourceArgs) ([]string, error)

	// 📄 GetFile retrieves a single file's contents
	GetFile(ctx context.Context, args config.SourceArgs, path string) (io.ReadCloser, error)

	// 📝 GetSourceInfo returns a string describing the source
	GetSourceInfo(ctx context.Context, args config.SourceArgs) (string, error)
}

// 🏭 Factory creates a new provider
type Factory func(ctx context.Context) (Provider, error)

var (
	// 🗺️ providers is a map of provider names to factories
	providers = make(map[string]Factory)
)

// 📝 Register registers a provider factory
func Register(name string, factory Factory) {
	providers[name] = factory
}

// 🎯 Get returns a provider factory by name
func Get(name string) Factory {
	return providers[name]
}

// 🏭 New creates the provider registered under name
func New(ctx context.Context, name string) (Provider, error) {
	factory := Get(name)
	if factory == nil {
		return nil, errors.Errorf("unknown provider: %s", name)
	}
	return factory(ctx)
}

// 📥 ReadFile reads a whole file through p
func ReadFile(ctx context.Context, p Provider, args config.SourceArgs, path string) (string, error) {
	rc, err := p.GetFile(ctx, args, path)
	if err != nil {
		return "", errors.Errorf("getting file %s: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", errors.Errorf("reading file %s: %w", path, err)
	}
	return string(data), nil
}
