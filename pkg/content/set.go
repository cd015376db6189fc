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

package content

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/replacecontent/pkg/filetype"
	"gitlab.com/tozd/go/errors"
)

// ErrDuplicateIdentifier is returned when an identifier is registered twice
var ErrDuplicateIdentifier = errors.Base("duplicate content identifier")

// 📚 Set is an ordered collection of units keyed by identifier
type Set struct {
	types *filetype.Registry
	units []*Unit
	byID  map[string]*Unit
}

// 🏭 NewSet creates an empty set resolving file types through types
func NewSet(types *filetype.Registry) *Set {
	return &Set{
		types: types,
		byID:  make(map[string]*Unit),
	}
}

func (s *Set) add(u *Unit) (*Unit, error) {
	if _, ok := s.byID[u.Identifier]; ok {
		return nil, errors.Errorf("%w: %s", ErrDuplicateIdentifier, u.Identifier)
	}
	s.byID[u.Identifier] = u
	s.units = append(s.units, u)
	return u, nil
}

// AddText registers in-memory text. The file type is taken from the
// identifier's extension.
func (s *Set) AddText(id, text string) (*Unit, error) {
	ft, err := s.types.Lookup(id)
	return s.add(NewUnit(id, "", text, ft, err))
}

// 📥 AddFile registers the text of a file. The path is the identifier.
func (s *Set) AddFile(ctx context.Context, path, text string) (*Unit, error) {
	path = filepath.Clean(path)
	ft, err := s.types.Lookup(path)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("path", path).Err(err).Msg("no file type for content")
	}
	return s.add(NewUnit(path, path, text, ft, err))
}

// Get returns the unit registered under id
func (s *Set) Get(id string) (*Unit, bool) {
	u, ok := s.byID[id]
	return u, ok
}

// Units returns all units in registration order
func (s *Set) Units() []*Unit {
	return s.units
}

// Len returns the number of units
func (s *Set) Len() int {
	return len(s.units)
}

// Invalid returns scanned units with a diagnostic, in order
func (s *Set) Invalid() []*Unit {
	var out []*Unit
	for _, u := range s.units {
		if u.scanned && !u.Valid() {
			out = append(out, u)
		}
	}
	return out
}

// Modified returns units whose text changed, in order
func (s *Set) Modified() []*Unit {
	var out []*Unit
	for _, u := range s.units {
		if u.Modified() {
			out = append(out, u)
		}
	}
	return out
}
