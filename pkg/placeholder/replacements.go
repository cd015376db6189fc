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

package placeholder

import (
	"sort"

	"golang.org/x/text/cases"
)

// 🗺️ ReplacementMap maps placeholder names to replacement values. Names
// are compared case-insensitively. The map must not be written while a
// batch reads it.
type ReplacementMap struct {
	entries map[string]replacementEntry
}

type replacementEntry struct {
	name  string // name as registered
	value string
}

// 🏭 NewReplacementMap creates an empty map
func NewReplacementMap() *ReplacementMap {
	return &ReplacementMap{entries: make(map[string]replacementEntry)}
}

// foldName maps a name to its case-folded key. A Caser is stateful, so a
// fresh one is used per call.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// Set adds or replaces a value. A later Set for the same name wins.
func (m *ReplacementMap) Set(name, value string) {
	if m.entries == nil {
		m.entries = make(map[string]replacementEntry)
	}
	m.entries[foldName(name)] = replacementEntry{name: name, value: value}
}

// SetAll adds every entry of values
func (m *ReplacementMap) SetAll(values map[string]string) {
	for k, v := range values {
		m.Set(k, v)
	}
}

// Get looks up the value for name
func (m *ReplacementMap) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	e, ok := m.entries[foldName(name)]
	return e.value, ok
}

// Len returns the number of entries
func (m *ReplacementMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Names returns the registered names, sorted
func (m *ReplacementMap) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}
