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
	"strings"
)

// 🧩 PartKind classifies a scanned part
type PartKind int

const (
	KindConstantText PartKind = iota
	KindPlaceholderStart
	KindPlaceholderContent
	KindPlaceholderEnd
	KindError
)

// String returns a string representation of PartKind
func (k PartKind) String() string {
	switch k {
	case KindConstantText:
		return "constant"
	case KindPlaceholderStart:
		return "start"
	case KindPlaceholderContent:
		return "content"
	case KindPlaceholderEnd:
		return "end"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// genericInvalid is the message of the part synthesized by ContainsError
const genericInvalid = "Is not valid"

// 📄 Part is one token of a scanned sequence. Parts are values and are
// never mutated after the scan; replacement text lives in a Substitution.
type Part struct {
	Kind         PartKind // Classification
	Text         string   // Exact source text covered by this part
	Name         string   // Placeholder name (start, content, end)
	Indentation  string   // Whitespace prefix of the marker line (start only)
	ErrorMessage string   // Diagnostic, empty when the part is fine
}

// HasError reports whether the part carries a diagnostic
func (p Part) HasError() bool {
	return p.ErrorMessage != ""
}

// IsGeneric reports whether the part is the synthesized fallback diagnostic
// rather than one located in the scanned text
func (p Part) IsGeneric() bool {
	return p.Kind == KindError && p.ErrorMessage == genericInvalid && p.Text == ""
}

// 📚 Sequence is the ordered output of one scan
type Sequence []Part

// Text concatenates the original text of all parts
func (s Sequence) Text() string {
	var sb strings.Builder
	for _, p := range s {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Placeholders returns the names of all placeholder content parts in order
func (s Sequence) Placeholders() []string {
	var names []string
	for _, p := range s {
		if p.Kind == KindPlaceholderContent {
			names = append(names, p.Name)
		}
	}
	return names
}

// startFor returns the start part paired with the content part at index i
func (s Sequence) startFor(i int) (Part, bool) {
	if i < 1 || i >= len(s) || s[i-1].Kind != KindPlaceholderStart {
		return Part{}, false
	}
	return s[i-1], true
}
