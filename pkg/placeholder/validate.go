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

// ✅ IsValid reports whether the sequence is non-empty, carries no
// diagnostics and follows
//
//	constant* (start content end constant*)*
//
// with matching names inside each placeholder.
func (s Sequence) IsValid() bool {
	if len(s) == 0 {
		return false
	}
	for _, p := range s {
		if p.HasError() || p.Kind == KindError {
			return false
		}
	}

	for i := 0; i < len(s); {
		switch s[i].Kind {
		case KindConstantText:
			i++
		case KindPlaceholderStart:
			if i+2 >= len(s) {
				return false
			}
			content, end := s[i+1], s[i+2]
			if content.Kind != KindPlaceholderContent || end.Kind != KindPlaceholderEnd {
				return false
			}
			if content.Name != s[i].Name || end.Name != content.Name {
				return false
			}
			i += 3
		default:
			return false
		}
	}
	return true
}

// 🔍 ContainsError returns the first part carrying a diagnostic. When no
// part has one but the sequence is still not valid, a generic error part is
// returned; use Part.IsGeneric to tell the two apart.
func (s Sequence) ContainsError() (Part, bool) {
	for _, p := range s {
		if p.HasError() {
			return p, true
		}
	}
	if s.IsValid() {
		return Part{}, false
	}
	return Part{Kind: KindError, ErrorMessage: genericInvalid}, true
}
