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

// Apply concatenates the parts, using replacement text where sub has one
func (s Sequence) Apply(sub *Substitution) string {
	var sb strings.Builder
	for i, p := range s {
		if next, ok := sub.Replacement(i); ok {
			sb.WriteString(next)
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// 🧱 Reassemble builds the final text. It returns false, and an empty
// string, when the result equals original.
func Reassemble(original string, seq Sequence, sub *Substitution) (string, bool) {
	next := seq.Apply(sub)
	if next == original {
		return "", false
	}
	return next, true
}
