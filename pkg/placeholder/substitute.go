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

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidSequence is returned when substitution is asked to change a
// sequence that is not well-formed
var ErrInvalidSequence = errors.Base("sequence is not valid")

// 🔄 Substitution overlays replacement text onto a sequence by part index.
// The sequence itself is left untouched.
type Substitution struct {
	replacements map[int]string
	Missing      []string // placeholders without a replacement value, in order
	Modified     bool     // provisional, Reassemble decides
}

// Replacement returns the replacement text for the part at index i
func (s *Substitution) Replacement(i int) (string, bool) {
	if s == nil {
		return "", false
	}
	text, ok := s.replacements[i]
	return text, ok
}

// Len returns the number of parts with replacement text
func (s *Substitution) Len() int {
	if s == nil {
		return 0
	}
	return len(s.replacements)
}

// 🎯 Substitute computes replacement text for every placeholder body whose
// name has a value in m. Names without a value are recorded in Missing.
func Substitute(seq Sequence, m *ReplacementMap) (*Substitution, error) {
	if diag, bad := seq.ContainsError(); bad {
		return nil, errors.Errorf("%w: %s", ErrInvalidSequence, diag.ErrorMessage)
	}

	sub := &Substitution{replacements: make(map[int]string)}
	for i, p := range seq {
		if p.Kind != KindPlaceholderContent {
			continue
		}
		start, ok := seq.startFor(i)
		if !ok {
			return nil, errors.Errorf("%w: content %q has no start", ErrInvalidSequence, p.Name)
		}

		value, ok := m.Get(p.Name)
		if !ok {
			sub.Missing = append(sub.Missing, p.Name)
			continue
		}

		next := render(value, start, p)
		sub.replacements[i] = next
		if next != p.Text {
			sub.Modified = true
		}
	}

	return sub, nil
}

// render fits value into the body of a placeholder, keeping the captured
// indentation and the body's trailing line break
func render(value string, start, content Part) string {
	trailing := trailingLineBreak(content.Text)
	if content.Text == "" {
		trailing = trailingLineBreak(start.Text)
	}

	if start.Indentation == "" {
		if trailing != "" && trailingLineBreak(value) == "" {
			return value + trailing
		}
		return value
	}

	var sb strings.Builder
	lastWasNewline := false
	for _, tok := range tokenizeLines(value) {
		if tok.newline {
			sb.WriteString(tok.text)
			lastWasNewline = true
			continue
		}
		sb.WriteString(start.Indentation)
		sb.WriteString(tok.text)
		lastWasNewline = false
	}
	if !lastWasNewline && trailing != "" {
		sb.WriteString(trailing)
	}
	return sb.String()
}

func trailingLineBreak(s string) string {
	return s[len(strings.TrimRight(s, "\r\n")):]
}

// 🔤 lineToken is either a run of line text or a run of line breaks
type lineToken struct {
	text    string
	newline bool
}

// tokenizeLines splits s into alternating text and line break runs
func tokenizeLines(s string) []lineToken {
	var tokens []lineToken
	for s != "" {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			tokens = append(tokens, lineToken{text: s})
			break
		}
		if i > 0 {
			tokens = append(tokens, lineToken{text: s[:i]})
			s = s[i:]
		}
		n := len(s) - len(strings.TrimLeft(s, "\r\n"))
		tokens = append(tokens, lineToken{text: s[:n], newline: true})
		s = s[n:]
	}
	return tokens
}
