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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrIncompleteScan means the scanner stopped before consuming all input.
// It indicates a scanner defect, never bad input.
var ErrIncompleteScan = errors.Base("content could not be scanned completely")

const (
	startPrefix  = "<Placeholder "
	endPrefix    = "</Placeholder"
	markerSuffix = ">"
	lineComment  = "\n"
)

// 🔄 scanState is either outside any placeholder or inside a named one
type scanState struct {
	inside      bool
	name        string
	indentation string
}

// 📍 cursor tracks the scan position
type cursor struct {
	pending int // start of text not yet emitted as a part
	search  int // where the next comment search starts
}

// 🔍 scanner holds the immutable inputs of one scan
type scanner struct {
	text         string
	commentStart string
	commentEnd   string
}

// 🎯 Scan splits text into a sequence of parts using the given comment
// delimiters. Structural problems are reported on the parts, not as errors;
// the only error is an internal inconsistency of the scanner itself.
func Scan(text, commentStart, commentEnd string) (Sequence, error) {
	if commentStart == "" || commentEnd == "" {
		return nil, errors.Errorf("comment delimiters must not be empty")
	}

	s := scanner{text: text, commentStart: commentStart, commentEnd: commentEnd}

	var (
		st   scanState
		cur  cursor
		seq  Sequence
		done bool
	)
	for !done {
		var parts []Part
		st, cur, parts, done = s.step(st, cur)
		seq = append(seq, parts...)
	}

	if cur.pending != len(text) {
		return nil, errors.Errorf("%w: %d bytes remain at offset %d", ErrIncompleteScan, len(text)-cur.pending, cur.pending)
	}

	return seq, nil
}

// step finds the next comment and classifies it
func (s scanner) step(st scanState, cur cursor) (scanState, cursor, []Part, bool) {
	open := strings.Index(s.text[cur.search:], s.commentStart)
	if open < 0 {
		return s.finish(st, cur)
	}
	open += cur.search

	bodyStart := open + len(s.commentStart)
	closeAt, closeLen, ok := s.findEnd(bodyStart)
	if !ok {
		return s.finish(st, cur)
	}

	// a comment start before the comment end belongs to an inner comment,
	// which is the real boundary
	if inner := strings.Index(s.text[bodyStart:closeAt], s.commentStart); inner >= 0 {
		cur.search = bodyStart + inner
		return st, cur, nil, false
	}

	payload := strings.TrimSpace(s.text[bodyStart:closeAt])
	after := closeAt + closeLen

	if name, ok := parseStart(payload); ok {
		return s.start(st, cur, open, after, name)
	}
	if name, ok := parseEnd(payload); ok {
		return s.end(st, cur, open, after, name)
	}

	// ordinary comment, stays part of the surrounding text
	cur.search = after
	return st, cur, nil, false
}

// findEnd locates the comment end delimiter at or after from
func (s scanner) findEnd(from int) (int, int, bool) {
	idx := strings.Index(s.text[from:], s.commentEnd)
	if idx >= 0 {
		return from + idx, len(s.commentEnd), true
	}
	if s.commentEnd == lineComment {
		// the last line of a file may lack its line break
		return len(s.text), 0, true
	}
	return 0, 0, false
}

// start emits the parts for a start marker and enters the placeholder
func (s scanner) start(st scanState, cur cursor, open, after int, name string) (scanState, cursor, []Part, bool) {
	var parts []Part
	if open > cur.pending {
		parts = append(parts, Part{Kind: KindConstantText, Text: s.text[cur.pending:open]})
	}

	markerEnd := s.consumeLineEnd(after)

	var msg string
	switch {
	case name == "":
		msg = "placeholder name is empty."
	case st.inside:
		msg = fmt.Sprintf("%s is still open", st.name)
	}

	indentation := lineIndentation(s.text, open)
	parts = append(parts, Part{
		Kind:         KindPlaceholderStart,
		Text:         s.text[open:markerEnd],
		Name:         name,
		Indentation:  indentation,
		ErrorMessage: msg,
	})

	next := scanState{inside: true, name: name, indentation: indentation}
	return next, cursor{pending: markerEnd, search: markerEnd}, parts, false
}

// end emits the body and end marker parts and leaves the placeholder.
// When the end marker is alone on its line, the body stops at the start of
// that line and the marker's indentation goes with the end part, so a
// substituted body is not followed by stale indentation.
func (s scanner) end(st scanState, cur cursor, open, after int, name string) (scanState, cursor, []Part, bool) {
	next := cursor{pending: after, search: after}

	if !st.inside {
		var parts []Part
		if open > cur.pending {
			parts = append(parts, Part{Kind: KindConstantText, Text: s.text[cur.pending:open]})
		}
		label := name
		if label == "" {
			label = "placeholder"
		}
		parts = append(parts, Part{
			Kind:         KindPlaceholderEnd,
			Text:         s.text[open:after],
			Name:         name,
			ErrorMessage: fmt.Sprintf("%s is not open.", label),
		})
		return scanState{}, next, parts, false
	}

	if name == "" {
		name = st.name
	}

	var msg string
	if name != st.name {
		msg = fmt.Sprintf("%s expected, %s found.", st.name, name)
	}

	// an end marker on its own line keeps its indentation
	bodyEnd := open
	if ls := lineStart(s.text, open); ls >= cur.pending && isBlank(s.text[ls:open]) {
		bodyEnd = ls
	}

	parts := []Part{
		{
			Kind:         KindPlaceholderContent,
			Text:         s.text[cur.pending:bodyEnd],
			Name:         name,
			ErrorMessage: msg,
		},
		{
			Kind:         KindPlaceholderEnd,
			Text:         s.text[bodyEnd:after],
			Name:         name,
			ErrorMessage: msg,
		},
	}
	return scanState{}, next, parts, false
}

// finish emits the remaining text and ends the scan
func (s scanner) finish(st scanState, cur cursor) (scanState, cursor, []Part, bool) {
	var msg string
	if st.inside {
		msg = fmt.Sprintf("%s is still open", st.name)
	}

	var parts []Part
	switch {
	case cur.pending < len(s.text):
		parts = append(parts, Part{Kind: KindConstantText, Text: s.text[cur.pending:], ErrorMessage: msg})
	case st.inside:
		parts = append(parts, Part{Kind: KindError, ErrorMessage: msg})
	}

	return scanState{}, cursor{pending: len(s.text), search: len(s.text)}, parts, true
}

// consumeLineEnd extends a marker over trailing blanks and one line break
// when nothing else follows on its line
func (s scanner) consumeLineEnd(after int) int {
	if strings.HasSuffix(s.commentEnd, lineComment) {
		return after
	}
	rest := strings.TrimLeft(s.text[after:], " \t")
	j := len(s.text) - len(rest)
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		return j + 2
	case strings.HasPrefix(rest, "\n"):
		return j + 1
	default:
		return after
	}
}

func parseStart(payload string) (string, bool) {
	if !strings.HasPrefix(payload, startPrefix) || !strings.HasSuffix(payload, markerSuffix) {
		return "", false
	}
	return strings.TrimSpace(payload[len(startPrefix) : len(payload)-len(markerSuffix)]), true
}

func parseEnd(payload string) (string, bool) {
	if !strings.HasPrefix(payload, endPrefix) || !strings.HasSuffix(payload, markerSuffix) {
		return "", false
	}
	rest := payload[len(endPrefix) : len(payload)-len(markerSuffix)]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// </PlaceholderX> is not an end marker
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func lineStart(text string, pos int) int {
	return strings.LastIndexAny(text[:pos], "\r\n") + 1
}

// lineIndentation returns the whitespace before pos when it is the whole
// prefix of the line. A marker after code on the same line gets none.
func lineIndentation(text string, pos int) string {
	prefix := text[lineStart(text, pos):pos]
	if !isBlank(prefix) {
		return ""
	}
	return prefix
}

func isBlank(s string) bool {
	return strings.Trim(s, " \t") == ""
}
