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

package report

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/replacecontent/pkg/content"
)

// NoReplacement marks a placeholder without a value in the report
const NoReplacement = "(no replacement found)"

// NoDifferences is printed when no unit changes
const NoDifferences = "No differences found."

// 🔀 LineOp is the kind of a diff line
type LineOp int

const (
	LineEqual LineOp = iota
	LineDelete
	LineInsert
)

// prefix returns the marker printed in front of a diff line
func (o LineOp) prefix() string {
	switch o {
	case LineDelete:
		return "- "
	case LineInsert:
		return "+ "
	default:
		return "  "
	}
}

// 📝 DiffLine is one line of a line diff, without its line break
type DiffLine struct {
	Op   LineOp
	Text string
}

// 🔍 LineDiff compares two texts line by line
func LineDiff(old, new string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := LineEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = LineDelete
		case diffmatchpatch.DiffInsert:
			op = LineInsert
		}
		for _, line := range splitLines(d.Text) {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out
}

// splitLines splits on line breaks, dropping the final empty element and
// any carriage return
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// FormatLineDiff renders a line diff with "- ", "+ " and "  " prefixes
func FormatLineDiff(lines []DiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Op.prefix())
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// 📄 Unit renders the report of one unit. Units that are invalid, or have
// neither changes nor missing values, render as the empty string.
func Unit(u *content.Unit) string {
	if !u.Valid() {
		return ""
	}
	changes := u.Changes()
	if len(changes) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Identifier: %s\n", u.Identifier)
	for _, c := range changes {
		if c.Missing {
			fmt.Fprintf(&b, "Placeholder: %s %s\n", c.Placeholder, NoReplacement)
			continue
		}
		fmt.Fprintf(&b, "Placeholder: %s\n", c.Placeholder)
		b.WriteString(FormatLineDiff(LineDiff(c.Old, c.New)))
	}
	return b.String()
}

// 🧾 Join merges per-unit reports in order, separating them by a blank line
func Join(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// ❌ Invalid lists invalid units as "invalid: <id>: <message>"
func Invalid(units []*content.Unit) string {
	var b strings.Builder
	for _, u := range units {
		diag, bad := u.Diagnostic()
		if !bad {
			continue
		}
		fmt.Fprintf(&b, "invalid: %s: %s\n", u.Identifier, diag.ErrorMessage)
	}
	return b.String()
}
