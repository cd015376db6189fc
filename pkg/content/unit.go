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
	"github.com/walteh/replacecontent/pkg/filetype"
	"github.com/walteh/replacecontent/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
)

// 📄 Unit is one text to process: a file, or text registered under an
// identifier. A unit is owned by one goroutine while it is processed.
type Unit struct {
	Identifier string            // Unique key in its Set
	FilePath   string            // Backing file, empty for in-memory text
	FileType   filetype.FileType // Comment delimiters used by the scan
	Current    string            // Original text

	fileTypeErr error
	seq         placeholder.Sequence
	sub         *placeholder.Substitution
	next        string
	modified    bool
	scanned     bool
	diag        *placeholder.Part
}

// 🏭 NewUnit creates a unit. fileTypeErr records a failed file type lookup
// and makes the unit invalid once scanned.
func NewUnit(id, path, text string, ft filetype.FileType, fileTypeErr error) *Unit {
	return &Unit{
		Identifier:  id,
		FilePath:    path,
		FileType:    ft,
		Current:     text,
		fileTypeErr: fileTypeErr,
	}
}

// Skipped reports whether the unit has no text to scan
func (u *Unit) Skipped() bool {
	return u.Current == ""
}

// 🔍 Scan splits the text into parts. Marker problems make the unit invalid
// but are not returned as errors; only a scanner defect is.
func (u *Unit) Scan() error {
	u.scanned = true
	u.seq, u.sub, u.next, u.modified, u.diag = nil, nil, "", false, nil

	if u.Skipped() {
		return nil
	}

	if u.fileTypeErr != nil {
		u.fail(filetype.ErrUnknownFileType.Error())
		return nil
	}
	if err := u.FileType.Validate(); err != nil {
		u.fail(err.Error())
		return nil
	}

	seq, err := placeholder.Scan(u.Current, u.FileType.CommentStart, u.FileType.CommentEnd)
	if err != nil {
		return errors.Errorf("scanning %s: %w", u.Identifier, err)
	}
	u.seq = seq

	if diag, bad := seq.ContainsError(); bad {
		u.diag = &diag
	}
	return nil
}

func (u *Unit) fail(msg string) {
	u.diag = &placeholder.Part{Kind: placeholder.KindError, ErrorMessage: msg}
}

// 🔄 Substitute computes replacement text for the unit's placeholders.
// Invalid and skipped units are left alone.
func (u *Unit) Substitute(m *placeholder.ReplacementMap) error {
	if !u.scanned {
		return errors.Errorf("substituting %s: unit is not scanned", u.Identifier)
	}
	if u.Skipped() || !u.Valid() {
		return nil
	}

	sub, err := placeholder.Substitute(u.seq, m)
	if err != nil {
		return errors.Errorf("substituting %s: %w", u.Identifier, err)
	}
	u.sub = sub
	return nil
}

// 🧱 Reassemble builds the final text and decides Modified
func (u *Unit) Reassemble() {
	if u.sub == nil {
		u.next, u.modified = "", false
		return
	}
	u.next, u.modified = placeholder.Reassemble(u.Current, u.seq, u.sub)
}

// 🎯 Process runs scan, substitution and reassembly
func (u *Unit) Process(m *placeholder.ReplacementMap) error {
	if err := u.Scan(); err != nil {
		return err
	}
	if err := u.Substitute(m); err != nil {
		return err
	}
	u.Reassemble()
	return nil
}

// Valid reports whether the unit scanned without diagnostics
func (u *Unit) Valid() bool {
	return u.diag == nil
}

// Diagnostic returns the first problem found by the scan
func (u *Unit) Diagnostic() (placeholder.Part, bool) {
	if u.diag == nil {
		return placeholder.Part{}, false
	}
	return *u.diag, true
}

// Sequence returns the scanned parts
func (u *Unit) Sequence() placeholder.Sequence {
	return u.seq
}

// Modified reports whether the final text differs from the original
func (u *Unit) Modified() bool {
	return u.modified
}

// Next returns the final text, empty when nothing changed
func (u *Unit) Next() string {
	return u.next
}

// Missing returns placeholders without a replacement value
func (u *Unit) Missing() []string {
	if u.sub == nil {
		return nil
	}
	return u.sub.Missing
}

// 📝 Change describes one placeholder body of a unit
type Change struct {
	Placeholder string
	Old         string
	New         string
	Missing     bool // no replacement value was found
}

// Changes lists placeholders whose body changes, and those without a value.
// Unchanged bodies are left out.
func (u *Unit) Changes() []Change {
	if u.sub == nil {
		return nil
	}
	var changes []Change
	for i, p := range u.seq {
		if p.Kind != placeholder.KindPlaceholderContent {
			continue
		}
		next, ok := u.sub.Replacement(i)
		switch {
		case !ok:
			changes = append(changes, Change{Placeholder: p.Name, Old: p.Text, Missing: true})
		case next != p.Text:
			changes = append(changes, Change{Placeholder: p.Name, Old: p.Text, New: next})
		}
	}
	return changes
}
