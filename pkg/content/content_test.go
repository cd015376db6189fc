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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/replacecontent/pkg/filetype"
	"github.com/walteh/replacecontent/pkg/placeholder"
)

func values(kv map[string]string) *placeholder.ReplacementMap {
	m := placeholder.NewReplacementMap()
	m.SetAll(kv)
	return m
}

func TestUnit_Process(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		text         string
		values       map[string]string
		wantValid    bool
		wantDiag     string
		wantModified bool
		wantNext     string
		wantChanges  []Change
	}{
		{
			name:         "replaces_body",
			id:           "a.js",
			text:         "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n",
			values:       map[string]string{"A": "new"},
			wantValid:    true,
			wantModified: true,
			wantNext:     "/* <Placeholder A> */\nnew\n/* </Placeholder A> */\n",
			wantChanges:  []Change{{Placeholder: "A", Old: "old\n", New: "new\n"}},
		},
		{
			name:         "html_file_type_from_identifier",
			id:           "page.html",
			text:         "<!-- <Placeholder A> -->\nold\n<!-- </Placeholder A> -->\n",
			values:       map[string]string{"a": "new"},
			wantValid:    true,
			wantModified: true,
			wantNext:     "<!-- <Placeholder A> -->\nnew\n<!-- </Placeholder A> -->\n",
			wantChanges:  []Change{{Placeholder: "A", Old: "old\n", New: "new\n"}},
		},
		{
			name:        "missing_value_is_reported",
			id:          "a.js",
			text:        "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n",
			values:      map[string]string{},
			wantValid:   true,
			wantChanges: []Change{{Placeholder: "A", Old: "old\n", Missing: true}},
		},
		{
			name:      "invalid_markers",
			id:        "a.js",
			text:      "/* <Placeholder A> */\nold\n/* </Placeholder B> */\n",
			values:    map[string]string{"A": "new"},
			wantValid: false,
			wantDiag:  "A expected, B found.",
		},
		{
			name:      "empty_text_is_skipped",
			id:        "a.js",
			text:      "",
			values:    map[string]string{"A": "new"},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewSet(filetype.Defaults())
			u, err := set.AddText(tt.id, tt.text)
			require.NoError(t, err)

			require.NoError(t, u.Process(values(tt.values)))
			assert.Equal(t, tt.wantValid, u.Valid(), "validity should match")
			assert.Equal(t, tt.wantModified, u.Modified(), "modified should match")
			assert.Equal(t, tt.wantNext, u.Next(), "final text should match")
			assert.Equal(t, tt.wantChanges, u.Changes(), "changes should match")

			diag, bad := u.Diagnostic()
			assert.Equal(t, !tt.wantValid, bad)
			if tt.wantDiag != "" {
				assert.Equal(t, tt.wantDiag, diag.ErrorMessage)
				assert.Equal(t, []*Unit{u}, set.Invalid())
			}
		})
	}
}

func TestUnit_FileTypeProblems(t *testing.T) {
	t.Run("unknown_file_type", func(t *testing.T) {
		types := filetype.NewRegistry()
		types.Register(".js", filetype.FileType{CommentStart: "/*", CommentEnd: "*/"})

		set := NewSet(types)
		u, err := set.AddText("notes.txt", "text")
		require.NoError(t, err)
		require.NoError(t, u.Process(values(nil)))

		diag, bad := u.Diagnostic()
		assert.True(t, bad)
		assert.Equal(t, "Unknown FileType", diag.ErrorMessage)
	})

	t.Run("empty_comment_end", func(t *testing.T) {
		u := NewUnit("x", "", "text", filetype.FileType{CommentStart: "/*"}, nil)
		require.NoError(t, u.Process(values(nil)))

		diag, bad := u.Diagnostic()
		assert.True(t, bad)
		assert.Equal(t, "FileType.CommentEnd is empty.", diag.ErrorMessage)
		assert.False(t, u.Modified())
	})
}

func TestUnit_SubstituteBeforeScan(t *testing.T) {
	u := NewUnit("x.js", "", "text", filetype.FileType{CommentStart: "/*", CommentEnd: "*/"}, nil)
	err := u.Substitute(values(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not scanned")
}

func TestUnit_RescanResetsState(t *testing.T) {
	u := NewUnit("x.js", "", "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n", filetype.FileType{CommentStart: "/*", CommentEnd: "*/"}, nil)
	require.NoError(t, u.Process(values(map[string]string{"A": "new"})))
	require.True(t, u.Modified())

	require.NoError(t, u.Scan())
	assert.False(t, u.Modified(), "scan should clear previous results")
	assert.Empty(t, u.Next())
	assert.Nil(t, u.Changes())
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	set := NewSet(filetype.Defaults())

	a, err := set.AddFile(ctx, "dir/../a.ts", "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n")
	require.NoError(t, err)
	assert.Equal(t, "a.ts", a.Identifier, "path should be cleaned")
	assert.Equal(t, "a.ts", a.FilePath)
	assert.Equal(t, "Typescript", a.FileType.Name)

	b, err := set.AddText("b.sql", "select 1;")
	require.NoError(t, err)
	assert.Empty(t, b.FilePath)

	_, err = set.AddText("a.ts", "dup")
	assert.ErrorIs(t, err, ErrDuplicateIdentifier)

	got, ok := set.Get("b.sql")
	assert.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []*Unit{a, b}, set.Units(), "registration order is kept")

	m := values(map[string]string{"A": "new"})
	for _, u := range set.Units() {
		require.NoError(t, u.Process(m))
	}
	assert.Equal(t, []*Unit{a}, set.Modified())
	assert.Empty(t, set.Invalid())
}
