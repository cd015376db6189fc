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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute_Reassemble(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		commentStart string
		commentEnd   string
		values       map[string]string
		want         string
		wantModified bool
		wantMissing  []string
	}{
		{
			name:         "indentation_reflow",
			text:         "  /* <Placeholder P> */\n    old\n  /* </Placeholder P> */\n",
			values:       map[string]string{"P": "line1\nline2"},
			want:         "  /* <Placeholder P> */\n  line1\n  line2\n  /* </Placeholder P> */\n",
			wantModified: true,
		},
		{
			name:         "verbatim_keeps_trailing_newline",
			text:         "/* <Placeholder P> */\nold\n/* </Placeholder P> */\n",
			values:       map[string]string{"P": "new"},
			want:         "/* <Placeholder P> */\nnew\n/* </Placeholder P> */\n",
			wantModified: true,
		},
		{
			name:         "verbatim_value_with_own_newline",
			text:         "/* <Placeholder P> */\nold\n/* </Placeholder P> */\n",
			values:       map[string]string{"P": "new\n"},
			want:         "/* <Placeholder P> */\nnew\n/* </Placeholder P> */\n",
			wantModified: true,
		},
		{
			name:         "case_insensitive_name",
			text:         "/* <Placeholder TestPlaceholder> */\nold\n/* </Placeholder TestPlaceholder> */\n",
			values:       map[string]string{"testplaceholder": "new"},
			want:         "/* <Placeholder TestPlaceholder> */\nnew\n/* </Placeholder TestPlaceholder> */\n",
			wantModified: true,
		},
		{
			name:         "empty_body",
			text:         "/* <Placeholder P> */\n/* </Placeholder P> */\n",
			values:       map[string]string{"P": "x"},
			want:         "/* <Placeholder P> */\nx\n/* </Placeholder P> */\n",
			wantModified: true,
		},
		{
			name:         "empty_body_indented",
			text:         "  /* <Placeholder P> */\n  /* </Placeholder P> */\n",
			values:       map[string]string{"P": "a\nb"},
			want:         "  /* <Placeholder P> */\n  a\n  b\n  /* </Placeholder P> */\n",
			wantModified: true,
		},
		{
			name:         "blank_lines_are_not_indented",
			text:         "\t/* <Placeholder P> */\n\told\n\t/* </Placeholder P> */\n",
			values:       map[string]string{"P": "a\n\nb"},
			want:         "\t/* <Placeholder P> */\n\ta\n\n\tb\n\t/* </Placeholder P> */\n",
			wantModified: true,
		},
		{
			name:         "inline",
			text:         "x = /* <Placeholder V> */1/* </Placeholder V> */;\n",
			values:       map[string]string{"V": "2"},
			want:         "x = /* <Placeholder V> */2/* </Placeholder V> */;\n",
			wantModified: true,
		},
		{
			name:         "html",
			text:         "<div>\n  <!-- <Placeholder Nav> -->\n  <a>old</a>\n  <!-- </Placeholder Nav> -->\n</div>\n",
			commentStart: "<!--",
			commentEnd:   "-->",
			values:       map[string]string{"Nav": "<a>1</a>\n<a>2</a>"},
			want:         "<div>\n  <!-- <Placeholder Nav> -->\n  <a>1</a>\n  <a>2</a>\n  <!-- </Placeholder Nav> -->\n</div>\n",
			wantModified: true,
		},
		{
			name:         "line_comments",
			text:         "#!/bin/sh\n# <Placeholder A>\necho old\n# </Placeholder A>\n",
			commentStart: "#",
			commentEnd:   "\n",
			values:       map[string]string{"A": "echo new"},
			want:         "#!/bin/sh\n# <Placeholder A>\necho new\n# </Placeholder A>\n",
			wantModified: true,
		},
		{
			name:         "crlf_body",
			text:         "/* <Placeholder P> */\r\nold\r\n/* </Placeholder P> */\r\n",
			values:       map[string]string{"P": "new"},
			want:         "/* <Placeholder P> */\r\nnew\r\n/* </Placeholder P> */\r\n",
			wantModified: true,
		},
		{
			name:         "value_equals_body",
			text:         "  /* <Placeholder P> */\n  line1\n  line2\n  /* </Placeholder P> */\n",
			values:       map[string]string{"P": "line1\nline2"},
			want:         "",
			wantModified: false,
		},
		{
			name:         "missing_replacement",
			text:         "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n/* <Placeholder B> */\nold\n/* </Placeholder B> */\n",
			values:       map[string]string{"B": "new"},
			want:         "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n/* <Placeholder B> */\nnew\n/* </Placeholder B> */\n",
			wantModified: true,
			wantMissing:  []string{"A"},
		},
		{
			name:         "empty_map_is_a_no_op",
			text:         "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n",
			values:       map[string]string{},
			want:         "",
			wantModified: false,
			wantMissing:  []string{"A"},
		},
		{
			name:         "no_placeholders",
			text:         "just text\n",
			values:       map[string]string{"A": "x"},
			want:         "",
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentStart, commentEnd := tt.commentStart, tt.commentEnd
			if commentStart == "" {
				commentStart, commentEnd = "/*", "*/"
			}

			values := NewReplacementMap()
			values.SetAll(tt.values)

			seq, err := Scan(tt.text, commentStart, commentEnd)
			require.NoError(t, err, "scan should succeed")
			require.True(t, seq.IsValid(), "sequence should be valid")

			sub, err := Substitute(seq, values)
			require.NoError(t, err, "substitute should succeed")
			assert.Equal(t, tt.wantModified, sub.Modified, "provisional modified flag should match")
			assert.Equal(t, tt.wantMissing, sub.Missing, "missing placeholders should match")

			got, modified := Reassemble(tt.text, seq, sub)
			assert.Equal(t, tt.wantModified, modified, "modified should match")
			assert.Equal(t, tt.want, got, "final text should match")

			if !modified {
				return
			}

			// a second pass with the same values changes nothing
			seq2, err := Scan(got, commentStart, commentEnd)
			require.NoError(t, err)
			sub2, err := Substitute(seq2, values)
			require.NoError(t, err)
			again, modified2 := Reassemble(got, seq2, sub2)
			assert.False(t, modified2, "second pass should not modify")
			assert.Empty(t, again)
			assert.False(t, sub2.Modified)
		})
	}
}

func TestSubstitute_InvalidSequence(t *testing.T) {
	values := NewReplacementMap()
	values.Set("A", "x")

	tests := []struct {
		name    string
		text    string
		wantMsg string
	}{
		{name: "name_mismatch", text: "/* <Placeholder A> */\nx\n/* </Placeholder B> */\n", wantMsg: "A expected, B found."},
		{name: "unterminated", text: "/* <Placeholder A> */\nx\n", wantMsg: "A is still open"},
		{name: "empty", text: "", wantMsg: "Is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Scan(tt.text, "/*", "*/")
			require.NoError(t, err)

			sub, err := Substitute(seq, values)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSequence)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Nil(t, sub)
		})
	}
}

func TestSubstitute_DoesNotMutateSequence(t *testing.T) {
	text := "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n"
	seq, err := Scan(text, "/*", "*/")
	require.NoError(t, err)

	values := NewReplacementMap()
	values.Set("A", "new")

	sub, err := Substitute(seq, values)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.Len())

	next, ok := sub.Replacement(1)
	assert.True(t, ok)
	assert.Equal(t, "new\n", next)
	assert.Equal(t, "old\n", seq[1].Text, "original part text should be untouched")
	assert.Equal(t, text, seq.Text())
}

func TestReassemble_NilSubstitution(t *testing.T) {
	text := "/* <Placeholder A> */\nold\n/* </Placeholder A> */\n"
	seq, err := Scan(text, "/*", "*/")
	require.NoError(t, err)

	got, modified := Reassemble(text, seq, nil)
	assert.False(t, modified)
	assert.Empty(t, got)
}

func TestTokenizeLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []lineToken
	}{
		{name: "empty", input: "", want: nil},
		{name: "single_word", input: "a", want: []lineToken{{text: "a"}}},
		{
			name:  "mixed_breaks",
			input: "a\r\nb\n\nc",
			want: []lineToken{
				{text: "a"},
				{text: "\r\n", newline: true},
				{text: "b"},
				{text: "\n\n", newline: true},
				{text: "c"},
			},
		},
		{
			name:  "leading_and_trailing_breaks",
			input: "\na\n",
			want: []lineToken{
				{text: "\n", newline: true},
				{text: "a"},
				{text: "\n", newline: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenizeLines(tt.input))
		})
	}
}
