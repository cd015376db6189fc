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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		commentStart string
		commentEnd   string
		want         Sequence
		wantValid    bool
	}{
		{
			name:         "one_placeholder",
			text:         "aaaaaaaaa\n/* <Placeholder TestPlaceholder> */\nbbbbbbbbb\n/* </Placeholder TestPlaceholder> */\nccccccccc",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "aaaaaaaaa\n"},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder TestPlaceholder> */\n", Name: "TestPlaceholder"},
				{Kind: KindPlaceholderContent, Text: "bbbbbbbbb\n", Name: "TestPlaceholder"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder TestPlaceholder> */", Name: "TestPlaceholder"},
				{Kind: KindConstantText, Text: "\nccccccccc"},
			},
			wantValid: true,
		},
		{
			name:         "one_placeholder_indented",
			text:         "aaaaaaaaa\n    /* <Placeholder TestPlaceholder> */\n        bbbbbbbbb\n    /* </Placeholder TestPlaceholder> */\nccccccccc",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "aaaaaaaaa\n    "},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder TestPlaceholder> */\n", Name: "TestPlaceholder", Indentation: "    "},
				{Kind: KindPlaceholderContent, Text: "        bbbbbbbbb\n", Name: "TestPlaceholder"},
				{Kind: KindPlaceholderEnd, Text: "    /* </Placeholder TestPlaceholder> */", Name: "TestPlaceholder"},
				{Kind: KindConstantText, Text: "\nccccccccc"},
			},
			wantValid: true,
		},
		{
			name:         "no_placeholder",
			text:         "aaaaaaaaa\n/* xx */\nbbbbbbbbb\n/* xx */\nccccccccc",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "aaaaaaaaa\n/* xx */\nbbbbbbbbb\n/* xx */\nccccccccc"},
			},
			wantValid: true,
		},
		{
			name:         "end_without_name",
			text:         "/* <Placeholder A> */\nx\n/* </Placeholder> */",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder A> */\n", Name: "A"},
				{Kind: KindPlaceholderContent, Text: "x\n", Name: "A"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder> */", Name: "A"},
			},
			wantValid: true,
		},
		{
			name:         "empty_body",
			text:         "/* <Placeholder A> */\n/* </Placeholder A> */\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder A> */\n", Name: "A"},
				{Kind: KindPlaceholderContent, Text: "", Name: "A"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder A> */", Name: "A"},
				{Kind: KindConstantText, Text: "\n"},
			},
			wantValid: true,
		},
		{
			name:         "inline_placeholder",
			text:         "x = /* <Placeholder V> */1/* </Placeholder V> */;\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "x = "},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder V> */", Name: "V"},
				{Kind: KindPlaceholderContent, Text: "1", Name: "V"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder V> */", Name: "V"},
				{Kind: KindConstantText, Text: ";\n"},
			},
			wantValid: true,
		},
		{
			name:         "nested_comment_uses_inner_start",
			text:         "/* note /* <Placeholder A> */\nold\n/* </Placeholder A> */\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "/* note "},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder A> */\n", Name: "A"},
				{Kind: KindPlaceholderContent, Text: "old\n", Name: "A"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder A> */", Name: "A"},
				{Kind: KindConstantText, Text: "\n"},
			},
			wantValid: true,
		},
		{
			name: "plain_comment_between_regions",
			text: "/* <Placeholder A> */\na\n/* </Placeholder A> */\nmid /* plain */ text\n" +
				"/* <Placeholder B> */\nb\n/* </Placeholder B> */\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder A> */\n", Name: "A"},
				{Kind: KindPlaceholderContent, Text: "a\n", Name: "A"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder A> */", Name: "A"},
				{Kind: KindConstantText, Text: "\nmid /* plain */ text\n"},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder B> */\n", Name: "B"},
				{Kind: KindPlaceholderContent, Text: "b\n", Name: "B"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder B> */", Name: "B"},
				{Kind: KindConstantText, Text: "\n"},
			},
			wantValid: true,
		},
		{
			name:         "html_comments",
			text:         "<div>\n  <!-- <Placeholder Nav> -->\n  <a>old</a>\n  <!-- </Placeholder Nav> -->\n</div>\n",
			commentStart: "<!--",
			commentEnd:   "-->",
			want: Sequence{
				{Kind: KindConstantText, Text: "<div>\n  "},
				{Kind: KindPlaceholderStart, Text: "<!-- <Placeholder Nav> -->\n", Name: "Nav", Indentation: "  "},
				{Kind: KindPlaceholderContent, Text: "  <a>old</a>\n", Name: "Nav"},
				{Kind: KindPlaceholderEnd, Text: "  <!-- </Placeholder Nav> -->", Name: "Nav"},
				{Kind: KindConstantText, Text: "\n</div>\n"},
			},
			wantValid: true,
		},
		{
			name:         "line_comments",
			text:         "#!/bin/sh\n# <Placeholder A>\necho old\n# </Placeholder A>\n",
			commentStart: "#",
			commentEnd:   "\n",
			want: Sequence{
				{Kind: KindConstantText, Text: "#!/bin/sh\n"},
				{Kind: KindPlaceholderStart, Text: "# <Placeholder A>\n", Name: "A"},
				{Kind: KindPlaceholderContent, Text: "echo old\n", Name: "A"},
				{Kind: KindPlaceholderEnd, Text: "# </Placeholder A>\n", Name: "A"},
			},
			wantValid: true,
		},
		{
			name:         "line_comment_at_end_of_text",
			text:         "# <Placeholder A>\nx\n# </Placeholder A>",
			commentStart: "#",
			commentEnd:   "\n",
			want: Sequence{
				{Kind: KindPlaceholderStart, Text: "# <Placeholder A>\n", Name: "A"},
				{Kind: KindPlaceholderContent, Text: "x\n", Name: "A"},
				{Kind: KindPlaceholderEnd, Text: "# </Placeholder A>", Name: "A"},
			},
			wantValid: true,
		},
		{
			name:         "crlf_line_breaks",
			text:         "/* <Placeholder A> */\r\nx\r\n/* </Placeholder A> */\r\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder A> */\r\n", Name: "A"},
				{Kind: KindPlaceholderContent, Text: "x\r\n", Name: "A"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder A> */", Name: "A"},
				{Kind: KindConstantText, Text: "\r\n"},
			},
			wantValid: true,
		},
		{
			name:         "comment_start_not_closed",
			text:         "aaa\n/* <Placeholder T>\nbbb\n/* </Placeholder T> */\nccc",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "aaa\n/* <Placeholder T>\nbbb\n"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder T> */", Name: "T", ErrorMessage: "T is not open."},
				{Kind: KindConstantText, Text: "\nccc"},
			},
		},
		{
			name:         "comment_end_not_closed",
			text:         "aaa\n/* <Placeholder T> */\nbbb\n/* </Placeholder T>\nccc",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "aaa\n"},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder T> */\n", Name: "T"},
				{Kind: KindConstantText, Text: "bbb\n/* </Placeholder T>\nccc", ErrorMessage: "T is still open"},
			},
		},
		{
			name:         "name_mismatch",
			text:         "/* <Placeholder A> */\nx\n/* </Placeholder B> */\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder A> */\n", Name: "A"},
				{Kind: KindPlaceholderContent, Text: "x\n", Name: "B", ErrorMessage: "A expected, B found."},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder B> */", Name: "B", ErrorMessage: "A expected, B found."},
				{Kind: KindConstantText, Text: "\n"},
			},
		},
		{
			name:         "open_at_end_of_text",
			text:         "x\n/* <Placeholder A> */",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "x\n"},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder A> */", Name: "A"},
				{Kind: KindError, ErrorMessage: "A is still open"},
			},
		},
		{
			name:         "code_before_start_marker_gives_no_indentation",
			text:         "f() /* <Placeholder P> */\nx\n/* </Placeholder P> */\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "f() "},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder P> */\n", Name: "P"},
				{Kind: KindPlaceholderContent, Text: "x\n", Name: "P"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder P> */", Name: "P"},
				{Kind: KindConstantText, Text: "\n"},
			},
			wantValid: true,
		},
		{
			name:         "start_while_open",
			text:         "/* <Placeholder A> */\n/* <Placeholder B> */\n/* </Placeholder B> */\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder A> */\n", Name: "A"},
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder B> */\n", Name: "B", ErrorMessage: "A is still open"},
				{Kind: KindPlaceholderContent, Text: "", Name: "B"},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder B> */", Name: "B"},
				{Kind: KindConstantText, Text: "\n"},
			},
		},
		{
			name:         "empty_name",
			text:         "/* <Placeholder  > */\nx\n/* </Placeholder> */\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindPlaceholderStart, Text: "/* <Placeholder  > */\n", Name: "", ErrorMessage: "placeholder name is empty."},
				{Kind: KindPlaceholderContent, Text: "x\n", Name: ""},
				{Kind: KindPlaceholderEnd, Text: "/* </Placeholder> */", Name: ""},
				{Kind: KindConstantText, Text: "\n"},
			},
		},
		{
			name:         "glued_end_prefix_is_not_a_marker",
			text:         "/* </PlaceholderX> */\n",
			commentStart: "/*",
			commentEnd:   "*/",
			want: Sequence{
				{Kind: KindConstantText, Text: "/* </PlaceholderX> */\n"},
			},
			wantValid: true,
		},
		{
			name:         "empty_text",
			text:         "",
			commentStart: "/*",
			commentEnd:   "*/",
			want:         nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Scan(tt.text, tt.commentStart, tt.commentEnd)
			require.NoError(t, err, "scan should succeed")

			assert.Equal(t, tt.want, seq, "parts should match")
			assert.Equal(t, tt.wantValid, seq.IsValid(), "validity should match")
			assert.Equal(t, tt.text, seq.Text(), "parts should reproduce the text")
		})
	}
}

func TestScan_EmptyDelimiters(t *testing.T) {
	_, err := Scan("text", "", "*/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comment delimiters must not be empty")

	_, err = Scan("text", "/*", "")
	require.Error(t, err)
}

func TestScan_BalancedMarkers(t *testing.T) {
	for n := 0; n <= 4; n++ {
		t.Run(fmt.Sprintf("regions_%d", n), func(t *testing.T) {
			var sb strings.Builder
			sb.WriteString("head\n")
			for i := 0; i < n; i++ {
				fmt.Fprintf(&sb, "/* <Placeholder P%d> */\nbody %d\n/* </Placeholder P%d> */\n", i, i, i)
				fmt.Fprintf(&sb, "sep /* comment %d */ text\n", i)
			}

			seq, err := Scan(sb.String(), "/*", "*/")
			require.NoError(t, err)

			// one constant run before the first region and one after each
			k := 1 + n
			assert.Len(t, seq, 3*n+k, "part count should be 3n+k")
			assert.True(t, seq.IsValid(), "sequence should be valid")
			assert.Len(t, seq.Placeholders(), n, "all placeholders should be found")
		})
	}
}

func TestPartKind_String(t *testing.T) {
	assert.Equal(t, "constant", KindConstantText.String())
	assert.Equal(t, "start", KindPlaceholderStart.String())
	assert.Equal(t, "content", KindPlaceholderContent.String())
	assert.Equal(t, "end", KindPlaceholderEnd.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "unknown", PartKind(42).String())
}
