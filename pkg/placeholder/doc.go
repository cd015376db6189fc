/*
Package placeholder finds, validates and replaces named placeholder regions
marked by comments in arbitrary text.

	  text ──► Scan ──► Sequence ──► IsValid / ContainsError
	                        │
	                        ▼
	        ReplacementMap ─► Substitute ──► Substitution (overlay)
	                                              │
	                                              ▼
	                                         Reassemble ──► final text, modified

🎯 Markers, shown here with HTML comments:

	<!-- <Placeholder Name> -->
	...body...
	<!-- </Placeholder Name> -->

The end marker may omit the name. Comment delimiters come from the caller,
so the same markers work inside C style block comments, <# ... #> or
# ... line comments.

🔄 Flow:
 1. Scan walks the text once and emits constant text, start, content and
    end parts. Comments that are not markers stay inside constant text.
 2. IsValid checks the part grammar; ContainsError returns the first
    diagnostic, or a generic one for grammar violations.
 3. Substitute computes new body text per placeholder, re-indenting
    multi-line values with the start marker's indentation and keeping the
    body's trailing line break.
 4. Reassemble joins the parts and reports whether anything changed.

Sequences are never mutated after Scan, so they can be read from several
goroutines. A ReplacementMap is safe for concurrent reads.

🔍 Example:

	seq, err := placeholder.Scan(text, ft.CommentStart, ft.CommentEnd)
	if err != nil {
		return err
	}
	if diag, bad := seq.ContainsError(); bad {
		return fmt.Errorf("invalid markers: %s", diag.ErrorMessage)
	}
	sub, err := placeholder.Substitute(seq, values)
	if err != nil {
		return err
	}
	next, changed := placeholder.Reassemble(text, seq, sub)
*/
package placeholder
