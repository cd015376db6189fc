/*
Package report renders what a pass would change.

🎯 Purpose:
- Line diffs of placeholder bodies, built with diffmatchpatch
- Per-unit text reports merged in input order
- Launching an external diff tool for a ".temp" side file and its target

📝 Report format:

	Identifier: web/index.html
	Placeholder: Nav
	-   <a href="/">old</a>
	+   <a href="/">Home</a>
	Placeholder: Footer (no replacement found)

Invalid units are listed separately by Invalid.
*/
package report
