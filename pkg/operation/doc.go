/*
Package operation runs replacecontent passes: it loads content through a
provider, processes every unit in parallel and then shows, writes or checks
the result.

	+------------+     +-----------+     +-------------+
	|  Provider  | --> |   Load    | --> | content.Set |
	+------------+     +-----------+     +------+------+
	                                            |
	+--------------+                     +------+------+
	| Replacements | ------------------> |   Process   |
	+--------------+                     |  (errgroup) |
	                                     +------+------+
	                                            |
	              +--------------+--------------+-------------+
	              |              |              |             |
	          +---+---+     +----+---+     +----+---+    +----+---+
	          | Show  |     | Update |     | Check  |    | Watch  |
	          +-------+     +--------+     +--------+    +--------+

🎯 Purpose:
- Loads replacement values and content, then runs the placeholder engine
- Keeps file I/O in the status package and listing in the provider
- Reports per-unit outcomes through the status manager and console logger

🔄 Flow:
 1. LoadReplacements reads the replacements directory, then inline values
 2. Load lists and reads files with a bounded Runner
 3. Process scans, substitutes and reassembles each unit on its own
    goroutine; units never share mutable state
 4. Show prints a line diff per placeholder, or writes ".temp" side files
    and starts the diff tool as: tool <temp> <target>
 5. Update writes modified units atomically
 6. Check only validates

⚡ Errors:
- Malformed markers never abort a pass. They are listed as
  "invalid: <id>: <message>" and Update and Check return ErrInvalidContent
  after finishing everything else.
- Read, write and scanner failures abort the pass.

👁️ Watch runs Update (or Show without write) once, then again whenever
files under the content or replacements directories settle after a change.

🔍 Example:

	op, err := operation.New(operation.Options{
		Config:   cfg,
		Provider: prov,
		Logger:   log.New(os.Stdout, zerolog.InfoLevel),
	})
	if err != nil {
		return err
	}
	if _, err := op.Update(ctx); err != nil {
		return err
	}
*/
package operation
