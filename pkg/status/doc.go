/*
Package status writes processed content to disk and tracks per-unit outcomes.

	              +-------------+
	              |   Manager   |
	              +------+------+
	                     |
	      +--------------+---------------+
	      |                              |
	+-----+-------+              +-------+--------+
	| FileManager |              | StatusReporter |
	| (atomic I/O)|              |   (tracking)   |
	+-------------+              +-------+--------+
	                                     |
	                     +---------------+-------------+
	                     |                             |
	             +-------+-------+             +-------+------+
	             | FileFormatter |             |  UserLogger  |
	             |  (log lines)  |             |   (pterm)    |
	             +---------------+             +--------------+

🎯 Purpose:
- Replaces files atomically so a crash never leaves half-written content
- Writes and cleans up the ".temp" side files handed to diff tools
- Records the status of every unit for the end-of-run summary

🔄 Flow:
 1. The runner calls TrackFile once per unit with its FileInfo
 2. Modified units are written with WriteFileAtomic, or exposed
    through WriteTempFile when only showing
 3. Summary and ListFiles feed the final report

⚡ Statuses:

	unchanged  nothing to replace
	modified   replacement would change the file
	updated    changed content was written
	invalid    markers are not well-formed
	skipped    empty content

🔍 Example:

	mgr := status.New(cfg.Directory, zerolog.Ctx(ctx))
	if err := mgr.WriteFileAtomic(ctx, path, []byte(next)); err != nil {
		return err
	}
	mgr.TrackFile(ctx, path, status.FileInfo{Status: status.StatusUpdated})
*/
package status
