/*
Package config loads and validates replacecontent configuration.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +---------+-----+-----+-------------------+
	   |         |           |                   |
	+--+---+ +---+--+ +------+------+ +----------+---------+
	| YAML | | JSON | |     HCL     | |  .replacecontent   |
	+------+ +------+ +-------------+ |  (YAML, then HCL)  |
	                                  +--------------------+

🎯 Purpose:
- Selects a parser by file name through the Parser registry
- Rejects unknown keys in every format
- Applies defaults and normalizes paths and extensions

🔄 Flow:
 1. Load reads the file and picks a parser with GetParser
 2. The parser decodes into Config without applying defaults
 3. Validate fills defaults (directory ".", replacements directory
    "Replacements", one worker per CPU) and checks globs and file types
 4. Relative paths are resolved against the config file's directory

📝 Keys:

	directory               root directory to scan
	file                    single file to process
	replacements_directory  directory of *.txt / *.json / *.yaml values
	file_extensions         extensions to include, ".*" means all
	include / exclude       doublestar globs relative to directory
	write                   write changes instead of showing them
	verbose                 list changed files
	workers                 parallel units
	diff_tool               external diff command, called as: tool <temp> <target>
	file_types              extension -> {name, comment_start, comment_end}
	replacements            inline name -> value map

In HCL, file types are labelled blocks:

	file_type ".j2" {
	  name          = "Jinja"
	  comment_start = "{#"
	  comment_end   = "#}"
	}

🔍 Example:

	cfg, err := config.Load(ctx, ".replacecontent")
	if err != nil {
		return err
	}
	files, err := provider.ListFiles(ctx, cfg.SourceArgs())
*/
package config
