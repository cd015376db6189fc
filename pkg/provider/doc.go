/*
Package provider defines where content comes from.

	            +-------------+
	            |  Provider   |
	            |  (Source)   |
	            +------+------+
	                   |
	             +-----+-----+
	             |   Local   |
	             |   Files   |
	             +-----------+

🎯 Purpose:
- Lists the content files selected by config.SourceArgs
- Opens single files for reading
- Describes the source for log output

Providers register a Factory under a name in init. The local provider is
registered as "local" and is the one the CLI uses:

	import _ "github.com/walteh/replacecontent/pkg/provider/local"

	p, err := provider.New(ctx, "local")
	if err != nil {
		return err
	}
	files, err := p.ListFiles(ctx, cfg.SourceArgs())
	for _, f := range files {
		text, err := provider.ReadFile(ctx, p, cfg.SourceArgs(), f)
		...
	}
*/
package provider
