// Package content embeds the site's data tables.
package content

import "embed"

//go:embed data/*.yaml
var FS embed.FS
