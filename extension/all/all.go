// Package all imports all built-in anondocs extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each registers itself via init()
	_ "github.com/jpl-au/anondocs/extension/core"
	_ "github.com/jpl-au/anondocs/extension/document"
	_ "github.com/jpl-au/anondocs/extension/search"
	_ "github.com/jpl-au/anondocs/extension/share"
	_ "github.com/jpl-au/anondocs/extension/tag"
)
