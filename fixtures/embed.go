// Package fixtures embeds the sample search response used by the local
// source when no fixture path is configured.
package fixtures

import "embed"

// DefaultFile is the name of the bundled sample response inside FS.
const DefaultFile = "restaurants.json"

// FS holds the bundled sample responses.
//
//go:embed *.json
var FS embed.FS
