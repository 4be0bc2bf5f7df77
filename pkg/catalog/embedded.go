package catalog

import (
	_ "embed"
	"strings"
)

// defaultList is the catalog compiled into the binary, used until a catalog
// file is installed on the host.
//
//go:embed packages.list
var defaultList string

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(strings.NewReader(defaultList))
}
