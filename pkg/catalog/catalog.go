// Package catalog parses the package catalog and resolves category
// selections. The catalog is a plain-text file: a line starting with "##"
// opens a category, a line starting with "#" is a comment, and every other
// non-blank line holds whitespace-delimited package identifiers belonging to
// the most recently opened category.
package catalog

import (
	"github.com/nigeyuk/serverConfig/pkg/errors"
)

// HeaderMarker introduces a category line in the catalog file.
const HeaderMarker = "##"

// Category is a named, ordered group of package identifiers.
type Category struct {
	Name     string
	Packages []string
}

// Catalog is the ordered sequence of categories parsed from one source.
// It is immutable after parsing.
type Catalog struct {
	categories []Category
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Names returns category names in source order. An empty catalog yields an
// empty slice, not an error.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Categories returns all categories in source order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Select resolves a 1-based index to a category. Indices outside [1, Len]
// (including any index on an empty catalog) return a SELECTION error and
// have no side effect.
func (c *Catalog) Select(index int) (Category, error) {
	if len(c.categories) == 0 {
		return Category{}, errors.New(errors.ErrSelection,
			"the catalog has no categories",
			"add at least one '## Category' header to the catalog file")
	}
	if index < 1 || index > len(c.categories) {
		return Category{}, errors.Newf(errors.ErrSelection,
			"selection %d out of range [1,%d]", index, len(c.categories))
	}
	return c.categories[index-1], nil
}

// PackagesFor returns the packages of the first category with the given name.
// A category with no packages, or an unknown name, yields an empty slice.
func (c *Catalog) PackagesFor(name string) []string {
	for _, cat := range c.categories {
		if cat.Name == name {
			out := make([]string, len(cat.Packages))
			copy(out, cat.Packages)
			return out
		}
	}
	return []string{}
}
