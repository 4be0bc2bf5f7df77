package catalog

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/nigeyuk/serverConfig/pkg/errors"
)

// parseState tracks where the line scanner is in the catalog.
type parseState int

const (
	// outsideCategory: no header seen yet, package lines are ignored.
	outsideCategory parseState = iota
	// insideCategory: package lines accumulate on the open category.
	insideCategory
)

// Load reads and parses the catalog file at path. The file is read fresh on
// every call; nothing is cached.
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithSuggestion(err, errors.ErrCatalog,
			"can't read catalog "+path,
			"check the file exists and is readable")
	}
	defer file.Close()

	cat, err := Parse(file)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalog, "can't parse catalog "+path)
	}
	return cat, nil
}

// Parse reads a catalog from r in a single linear pass. Header lines open a
// category; subsequent package lines accumulate on it until the next header
// or EOF. A header immediately followed by another header produces a category
// with an empty package list.
func Parse(r io.Reader) (*Catalog, error) {
	cat := &Catalog{}
	state := outsideCategory
	var current Category

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			// blank lines separate nothing

		case strings.HasPrefix(line, HeaderMarker):
			if state == insideCategory {
				cat.categories = append(cat.categories, current)
			}
			current = Category{
				Name:     strings.TrimSpace(strings.TrimPrefix(line, HeaderMarker)),
				Packages: []string{},
			}
			state = insideCategory

		case strings.HasPrefix(line, "#"):
			// comment

		case state == insideCategory:
			current.Packages = append(current.Packages, strings.Fields(line)...)

		default:
			// package line before any header, nothing to attach it to
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalog, "error reading catalog")
	}

	if state == insideCategory {
		cat.categories = append(cat.categories, current)
	}

	return cat, nil
}
