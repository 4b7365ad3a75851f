package snippet

import (
	_ "embed"
	"fmt"
)

//go:embed data/library.json
var embeddedLibrary []byte

// DefaultDocument parses the built-in starter collection. Used when no
// library file is configured, so the binary works out of the box.
func DefaultDocument() (*Document, error) {
	doc, err := ParseJSON(embeddedLibrary)
	if err != nil {
		return nil, fmt.Errorf("embedded library: %w", err)
	}
	return doc, nil
}
