package library

import (
	"sort"
	"strings"

	"github.com/piatra-automation/strudel-snippets/internal/errors"
	"github.com/piatra-automation/strudel-snippets/internal/snippet"
)

// RootCategory is assigned to snippets sitting at the top level of the
// document with no enclosing folder.
const RootCategory = "Root"

// Entry is one snippet flattened out of the document tree. The slash-joined
// path is its unique key in the index.
type Entry struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Text        string `json:"text"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
}

// Depth returns the number of ancestor folders above the snippet.
func (e *Entry) Depth() int {
	return strings.Count(e.Path, "/")
}

// Library is the flat, path-addressable index over a snippet document. It is
// built once at construction and never mutated, so every query is safe for
// concurrent readers without locking.
type Library struct {
	byPath      map[string]*Entry
	order       []*Entry // construction order; drives enumeration and search tie-breaking
	menu        []MenuItem
	description string
}

// New walks the document once, depth-first in document order, and builds the
// flat index. The document may be discarded afterwards.
//
// Duplicate sibling keys are not rejected: a later child mapping to an
// already-seen path silently replaces the earlier entry while keeping its
// original position (last write wins).
func New(doc *snippet.Document) (*Library, error) {
	lib := &Library{
		byPath:      make(map[string]*Entry),
		description: doc.Description,
	}
	menu, err := lib.walk("", doc.Children)
	if err != nil {
		return nil, err
	}
	lib.menu = menu
	return lib, nil
}

func (l *Library) walk(prefix string, children []snippet.Node) ([]MenuItem, error) {
	items := make([]MenuItem, 0, len(children))
	for _, node := range children {
		key := node.Segment()
		if key == "" {
			return nil, errors.NewInvalidDocument(prefix, "node key must not be empty")
		}
		if strings.Contains(key, "/") {
			return nil, errors.NewInvalidDocument(prefix, `node key must not contain "/"`)
		}

		path := key
		if prefix != "" {
			path = prefix + "/" + key
		}

		switch n := node.(type) {
		case *snippet.Snippet:
			if n.Name == "" {
				return nil, errors.NewInvalidDocument(path, "snippet name must not be empty")
			}
			entry := &Entry{
				Path:        path,
				Name:        n.Name,
				Text:        n.Text,
				Category:    categoryOf(path),
				Subcategory: subcategoryOf(path),
			}
			if prev, ok := l.byPath[path]; ok {
				*prev = *entry // duplicate sibling key: last wins, position unchanged
			} else {
				l.byPath[path] = entry
				l.order = append(l.order, entry)
			}
			items = append(items, MenuItem{Name: n.Name, Path: path})
		case *snippet.Folder:
			sub, err := l.walk(path, n.Children)
			if err != nil {
				return nil, err
			}
			items = append(items, MenuItem{
				Name:        key,
				Path:        path,
				Folder:      true,
				Description: n.Description,
				Children:    sub,
			})
		}
	}
	return items, nil
}

// categoryOf returns the first path segment, or RootCategory for a top-level
// snippet whose path is a single segment.
func categoryOf(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return RootCategory
}

// subcategoryOf returns the second path segment when the snippet has at least
// two ancestor folders, otherwise the empty string.
func subcategoryOf(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) < 3 {
		return ""
	}
	return segments[1]
}

// Len reports the number of indexed snippets.
func (l *Library) Len() int {
	return len(l.order)
}

// Description returns the collection-level markdown description, if any.
func (l *Library) Description() string {
	return l.description
}

// Entries returns all entries in construction order.
func (l *Library) Entries() []*Entry {
	out := make([]*Entry, len(l.order))
	copy(out, l.order)
	return out
}

// Lookup returns the entry for the exact slash-joined path. Absence is a
// normal outcome, reported by the bool, never an error.
func (l *Library) Lookup(path string) (*Entry, bool) {
	e, ok := l.byPath[path]
	return e, ok
}

// ByCategory returns entries whose category equals the argument under
// case-insensitive comparison, in index order.
func (l *Library) ByCategory(category string) []*Entry {
	out := []*Entry{}
	for _, e := range l.order {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

// ByFolder returns entries strictly nested under folderPath, in index order.
// An entry whose path equals folderPath exactly is not included; the contract
// is strict descendant-prefix match, not equality-or-descendant.
func (l *Library) ByFolder(folderPath string) []*Entry {
	prefix := folderPath + "/"
	out := []*Entry{}
	for _, e := range l.order {
		if strings.HasPrefix(e.Path, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the distinct category values, sorted.
func (l *Library) Categories() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, e := range l.order {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out
}
