package snippet

// Node is one entry in a snippet document tree. Exactly two implementations
// exist: Folder and Snippet. The interface is sealed so a switch over the two
// cases is exhaustive.
type Node interface {
	// Segment returns the node's path segment, i.e. its key among siblings.
	Segment() string
	isNode()
}

// Folder is a named grouping of child folders and snippets.
type Folder struct {
	// Key is the folder's path segment, unique among its siblings.
	Key string

	// Description is optional markdown shown by UI surfaces.
	Description string

	// Children in document order.
	Children []Node
}

// Snippet is a single reusable code fragment. The text is opaque to the
// library; it is never parsed or validated as code.
type Snippet struct {
	// Key is the snippet's path segment, unique among its siblings.
	Key string

	// Name is the display label. Defaults to Key when the document omits it.
	Name string

	// Text is the snippet body; may contain embedded newlines.
	Text string
}

func (f *Folder) Segment() string { return f.Key }
func (f *Folder) isNode()         {}

func (s *Snippet) Segment() string { return s.Key }
func (s *Snippet) isNode()         {}

// Document is the root of a snippet collection. It is an implicitly unnamed
// folder whose direct children define the top-level categories.
type Document struct {
	// Description is optional markdown describing the collection.
	Description string

	// Children in document order.
	Children []Node
}
