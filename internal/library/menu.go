package library

// MenuItem mirrors one document node for recursive UI rendering, annotated
// with its full path. Order matches the document.
type MenuItem struct {
	Name        string     `json:"name"`
	Path        string     `json:"path"`
	Folder      bool       `json:"folder,omitempty"`
	Description string     `json:"description,omitempty"`
	Children    []MenuItem `json:"children,omitempty"`
}

// Menu returns the ordered menu tree built at construction time.
func (l *Library) Menu() []MenuItem {
	return l.menu
}
