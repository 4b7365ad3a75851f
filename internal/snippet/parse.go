package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/piatra-automation/strudel-snippets/internal/errors"
)

// orderedMap is a decoded mapping that preserves document key order.
// Both the JSON and YAML front ends normalize into this shape before
// node construction.
type orderedMap []keyValue

type keyValue struct {
	key   string
	value any
}

func (m orderedMap) field(key string) (any, bool) {
	for _, kv := range m {
		if kv.key == key {
			return kv.value, true
		}
	}
	return nil, false
}

// stringField returns the value for key only when it is present and a string.
func (m orderedMap) stringField(key string) (string, bool) {
	v, ok := m.field(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Load reads and parses a snippet document from disk. The format is chosen
// by extension: .yaml/.yml parse as YAML, everything else as JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses a JSON snippet document. Key order within objects is
// preserved, which defines traversal order for the whole library.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, errors.NewInvalidDocument("", fmt.Sprintf("parse json: %v", err))
	}
	root, ok := v.(orderedMap)
	if !ok {
		return nil, errors.NewInvalidDocument("", "document root must be an object")
	}
	return buildDocument(root)
}

// ParseYAML parses a YAML snippet document with mapping order preserved.
func ParseYAML(data []byte) (*Document, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, errors.NewInvalidDocument("", fmt.Sprintf("parse yaml: %v", err))
	}
	root, ok := fromYAML(v).(orderedMap)
	if !ok {
		return nil, errors.NewInvalidDocument("", "document root must be a mapping")
	}
	return buildDocument(root)
}

// decodeJSONValue reads one JSON value from dec, producing orderedMap for
// objects (insertion order intact), []any for arrays, and the usual scalar
// types otherwise.
func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil // string, float64, bool, or nil
	}

	switch delim {
	case '{':
		om := orderedMap{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is not a string: %v", keyTok)
			}
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			om = append(om, keyValue{key: key, value: val})
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return om, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// fromYAML converts goccy's ordered decoding output into the shared
// orderedMap shape.
func fromYAML(v any) any {
	switch vv := v.(type) {
	case yaml.MapSlice:
		om := make(orderedMap, 0, len(vv))
		for _, item := range vv {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			om = append(om, keyValue{key: key, value: fromYAML(item.Value)})
		}
		return om
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = fromYAML(e)
		}
		return out
	default:
		return vv
	}
}

// buildDocument turns the decoded root mapping into a Document. Two root
// forms are accepted: an explicit folder object (type/description/children),
// or the bare children mapping with every key a top-level node.
func buildDocument(root orderedMap) (*Document, error) {
	doc := &Document{}
	children := root

	if typ, ok := root.stringField("type"); ok {
		if typ != "folder" {
			return nil, errors.NewInvalidDocument("", fmt.Sprintf("document root has type %q, want %q", typ, "folder"))
		}
		if dv, ok := root.field("description"); ok {
			d, ok := dv.(string)
			if !ok {
				return nil, errors.NewInvalidDocument("", "description must be a string")
			}
			doc.Description = d
		}
		cv, ok := root.field("children")
		if !ok {
			return nil, errors.NewInvalidDocument("", "folder missing children mapping")
		}
		children, ok = cv.(orderedMap)
		if !ok {
			return nil, errors.NewInvalidDocument("", "folder children must be a mapping")
		}
	}

	for _, kv := range children {
		child, err := buildNode(kv.key, kv.value, kv.key)
		if err != nil {
			return nil, err
		}
		doc.Children = append(doc.Children, child)
	}
	return doc, nil
}

// buildNode constructs a Folder or Snippet from the decoded value at path.
func buildNode(key string, v any, path string) (Node, error) {
	if key == "" {
		return nil, errors.NewInvalidDocument(path, "node key must not be empty")
	}
	if strings.Contains(key, "/") {
		return nil, errors.NewInvalidDocument(path, `node key must not contain "/"`)
	}

	om, ok := v.(orderedMap)
	if !ok {
		return nil, errors.NewInvalidDocument(path, "node must be an object")
	}

	tv, ok := om.field("type")
	if !ok {
		return nil, errors.NewInvalidDocument(path, "node missing type discriminator")
	}
	typ, ok := tv.(string)
	if !ok {
		return nil, errors.NewInvalidDocument(path, "node type must be a string")
	}

	switch typ {
	case "folder":
		return buildFolder(key, om, path)
	case "snippet":
		return buildSnippet(key, om, path)
	default:
		return nil, errors.NewInvalidDocument(path, fmt.Sprintf("unknown node type %q", typ))
	}
}

func buildFolder(key string, om orderedMap, path string) (*Folder, error) {
	f := &Folder{Key: key}

	if dv, ok := om.field("description"); ok {
		d, ok := dv.(string)
		if !ok {
			return nil, errors.NewInvalidDocument(path, "description must be a string")
		}
		f.Description = d
	}

	cv, ok := om.field("children")
	if !ok {
		return nil, errors.NewInvalidDocument(path, "folder missing children mapping")
	}
	children, ok := cv.(orderedMap)
	if !ok {
		return nil, errors.NewInvalidDocument(path, "folder children must be a mapping")
	}

	for _, kv := range children {
		child, err := buildNode(kv.key, kv.value, path+"/"+kv.key)
		if err != nil {
			return nil, err
		}
		f.Children = append(f.Children, child)
	}
	return f, nil
}

func buildSnippet(key string, om orderedMap, path string) (*Snippet, error) {
	tv, ok := om.field("text")
	if !ok {
		return nil, errors.NewInvalidDocument(path, "snippet missing text field")
	}
	text, ok := tv.(string)
	if !ok {
		return nil, errors.NewInvalidDocument(path, "snippet text must be a string")
	}

	name := key
	if nv, ok := om.field("name"); ok {
		n, ok := nv.(string)
		if !ok {
			return nil, errors.NewInvalidDocument(path, "snippet name must be a string")
		}
		if n == "" {
			return nil, errors.NewInvalidDocument(path, "snippet name must not be empty")
		}
		name = n
	}

	return &Snippet{Key: key, Name: name, Text: text}, nil
}

// Parse reads a JSON document from r. Kept for callers that stream rather
// than load from a file.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseJSON(data)
}
