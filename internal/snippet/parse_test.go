package snippet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piatra-automation/strudel-snippets/internal/errors"
)

func TestParseJSON_ImplicitRoot(t *testing.T) {
	data := []byte(`{"A": {"type": "folder", "children": {"B": {"type": "snippet", "name": "Hello", "text": "x"}}}}`)

	doc, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	if len(doc.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(doc.Children))
	}

	folder, ok := doc.Children[0].(*Folder)
	if !ok {
		t.Fatalf("child is %T, want *Folder", doc.Children[0])
	}
	if folder.Key != "A" {
		t.Errorf("folder.Key = %q, want %q", folder.Key, "A")
	}
	if len(folder.Children) != 1 {
		t.Fatalf("len(folder.Children) = %d, want 1", len(folder.Children))
	}

	snip, ok := folder.Children[0].(*Snippet)
	if !ok {
		t.Fatalf("nested child is %T, want *Snippet", folder.Children[0])
	}
	if snip.Key != "B" {
		t.Errorf("snip.Key = %q, want %q", snip.Key, "B")
	}
	if snip.Name != "Hello" {
		t.Errorf("snip.Name = %q, want %q", snip.Name, "Hello")
	}
	if snip.Text != "x" {
		t.Errorf("snip.Text = %q, want %q", snip.Text, "x")
	}
}

func TestParseJSON_ExplicitRoot(t *testing.T) {
	data := []byte(`{
		"type": "folder",
		"description": "my collection",
		"children": {
			"Drums": {"type": "folder", "children": {}}
		}
	}`)

	doc, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if doc.Description != "my collection" {
		t.Errorf("Description = %q, want %q", doc.Description, "my collection")
	}
	if len(doc.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(doc.Children))
	}
}

func TestParseJSON_PreservesOrder(t *testing.T) {
	data := []byte(`{
		"Zebra": {"type": "snippet", "text": "z"},
		"Alpha": {"type": "snippet", "text": "a"},
		"Mango": {"type": "snippet", "text": "m"}
	}`)

	doc, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	want := []string{"Zebra", "Alpha", "Mango"}
	if len(doc.Children) != len(want) {
		t.Fatalf("len(Children) = %d, want %d", len(doc.Children), len(want))
	}
	for i, w := range want {
		if doc.Children[i].Segment() != w {
			t.Errorf("Children[%d] = %q, want %q", i, doc.Children[i].Segment(), w)
		}
	}
}

func TestParseJSON_NameDefaultsToKey(t *testing.T) {
	data := []byte(`{"Kick": {"type": "snippet", "text": "s(\"bd*4\")"}}`)

	doc, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	snip := doc.Children[0].(*Snippet)
	if snip.Name != "Kick" {
		t.Errorf("Name = %q, want %q", snip.Name, "Kick")
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing type discriminator",
			data: `{"A": {"text": "x"}}`,
		},
		{
			name: "unknown type",
			data: `{"A": {"type": "widget", "text": "x"}}`,
		},
		{
			name: "type not a string",
			data: `{"A": {"type": 7, "text": "x"}}`,
		},
		{
			name: "folder without children",
			data: `{"A": {"type": "folder"}}`,
		},
		{
			name: "folder children not a mapping",
			data: `{"A": {"type": "folder", "children": [1, 2]}}`,
		},
		{
			name: "snippet without text",
			data: `{"A": {"type": "snippet", "name": "Hello"}}`,
		},
		{
			name: "snippet text not a string",
			data: `{"A": {"type": "snippet", "text": 42}}`,
		},
		{
			name: "snippet name empty",
			data: `{"A": {"type": "snippet", "name": "", "text": "x"}}`,
		},
		{
			name: "key contains slash",
			data: `{"A/B": {"type": "snippet", "text": "x"}}`,
		},
		{
			name: "node not an object",
			data: `{"A": "plain string"}`,
		},
		{
			name: "root not an object",
			data: `[1, 2, 3]`,
		},
		{
			name: "truncated json",
			data: `{"A": {"type": "sni`,
		},
		{
			name: "explicit root wrong type",
			data: `{"type": "snippet", "text": "x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, errors.ErrInvalidDocument) {
				t.Errorf("expected INVALID_DOCUMENT, got %v", err)
			}
		})
	}
}

func TestParseJSON_MalformedDeepLocation(t *testing.T) {
	data := []byte(`{"A": {"type": "folder", "children": {"B": {"type": "folder", "children": {"C": {"type": "snippet"}}}}}}`)

	_, err := ParseJSON(data)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	sErr, ok := err.(*errors.SnipError)
	if !ok {
		t.Fatalf("error is %T, want *errors.SnipError", err)
	}
	if sErr.Details["location"] != "A/B/C" {
		t.Errorf("location = %v, want %q", sErr.Details["location"], "A/B/C")
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
Drums:
  type: folder
  children:
    Kick:
      type: snippet
      text: s("bd*4")
    Snare:
      type: snippet
      name: Backbeat snare
      text: s("~ sd ~ sd")
Synths:
  type: folder
  children: {}
`)

	doc, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	if len(doc.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(doc.Children))
	}
	if doc.Children[0].Segment() != "Drums" || doc.Children[1].Segment() != "Synths" {
		t.Errorf("order = [%q, %q], want [Drums, Synths]",
			doc.Children[0].Segment(), doc.Children[1].Segment())
	}

	drums := doc.Children[0].(*Folder)
	if len(drums.Children) != 2 {
		t.Fatalf("len(drums.Children) = %d, want 2", len(drums.Children))
	}
	snare := drums.Children[1].(*Snippet)
	if snare.Name != "Backbeat snare" {
		t.Errorf("Name = %q, want %q", snare.Name, "Backbeat snare")
	}
}

func TestParseYAML_Malformed(t *testing.T) {
	_, err := ParseYAML([]byte(`Drums: {type: folder}`))
	if !errors.Is(err, errors.ErrInvalidDocument) {
		t.Errorf("expected INVALID_DOCUMENT, got %v", err)
	}
}

func TestLoad_DispatchByExtension(t *testing.T) {
	tmpDir := t.TempDir()

	jsonPath := filepath.Join(tmpDir, "lib.json")
	if err := os.WriteFile(jsonPath, []byte(`{"A": {"type": "snippet", "text": "x"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(tmpDir, "lib.yaml")
	if err := os.WriteFile(yamlPath, []byte("B:\n  type: snippet\n  text: y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	jsonDoc, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load json failed: %v", err)
	}
	if jsonDoc.Children[0].Segment() != "A" {
		t.Errorf("json child = %q, want A", jsonDoc.Children[0].Segment())
	}

	yamlDoc, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load yaml failed: %v", err)
	}
	if yamlDoc.Children[0].Segment() != "B" {
		t.Errorf("yaml child = %q, want B", yamlDoc.Children[0].Segment())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultDocument(t *testing.T) {
	doc, err := DefaultDocument()
	if err != nil {
		t.Fatalf("DefaultDocument failed: %v", err)
	}
	if len(doc.Children) == 0 {
		t.Fatal("embedded library has no top-level categories")
	}
	if doc.Description == "" {
		t.Error("embedded library should carry a description")
	}
}
