package yaml

import (
	"testing"

	"github.com/zoobzio/arbor"
	"gopkg.in/yaml.v3"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestMarshalKeepsKeyOrder(t *testing.T) {
	c := New()

	dog := arbor.NewMap()
	dog.Set("name", "Rex")
	dog.Set("age", 3)

	m := arbor.NewMap()
	m.Set("zeta", "z")
	m.Set("alpha", 1)
	m.Set("dogs", arbor.Seq{dog})

	data, err := c.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := "zeta: z\nalpha: 1\ndogs:\n    - name: Rex\n      age: 3\n"
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c := New()

	m := arbor.NewMap()
	m.Set("name", "Mom")
	m.Set("tags", arbor.Seq{"a", "b"})
	m.Set("nothing", nil)

	data, err := c.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored map[string]any
	if err := yaml.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored["name"] != "Mom" {
		t.Errorf("name = %v, want Mom", restored["name"])
	}
	tags, ok := restored["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "a" {
		t.Errorf("tags = %v", restored["tags"])
	}
	if v, ok := restored["nothing"]; !ok || v != nil {
		t.Errorf("nothing = %v (present %v), want nil", v, ok)
	}
}

func TestMarshalNumericStringKey(t *testing.T) {
	c := New()

	m := arbor.NewMap()
	m.Set("42", "answer")

	data, err := c.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored map[string]any
	if err := yaml.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored["42"] != "answer" {
		t.Errorf("restored = %v, want string key 42", restored)
	}
}

func TestMarshalSeqRoot(t *testing.T) {
	c := New()

	data, err := c.Marshal(arbor.Seq{"Mom", "Dad"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	if string(data) != "- Mom\n- Dad\n" {
		t.Errorf("Marshal() = %q", data)
	}
}

func TestMarshalEmpty(t *testing.T) {
	c := New()

	data, err := c.Marshal(arbor.NewMap())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != "{}\n" {
		t.Errorf("Marshal(empty map) = %q", data)
	}

	data, err = c.Marshal(arbor.Seq{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Marshal(empty seq) = %q", data)
	}
}
