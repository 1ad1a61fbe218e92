package bson

import (
	"testing"

	"github.com/zoobzio/arbor"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/bson")
	}
}

func TestMarshalKeepsKeyOrder(t *testing.T) {
	c := New()

	dog := arbor.NewMap()
	dog.Set("name", "Rex")

	m := arbor.NewMap()
	m.Set("zeta", "z")
	m.Set("alpha", int32(1))
	m.Set("dogs", arbor.Seq{dog})

	data, err := c.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored bson.D
	if err := bson.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	want := []string{"zeta", "alpha", "dogs"}
	if len(restored) != len(want) {
		t.Fatalf("restored = %v", restored)
	}
	for i, e := range restored {
		if e.Key != want[i] {
			t.Errorf("key %d = %q, want %q", i, e.Key, want[i])
		}
	}

	dogs, ok := restored[2].Value.(bson.A)
	if !ok || len(dogs) != 1 {
		t.Fatalf("dogs = %#v", restored[2].Value)
	}
	if d, ok := dogs[0].(bson.D); !ok || d[0].Value != "Rex" {
		t.Errorf("dogs[0] = %#v", dogs[0])
	}
}

func TestMarshalSeqRootRejected(t *testing.T) {
	c := New()

	if _, err := c.Marshal(arbor.Seq{"Mom"}); err == nil {
		t.Error("Marshal(seq) should return error")
	}
}

func TestMarshalWrapped(t *testing.T) {
	c := NewWrapped("items")

	data, err := c.Marshal(arbor.Seq{"Mom", "Dad"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored struct {
		Items []string `bson:"items"`
	}
	if err := bson.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(restored.Items) != 2 || restored.Items[0] != "Mom" {
		t.Errorf("items = %v", restored.Items)
	}
}

func TestMarshalWrappedMapUnchanged(t *testing.T) {
	c := NewWrapped("items")

	m := arbor.NewMap()
	m.Set("name", "Mom")

	data, err := c.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored bson.M
	if err := bson.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored["name"] != "Mom" {
		t.Errorf("restored = %v", restored)
	}
	if _, ok := restored["items"]; ok {
		t.Error("map roots should not be wrapped")
	}
}
