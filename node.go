package arbor

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindLeaf Kind = iota
	KindMap
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindSeq:
		return "seq"
	default:
		return "leaf"
	}
}

// Node is the result of a serialization: a *Map, a Seq or a Leaf.
type Node interface {
	Kind() Kind
	// Interface returns the value to hand to an encoder.
	Interface() any
}

// NodeOf classifies a tree value. *Map and Seq are returned as is,
// anything else is wrapped in a Leaf.
func NodeOf(v any) Node {
	switch n := v.(type) {
	case *Map:
		return n
	case Seq:
		return n
	case Leaf:
		return n
	default:
		return Leaf{Value: v}
	}
}

// Leaf is an opaque value carried through the tree unconverted.
type Leaf struct {
	Value any
}

func (Leaf) Kind() Kind       { return KindLeaf }
func (l Leaf) Interface() any { return l.Value }

// Seq is an ordered sequence of tree values.
type Seq []any

func (Seq) Kind() Kind       { return KindSeq }
func (s Seq) Interface() any { return s }

// Map is an insertion-ordered string-keyed map. Setting an existing key
// replaces its value but keeps its original position.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

func (*Map) Kind() Kind       { return KindMap }
func (m *Map) Interface() any { return m }

// Set stores v under key.
func (m *Map) Set(key string, v any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a shallow copy.
func (m *Map) Clone() *Map {
	c := &Map{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]any, len(m.values)),
	}
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Plain returns the tree rooted at m as plain map[string]any and []any
// values, losing key order.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(k string, v any) bool {
		out[k] = plain(v)
		return true
	})
	return out
}

func plain(v any) any {
	switch n := v.(type) {
	case *Map:
		return n.Plain()
	case Seq:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Tuple is implemented by sequence elements made of several parts. A list
// rule receives the parts as extra arguments.
type Tuple interface {
	Parts() []any
}

// Pair is a key/value element produced when iterating a map-shaped subject.
type Pair struct {
	Key   string
	Value any
}

// Parts returns the key and the value.
func (p Pair) Parts() []any { return []any{p.Key, p.Value} }
