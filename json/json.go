// Package json provides a JSON codec for arbor trees.
package json

import (
	"github.com/goccy/go-json"
	"github.com/zoobzio/arbor"
)

// jsonCodec implements arbor.Codec for JSON.
type jsonCodec struct {
	indent string
}

// New returns a JSON codec producing compact output.
func New() arbor.Codec {
	return &jsonCodec{}
}

// NewIndent returns a JSON codec that indents nested values with indent.
func NewIndent(indent string) arbor.Codec {
	return &jsonCodec{indent: indent}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON. Map keys keep their insertion order.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	if c.indent != "" {
		return json.MarshalIndent(v, "", c.indent)
	}
	return json.Marshal(v)
}
