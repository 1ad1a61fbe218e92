// Package bson provides a BSON codec for arbor trees.
package bson

import (
	"fmt"

	"github.com/zoobzio/arbor"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements arbor.Codec for BSON.
type bsonCodec struct {
	wrap string
}

// New returns a BSON codec. Only map trees can be marshaled since a BSON
// document must be a map at the top level.
func New() arbor.Codec {
	return &bsonCodec{}
}

// NewWrapped returns a BSON codec that stores non-map trees in a
// single-field document under key.
func NewWrapped(key string) arbor.Codec {
	return &bsonCodec{wrap: key}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document. Fields keep their insertion order.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	doc, ok := convert(v).(bson.D)
	if !ok {
		if c.wrap == "" {
			return nil, fmt.Errorf("bson: top-level value must be a map, got %T", v)
		}
		doc = bson.D{{Key: c.wrap, Value: convert(v)}}
	}
	return bson.Marshal(doc)
}

// convert rewrites the tree into ordered bson documents and arrays.
func convert(v any) any {
	switch n := v.(type) {
	case *arbor.Map:
		d := make(bson.D, 0, n.Len())
		n.Range(func(k string, val any) bool {
			d = append(d, bson.E{Key: k, Value: convert(val)})
			return true
		})
		return d
	case arbor.Seq:
		return convertArray(n)
	case []any:
		return convertArray(n)
	default:
		return v
	}
}

func convertArray(items []any) bson.A {
	a := make(bson.A, len(items))
	for i, item := range items {
		a[i] = convert(item)
	}
	return a
}
