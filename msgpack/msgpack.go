// Package msgpack provides a MessagePack codec for arbor trees.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/arbor"
)

// msgpackCodec implements arbor.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() arbor.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack. Map entries are written in insertion order.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encode(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(enc *msgpack.Encoder, v any) error {
	switch n := v.(type) {
	case *arbor.Map:
		if err := enc.EncodeMapLen(n.Len()); err != nil {
			return err
		}
		var err error
		n.Range(func(k string, val any) bool {
			if err = enc.EncodeString(k); err != nil {
				return false
			}
			err = encode(enc, val)
			return err == nil
		})
		return err
	case arbor.Seq:
		return encodeArray(enc, n)
	case []any:
		return encodeArray(enc, n)
	default:
		return enc.Encode(v)
	}
}

func encodeArray(enc *msgpack.Encoder, items []any) error {
	if err := enc.EncodeArrayLen(len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := encode(enc, item); err != nil {
			return err
		}
	}
	return nil
}
