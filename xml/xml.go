// Package xml provides an XML codec for arbor trees.
//
// Maps become elements named after their keys, sequence elements become
// <item> elements. Keys that are not valid XML names are written as
// <entry key="..."> instead.
package xml

import (
	"bytes"
	"encoding/xml"
	"unicode"
	"unicode/utf8"

	"github.com/zoobzio/arbor"
)

// xmlCodec implements arbor.Codec for XML.
type xmlCodec struct {
	root string
}

// New returns an XML codec with a <tree> root element.
func New() arbor.Codec {
	return NewWithRoot("tree")
}

// NewWithRoot returns an XML codec whose root element is named root.
func NewWithRoot(root string) arbor.Codec {
	return &xmlCodec{root: root}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as XML. Child elements follow map insertion order.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := encodeElement(enc, c.root, v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeElement(enc *xml.Encoder, key string, v any) error {
	start := startElement(key)

	switch n := v.(type) {
	case *arbor.Map:
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		var err error
		n.Range(func(k string, val any) bool {
			err = encodeElement(enc, k, val)
			return err == nil
		})
		if err != nil {
			return err
		}
		return enc.EncodeToken(start.End())
	case arbor.Seq:
		return encodeItems(enc, start, n)
	case []any:
		return encodeItems(enc, start, n)
	case nil:
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		return enc.EncodeToken(start.End())
	default:
		return enc.EncodeElement(v, start)
	}
}

func encodeItems(enc *xml.Encoder, start xml.StartElement, items []any) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range items {
		if err := encodeElement(enc, "item", item); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func startElement(key string) xml.StartElement {
	if validName(key) {
		return xml.StartElement{Name: xml.Name{Local: key}}
	}
	return xml.StartElement{
		Name: xml.Name{Local: "entry"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "key"}, Value: key}},
	}
}

// validName reports whether key can be used as an element name as is.
func validName(key string) bool {
	if key == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(key)
	if !unicode.IsLetter(r) && r != '_' {
		return false
	}
	if len(key) >= 3 && (key[0]|0x20) == 'x' && (key[1]|0x20) == 'm' && (key[2]|0x20) == 'l' {
		return false
	}
	for _, r := range key[size:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
