// Package yaml provides a YAML codec for arbor trees.
package yaml

import (
	"github.com/zoobzio/arbor"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements arbor.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() arbor.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML. Map keys keep their insertion order.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// toNode builds the document tree by hand so mapping order follows the
// *arbor.Map rather than yaml's sorted map keys.
func toNode(v any) (*yaml.Node, error) {
	switch n := v.(type) {
	case *arbor.Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var err error
		n.Range(func(k string, val any) bool {
			var child *yaml.Node
			if child, err = toNode(val); err != nil {
				return false
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			node.Content = append(node.Content, key, child)
			return true
		})
		if err != nil {
			return nil, err
		}
		return node, nil
	case arbor.Seq:
		return seqNode(n)
	case []any:
		return seqNode(n)
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}

func seqNode(items []any) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		child, err := toNode(item)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, child)
	}
	return node, nil
}
