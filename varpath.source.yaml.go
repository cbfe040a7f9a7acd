package varpath

import (
	"strconv"

	"github.com/itsatony/go-varpath/internal"
	"gopkg.in/yaml.v3"
)

// YAML core schema tags
const (
	yamlTagNull  = "!!null"
	yamlTagBool  = "!!bool"
	yamlTagInt   = "!!int"
	yamlTagFloat = "!!float"
	yamlTagMerge = "!!merge"
)

// MappingFromYAML decodes a YAML (or JSON) document whose root is a mapping.
// Key order is preserved, so the result and every nested mapping are
// ordered. Scalars are typed by their resolved tag: null becomes Invalid,
// booleans, integers and floats their numeric kinds, everything else Text.
func MappingFromYAML(data []byte) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewSourceError(ErrMsgYAMLDecodeFailed, err)
	}
	if doc.Kind == 0 {
		return NewMapping(), nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		return nil, NewSourceError(ErrMsgYAMLNotMapping, nil)
	}
	return mappingFromNode(root)
}

// ContextFromYAML decodes a YAML document into the root scope of a new Context.
func ContextFromYAML(data []byte) (*Context, error) {
	m, err := MappingFromYAML(data)
	if err != nil {
		return nil, err
	}
	return NewContextWithScope(m), nil
}

func mappingFromNode(node *yaml.Node) (*Mapping, error) {
	m := NewMapping()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, NewSourceError(ErrMsgYAMLNonScalarKey, nil)
		}
		if key.ShortTag() == yamlTagMerge {
			if err := mergeInto(m, value); err != nil {
				return nil, err
			}
			continue
		}
		v, err := valueFromNode(value)
		if err != nil {
			return nil, err
		}
		m.Set(key.Value, v)
	}
	return m, nil
}

// mergeInto applies a YAML merge key (<<: *anchor) without overriding keys
// already present.
func mergeInto(m *Mapping, node *yaml.Node) error {
	sources := []*yaml.Node{node}
	if node.Kind == yaml.SequenceNode {
		sources = node.Content
	}
	for _, src := range sources {
		if src.Kind == yaml.AliasNode {
			src = src.Alias
		}
		if src.Kind != yaml.MappingNode {
			return NewSourceError(ErrMsgYAMLNotMapping, nil)
		}
		merged, err := mappingFromNode(src)
		if err != nil {
			return err
		}
		merged.Range(func(key string, v Value) bool {
			if !m.Has(key) {
				m.Set(key, v)
			}
			return true
		})
	}
	return nil
}

func valueFromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return valueFromNode(node.Alias)
	case yaml.MappingNode:
		m, err := mappingFromNode(node)
		if err != nil {
			return Invalid(), err
		}
		return MappingValue(m), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := valueFromNode(child)
			if err != nil {
				return Invalid(), err
			}
			items = append(items, v)
		}
		return Sequence(items...), nil
	case yaml.ScalarNode:
		return scalarFromNode(node), nil
	default:
		return Invalid(), nil
	}
}

func scalarFromNode(node *yaml.Node) Value {
	switch node.ShortTag() {
	case yamlTagNull:
		return Invalid()
	case yamlTagBool:
		var b bool
		if err := node.Decode(&b); err == nil {
			return Bool(b)
		}
	case yamlTagInt:
		var i int64
		if err := node.Decode(&i); err == nil {
			return Int(i)
		}
	case yamlTagFloat:
		var f float64
		if err := node.Decode(&f); err == nil {
			return Float(f)
		}
		if f, err := strconv.ParseFloat(node.Value, internal.FloatBitSize64); err == nil {
			return Float(f)
		}
	}
	return Text(node.Value)
}
