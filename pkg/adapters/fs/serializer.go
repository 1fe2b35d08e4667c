package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/jsonedit/pkg/core"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// DefaultIndent is the number of spaces per nesting level in written files.
const DefaultIndent = 2

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Decode parses a whole file into a value.
	Decode(data []byte) (core.Value, error)
	// Encode renders a value as the content of a whole file.
	Encode(v core.Value) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
// indent is the number of spaces per level (0 selects DefaultIndent,
// negative writes compact JSON); jsonc lets .json files carry comments and
// trailing commas.
func DefaultSerializers(indent int, jsonc bool) map[string]Serializer {
	if indent == 0 {
		indent = DefaultIndent
	}
	return map[string]Serializer{
		".json":  NewJSONSerializer(indent, jsonc),
		".jsonc": NewJSONSerializer(indent, true),
		".yaml":  NewYAMLSerializer(indent),
		".yml":   NewYAMLSerializer(indent),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct {
	// Indent is the number of spaces per level. Negative writes compact JSON.
	Indent int
	// Lenient accepts JSONC input (comments, trailing commas).
	Lenient bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(indent int, lenient bool) *JSONSerializer {
	return &JSONSerializer{Indent: indent, Lenient: lenient}
}

func (s *JSONSerializer) Decode(data []byte) (core.Value, error) {
	if s.Lenient {
		std, err := hujson.Standardize(data)
		if err != nil {
			return core.Value{}, fmt.Errorf("%w: %v", core.ErrMalformed, err)
		}
		data = std
	}
	return core.Decode(data)
}

func (s *JSONSerializer) Encode(v core.Value) ([]byte, error) {
	if s.Indent < 0 {
		return core.EncodeIndent(v, "")
	}
	return core.EncodeIndent(v, strings.Repeat(" ", s.Indent))
}

// --- YAML Serializer ---

// YAMLSerializer handles YAML files holding the same array-of-objects shape.
// Mapping order is preserved in both directions.
type YAMLSerializer struct {
	Indent int
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(indent int) *YAMLSerializer {
	return &YAMLSerializer{Indent: indent}
}

func (s *YAMLSerializer) Decode(data []byte) (core.Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return core.Value{}, fmt.Errorf("%w: invalid yaml: %v", core.ErrMalformed, err)
	}
	v, err := nodeToValue(&node)
	if err != nil {
		return core.Value{}, fmt.Errorf("%w: %v", core.ErrMalformed, err)
	}
	return v, nil
}

func (s *YAMLSerializer) Encode(v core.Value) ([]byte, error) {
	indent := s.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)
	if err := encoder.Encode(valueToNode(v)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nodeToValue(n *yaml.Node) (core.Value, error) {
	switch n.Kind {
	case 0:
		// Empty input.
		return core.Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return core.Null(), nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.SequenceNode:
		items := make([]core.Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := nodeToValue(c)
			if err != nil {
				return core.Value{}, err
			}
			items = append(items, item)
		}
		return core.Array(items...), nil
	case yaml.MappingNode:
		rec := core.NewRecord()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return core.Value{}, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			val, err := nodeToValue(n.Content[i+1])
			if err != nil {
				return core.Value{}, err
			}
			rec.Set(k.Value, val)
		}
		return core.Object(rec), nil
	case yaml.ScalarNode:
		return scalarToValue(n)
	}
	return core.Value{}, fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

func scalarToValue(n *yaml.Node) (core.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return core.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return core.Value{}, err
		}
		return core.Bool(b), nil
	case "!!int":
		if json.Valid([]byte(n.Value)) {
			return core.Number(json.Number(n.Value)), nil
		}
		var x any
		if err := n.Decode(&x); err != nil {
			return core.Value{}, err
		}
		return core.ValueOf(x), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return core.Value{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return core.Value{}, fmt.Errorf("line %d: %s has no JSON representation", n.Line, n.Value)
		}
		// Keep the literal when it is already valid JSON (e.g. 1.50).
		if json.Valid([]byte(n.Value)) {
			return core.Number(json.Number(n.Value)), nil
		}
		return core.Float(f), nil
	default:
		return core.String(n.Value), nil
	}
}

func valueToNode(v core.Value) *yaml.Node {
	switch v.Kind() {
	case core.KindBool:
		b, _ := v.AsBool()
		text := "false"
		if b {
			text = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: text}
	case core.KindNumber:
		num, _ := v.AsNumber()
		tag := "!!int"
		if strings.ContainsAny(string(num), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(num)}
	case core.KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case core.KindArray:
		items, _ := v.AsArray()
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			n.Content = append(n.Content, valueToNode(item))
		}
		return n
	case core.KindObject:
		rec, _ := v.AsRecord()
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range rec.Keys() {
			val, _ := rec.Get(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				valueToNode(val),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
