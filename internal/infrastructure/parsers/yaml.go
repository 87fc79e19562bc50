package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/rulebook-core/internal/domain/document"
)

// YAMLParser parses rulebook documents from YAML. Anchors, aliases and
// merge keys are expanded.
type YAMLParser struct{}

// Parse reads one YAML document from the reader.
func (p *YAMLParser) Parse(r io.Reader) (*document.Map, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return document.New(), nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	d := &yamlDecoder{budget: aliasBudget(&root)}
	v, err := d.value(&root)
	if err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return asDocument(FormatYAML, v)
}

// minAliasBudget is the smallest number of nodes a document may expand to.
const minAliasBudget = 10000

// aliasBudget bounds alias expansion at a multiple of the written nodes.
func aliasBudget(root *yaml.Node) int {
	return max(minAliasBudget, 100*countNodes(root))
}

func countNodes(n *yaml.Node) int {
	count := 1
	for _, c := range n.Content {
		count += countNodes(c)
	}
	return count
}

// yamlDecoder converts a node tree into document values, counting every
// node it expands.
type yamlDecoder struct {
	budget   int
	expanded int
}

func (d *yamlDecoder) value(n *yaml.Node) (any, error) {
	d.expanded++
	if d.expanded > d.budget {
		return nil, errors.New("document contains excessive aliasing")
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0])

	case yaml.AliasNode:
		return d.value(n.Alias)

	case yaml.MappingNode:
		m := document.New()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.ShortTag() == "!!merge" {
				if err := d.mergeInto(m, value); err != nil {
					return nil, err
				}
				continue
			}
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := d.value(value)
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, v)
		}
		return m, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := d.value(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!timestamp", "!!binary":
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return document.Normalize(v), nil

	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// mergeInto applies a "<<" merge key. Keys already present win.
func (d *yamlDecoder) mergeInto(m *document.Map, value *yaml.Node) error {
	v, err := d.value(value)
	if err != nil {
		return err
	}
	sources := []any{v}
	if seq, ok := v.([]any); ok {
		sources = seq
	}
	for _, src := range sources {
		sm, ok := src.(*document.Map)
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", value.Line)
		}
		_ = sm.Each(func(k string, inner any) error {
			if !m.Has(k) {
				m.Set(k, inner)
			}
			return nil
		})
	}
	return nil
}
