package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/infrastructure/parsers"
)

// writeOutput encodes v to the named file, or stdout when path is empty.
func writeOutput(path, format string, v any) (err error) {
	var w io.Writer
	var f *os.File

	if path != "" {
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	} else {
		w = os.Stdout
	}

	if err := formatValue(w, format, v); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

func formatValue(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		return formatJSON(w, v)
	case "yaml":
		return formatYAML(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatYAML renders v through its JSON form so field names and key order
// match the JSON output.
func formatYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	parser := &parsers.JSONParser{}
	doc, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	node, err := yamlNode(doc)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return err
	}
	return encoder.Close()
}

// yamlNode converts a decoded document value into a yaml.Node, keeping
// mapping order.
func yamlNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *document.Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		err := t.Each(func(key string, value any) error {
			keyNode := &yaml.Node{}
			if err := keyNode.Encode(key); err != nil {
				return err
			}
			child, err := yamlNode(value)
			if err != nil {
				return err
			}
			node.Content = append(node.Content, keyNode, child)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(t); err != nil {
			return nil, err
		}
		return node, nil
	}
}
