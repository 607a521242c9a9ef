package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sigreer/diskinfo/internal/options"
	"github.com/sigreer/diskinfo/internal/system"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Write renders sys in the given output format
func Write(w io.Writer, format string, sys *system.System, opts options.Options) error {
	root, err := Tree(sys, opts)
	if err != nil {
		return err
	}

	switch format {
	case FormatText, "":
		return WriteText(w, root)
	case FormatJSON:
		return PrintJSON(w, root)
	case FormatYAML:
		return PrintYAML(w, root)
	default:
		return fmt.Errorf("unknown output format %q (want one of %v)", format, Formats)
	}
}

// PrintJSON outputs the tree as indented JSON
func PrintJSON(w io.Writer, root *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

// PrintYAML outputs the tree as YAML
func PrintYAML(w io.Writer, root *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalJSON encodes the properties as an object in selection order
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(prop.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the properties as a mapping in selection order
func (p Properties) MarshalYAML() (interface{}, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, prop := range p {
		var key, value yaml.Node
		if err := key.Encode(prop.Key); err != nil {
			return nil, err
		}
		if err := value.Encode(prop.Value); err != nil {
			return nil, err
		}
		m.Content = append(m.Content, &key, &value)
	}
	return m, nil
}
