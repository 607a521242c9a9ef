package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sigreer/diskinfo/internal/options"
	"github.com/sigreer/diskinfo/internal/system"
)

const indent = "  "

// Text prints one line per visited entity, indented two spaces per level
// below the System line.
func Text(w io.Writer, sys *system.System, opts options.Options) error {
	root, err := Tree(sys, opts)
	if err != nil {
		return err
	}
	return WriteText(w, root)
}

// WriteText prints an already walked tree
func WriteText(w io.Writer, root *Node) error {
	return writeNode(w, root, 0)
}

func writeNode(w io.Writer, n *Node, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(indent, depth), Line(n)); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := writeNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Line formats a node without indentation, e.g.
// "Partition -- Device ID: sda1, Size: 104.86MB".
func Line(n *Node) string {
	if len(n.Properties) == 0 {
		return n.Kind
	}
	fields := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		fields[i] = p.Key + ": " + valueString(p.Value)
	}
	return n.Kind + " -- " + strings.Join(fields, ", ")
}

func valueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
