// Package render walks a device graph and prints the selected properties.
package render

import (
	"fmt"

	"github.com/sigreer/diskinfo/internal/options"
	"github.com/sigreer/diskinfo/internal/system"
	"github.com/sigreer/diskinfo/internal/units"
)

// KindSystem is the kind of the root node
const KindSystem = "System"

// Property is one printed key/value pair. Value is an int64, bool or string;
// humanized sizes are strings.
type Property struct {
	Key   string
	Value any
}

// Properties keeps the selection order when encoded
type Properties []Property

// Node is one visited entity with the children the walk descended into
type Node struct {
	Kind       string     `json:"kind" yaml:"kind"`
	Properties Properties `json:"properties" yaml:"properties"`
	Children   []*Node    `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *Node) add(child *Node) {
	n.Children = append(n.Children, child)
}

// Tree walks sys in the mode fixed by opts and returns the visited entities
// rooted at a System node. The walk never changes mode half way.
func Tree(sys *system.System, opts options.Options) (*Node, error) {
	root := &Node{
		Kind: KindSystem,
		Properties: Properties{
			{Key: system.KeyName, Value: sys.Name},
			{Key: system.KeyType, Value: sys.Type},
			{Key: "Version", Value: sys.Version},
		},
	}

	w := &walker{opts: opts}
	var err error
	switch opts.Mode() {
	case options.WalkDisks:
		err = w.disks(root, sys.PhysicalDisks())
	case options.WalkLogicalDisks:
		err = w.logicalDisks(root, sys.LogicalDisks())
	case options.WalkPartitionsFromDisks:
		err = w.partitions(root, sys.Partitions(), w.partitionLogicalDisks)
	case options.WalkPartitionsFromLogicalDisks:
		err = w.partitions(root, sys.Partitions(), w.partitionDisk)
	default:
		err = fmt.Errorf("unknown walk mode %d", opts.Mode())
	}
	if err != nil {
		return nil, err
	}
	return root, nil
}

type walker struct {
	opts options.Options
}

// childrenFunc attaches the other side of a partition to parent
type childrenFunc func(parent *Node, p *system.Partition) error

func (w *walker) disks(parent *Node, disks []*system.PhysicalDisk) error {
	for _, d := range disks {
		n, err := w.node(d)
		if err != nil {
			return err
		}
		parent.add(n)
		if !w.opts.ListPartitions() {
			continue
		}
		if err := w.partitions(n, d.Partitions(), w.partitionLogicalDisks); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) logicalDisks(parent *Node, lds []*system.LogicalDisk) error {
	for _, ld := range lds {
		n, err := w.node(ld)
		if err != nil {
			return err
		}
		parent.add(n)
		if !w.opts.ListPartitions() {
			continue
		}
		if err := w.partitions(n, ld.Partitions(), w.partitionDisk); err != nil {
			return err
		}
	}
	return nil
}

// partitions adds a node per partition. A dummy partition has no node of its
// own; its children take its place.
func (w *walker) partitions(parent *Node, parts []*system.Partition, children childrenFunc) error {
	for _, p := range parts {
		if p.IsDummy() {
			if err := children(parent, p); err != nil {
				return err
			}
			continue
		}
		n, err := w.node(p)
		if err != nil {
			return err
		}
		parent.add(n)
		if err := children(n, p); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) partitionLogicalDisks(parent *Node, p *system.Partition) error {
	if !w.opts.PartitionChildren() {
		return nil
	}
	for _, ld := range p.LogicalDisks() {
		n, err := w.node(ld)
		if err != nil {
			return err
		}
		parent.add(n)
	}
	return nil
}

func (w *walker) partitionDisk(parent *Node, p *system.Partition) error {
	if !w.opts.PartitionChildren() || p.PhysicalDisk() == nil {
		return nil
	}
	n, err := w.node(p.PhysicalDisk())
	if err != nil {
		return err
	}
	parent.add(n)
	return nil
}

func (w *walker) node(e system.Entity) (*Node, error) {
	sel := w.opts.Selection(e.Kind())
	n := &Node{Kind: e.Kind(), Properties: make(Properties, 0, len(sel.Keys))}
	for _, key := range sel.Keys {
		v, err := e.Value(key)
		if err != nil {
			return nil, err
		}
		n.Properties = append(n.Properties, Property{Key: key, Value: formatValue(key, v, sel, w.opts.Units)})
	}
	return n, nil
}

// formatValue humanizes byte counts: Size per the selection, Free Space
// always.
func formatValue(key string, v any, sel options.Selection, f units.Formatter) any {
	n, ok := v.(int64)
	if !ok {
		return v
	}
	switch {
	case key == system.KeySize && sel.HumanSize:
		return f.Format(n)
	case key == system.KeyFreeSpace:
		return f.Format(n)
	}
	return n
}
