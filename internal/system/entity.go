package system

// System is the root of a device graph. It is built once by Build and never
// modified afterwards.
type System struct {
	Name    string
	Type    string
	Version string

	disks        []*PhysicalDisk
	partitions   []*Partition
	logicalDisks []*LogicalDisk

	partitionsByID   map[string]*Partition
	logicalDisksByID map[string]*LogicalDisk
}

// PhysicalDisks returns the disks in discovery order
func (s *System) PhysicalDisks() []*PhysicalDisk {
	return append([]*PhysicalDisk(nil), s.disks...)
}

// Partitions returns the real partitions of the flat index in discovery
// order. Dummy partitions are left out.
func (s *System) Partitions() []*Partition {
	var parts []*Partition
	for _, p := range s.partitions {
		if !p.dummy {
			parts = append(parts, p)
		}
	}
	return parts
}

// AllPartitions returns the whole flat partition index, dummies included
func (s *System) AllPartitions() []*Partition {
	return append([]*Partition(nil), s.partitions...)
}

// LogicalDisks returns the flat logical disk index in discovery order
func (s *System) LogicalDisks() []*LogicalDisk {
	return append([]*LogicalDisk(nil), s.logicalDisks...)
}

// Partition looks up a partition of the flat index by device ID
func (s *System) Partition(deviceID string) (*Partition, bool) {
	p, ok := s.partitionsByID[deviceID]
	return p, ok
}

// LogicalDisk looks up a logical disk by device ID
func (s *System) LogicalDisk(deviceID string) (*LogicalDisk, bool) {
	ld, ok := s.logicalDisksByID[deviceID]
	return ld, ok
}

// PhysicalDisk is a whole storage device.
//
// The exported fields of PhysicalDisk, Partition and LogicalDisk are filled
// in by Build and are read-only afterwards. The System indexes partitions and
// logical disks by the DeviceID they had when built; changing a DeviceID
// leaves the index pointing at the old value.
type PhysicalDisk struct {
	Size           int64
	DiskNumber     int64
	DeviceID       string
	Path           string
	Media          string
	Serial         string
	Model          string
	Sectors        int64
	Heads          int64
	Cylinders      int64
	BytesPerSector int64
	Firmware       string
	Interface      string
	MediaLoaded    bool
	Status         string

	system     *System
	partitions []*Partition
}

// System returns the system the disk belongs to
func (d *PhysicalDisk) System() *System {
	return d.system
}

// Partitions returns every partition of the disk in discovery order,
// including dummy partitions.
func (d *PhysicalDisk) Partitions() []*Partition {
	return append([]*Partition(nil), d.partitions...)
}

func (d *PhysicalDisk) addPartition(p *Partition) {
	for _, existing := range d.partitions {
		if existing == p {
			return
		}
	}
	d.partitions = append(d.partitions, p)
}

// Partition is an addressable region of a physical disk. A dummy partition
// stands in for a volume that sits directly on a disk.
type Partition struct {
	Blocksize       int64
	Bootable        bool
	Active          bool
	Description     string
	Path            string
	DeviceID        string
	DiskNumber      int64
	PartitionNumber int64
	Blocks          int64
	Primary         bool
	Size            int64
	Offset          int64
	Type            string

	dummy        bool
	disk         *PhysicalDisk
	logicalDisks []*LogicalDisk
}

// IsDummy reports whether the partition was synthesized for a volume with no
// partition boundary.
func (p *Partition) IsDummy() bool {
	return p.dummy
}

// PhysicalDisk returns the owning disk
func (p *Partition) PhysicalDisk() *PhysicalDisk {
	return p.disk
}

// LogicalDisks returns the logical disks backed by the partition
func (p *Partition) LogicalDisks() []*LogicalDisk {
	return append([]*LogicalDisk(nil), p.logicalDisks...)
}

// LogicalDisk is a mounted or assigned volume carrying a filesystem
type LogicalDisk struct {
	Description        string
	DeviceID           string
	Type               string
	Filesystem         string
	FreeSpace          int64
	MaxComponentLength int64
	Name               string
	Path               string
	Size               int64
	Label              string
	Serial             string
	Mounted            string

	system     *System
	partitions []*Partition
}

// System returns the system the logical disk belongs to
func (l *LogicalDisk) System() *System {
	return l.system
}

// Partitions returns the partitions the logical disk spans, dummies included
func (l *LogicalDisk) Partitions() []*Partition {
	return append([]*Partition(nil), l.partitions...)
}

// link wires a partition and a logical disk in both directions. Repeated
// calls for the same pair are no-ops. Entities are unique per device ID, so
// comparing pointers also keeps ID-less records apart.
func link(p *Partition, ld *LogicalDisk) {
	found := false
	for _, existing := range p.logicalDisks {
		if existing == ld {
			found = true
			break
		}
	}
	if !found {
		p.logicalDisks = append(p.logicalDisks, ld)
	}

	for _, existing := range ld.partitions {
		if existing == p {
			return
		}
	}
	ld.partitions = append(ld.partitions, p)
}
