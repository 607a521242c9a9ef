// Package systemtest provides an in-memory system.Backend for tests.
package systemtest

import "github.com/sigreer/diskinfo/internal/system"

// Backend serves fixed records. A non-nil Err fails disk enumeration.
type Backend struct {
	Disks   []*Disk
	Err     error
	Type    string
	Version string
}

func (b *Backend) PhysicalDisks() ([]system.DiskRecord, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	recs := make([]system.DiskRecord, len(b.Disks))
	for i, d := range b.Disks {
		recs[i] = d
	}
	return recs, nil
}

func (b *Backend) OSType() string    { return b.Type }
func (b *Backend) OSVersion() string { return b.Version }

// Disk is a raw disk record. Direct holds volumes mounted straight from the
// disk; PartErr fails partition enumeration.
type Disk struct {
	Record  system.RawDisk
	Parts   []*Partition
	Direct  []*LogicalDisk
	PartErr error
}

func (d *Disk) Raw() system.RawDisk { return d.Record }

func (d *Disk) Partitions() ([]system.PartitionRecord, error) {
	if d.PartErr != nil {
		return nil, d.PartErr
	}
	recs := make([]system.PartitionRecord, len(d.Parts))
	for i, p := range d.Parts {
		recs[i] = p
	}
	return recs, nil
}

func (d *Disk) LogicalDisks() ([]system.LogicalDiskRecord, error) {
	return logicalRecords(d.Direct), nil
}

// Partition is a raw partition record
type Partition struct {
	Record  system.RawPartition
	Volumes []*LogicalDisk
}

func (p *Partition) Raw() system.RawPartition { return p.Record }

func (p *Partition) LogicalDisks() ([]system.LogicalDiskRecord, error) {
	return logicalRecords(p.Volumes), nil
}

// LogicalDisk is a raw logical disk record
type LogicalDisk struct {
	Record system.RawLogicalDisk
}

func (l *LogicalDisk) Raw() system.RawLogicalDisk { return l.Record }

func logicalRecords(lds []*LogicalDisk) []system.LogicalDiskRecord {
	recs := make([]system.LogicalDiskRecord, len(lds))
	for i, ld := range lds {
		recs[i] = ld
	}
	return recs
}

// NewDisk returns a disk with device ID id at /dev/<id>
func NewDisk(id string, parts ...*Partition) *Disk {
	return &Disk{
		Record: system.RawDisk{DeviceID: system.String(id), Path: system.String("/dev/" + id)},
		Parts:  parts,
	}
}

// NewPartition returns a partition with device ID id at /dev/<id>
func NewPartition(id string, lds ...*LogicalDisk) *Partition {
	return &Partition{
		Record:  system.RawPartition{DeviceID: system.String(id), Path: system.String("/dev/" + id)},
		Volumes: lds,
	}
}

// NewLogicalDisk returns a logical disk whose device ID, name and path are id
func NewLogicalDisk(id string) *LogicalDisk {
	return &LogicalDisk{Record: system.RawLogicalDisk{
		DeviceID: system.String(id),
		Name:     system.String(id),
		Path:     system.String(id),
	}}
}
