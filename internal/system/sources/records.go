package sources

import "github.com/sigreer/diskinfo/internal/system"

// The backends enumerate eagerly and hand the builder these in-memory records.

type diskRecord struct {
	raw    system.RawDisk
	parts  []*partitionRecord
	direct []*logicalDiskRecord
}

func (d *diskRecord) Raw() system.RawDisk { return d.raw }

func (d *diskRecord) Partitions() ([]system.PartitionRecord, error) {
	recs := make([]system.PartitionRecord, len(d.parts))
	for i, p := range d.parts {
		recs[i] = p
	}
	return recs, nil
}

func (d *diskRecord) LogicalDisks() ([]system.LogicalDiskRecord, error) {
	return logicalRecords(d.direct), nil
}

type partitionRecord struct {
	raw system.RawPartition
	lds []*logicalDiskRecord
}

func (p *partitionRecord) Raw() system.RawPartition { return p.raw }

func (p *partitionRecord) LogicalDisks() ([]system.LogicalDiskRecord, error) {
	return logicalRecords(p.lds), nil
}

type logicalDiskRecord struct {
	raw system.RawLogicalDisk
}

func (l *logicalDiskRecord) Raw() system.RawLogicalDisk { return l.raw }

func logicalRecords(lds []*logicalDiskRecord) []system.LogicalDiskRecord {
	recs := make([]system.LogicalDiskRecord, len(lds))
	for i, ld := range lds {
		recs[i] = ld
	}
	return recs
}

func diskRecords(disks []*diskRecord) []system.DiskRecord {
	recs := make([]system.DiskRecord, len(disks))
	for i, d := range disks {
		recs[i] = d
	}
	return recs
}
