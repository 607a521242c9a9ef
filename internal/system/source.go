package system

// Source enumerates the raw device records of a host
type Source interface {
	PhysicalDisks() ([]DiskRecord, error)
}

// Backend is a Source that also describes the operating system it runs on
type Backend interface {
	Source
	OSType() string
	OSVersion() string
}

// DiskRecord is one physical disk as reported by a backend
type DiskRecord interface {
	Raw() RawDisk
	Partitions() ([]PartitionRecord, error)
	// LogicalDisks returns volumes whose source is the whole disk, with no
	// partition boundary in between.
	LogicalDisks() ([]LogicalDiskRecord, error)
}

// PartitionRecord is one partition as reported by a backend
type PartitionRecord interface {
	Raw() RawPartition
	LogicalDisks() ([]LogicalDiskRecord, error)
}

// LogicalDiskRecord is one logical disk or mount point as reported by a backend
type LogicalDiskRecord interface {
	Raw() RawLogicalDisk
}

// RawDisk holds backend values for a physical disk. A nil field means the
// backend could not supply or parse it.
type RawDisk struct {
	Size           *int64
	DiskNumber     *int64
	DeviceID       *string
	Path           *string
	Media          *string
	Serial         *string
	Model          *string
	Sectors        *int64
	Heads          *int64
	Cylinders      *int64
	BytesPerSector *int64
	Firmware       *string
	Interface      *string
	MediaLoaded    *bool
	Status         *string
}

// RawPartition holds backend values for a partition
type RawPartition struct {
	Blocksize       *int64
	Bootable        *bool
	Active          *bool
	Description     *string
	Path            *string
	DeviceID        *string
	DiskNumber      *int64
	PartitionNumber *int64
	Blocks          *int64
	Primary         *bool
	Size            *int64
	Offset          *int64
	Type            *string
}

// RawLogicalDisk holds backend values for a logical disk
type RawLogicalDisk struct {
	Description        *string
	DeviceID           *string
	Type               *string
	Filesystem         *string
	FreeSpace          *int64
	MaxComponentLength *int64
	Name               *string
	Path               *string
	Size               *int64
	Label              *string
	Serial             *string
	Mounted            *string
}

// Int returns a pointer to v
func Int(v int64) *int64 {
	return &v
}

// String returns a pointer to s, or nil when s is empty
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Bool returns a pointer to v
func Bool(v bool) *bool {
	return &v
}
