package system

// Property keys. These strings are what the renderer prints and what the
// option parser maps letters onto.
const (
	KeySize               = "Size"
	KeyDiskNumber         = "Disk Number"
	KeyDeviceID           = "Device ID"
	KeyPath               = "Path"
	KeyMedia              = "Media"
	KeySerial             = "Serial"
	KeyModel              = "Model"
	KeySectors            = "Sectors"
	KeyHeads              = "Heads"
	KeyCylinders          = "Cylinders"
	KeyBytesPerSector     = "Bytes per Sector"
	KeyFirmware           = "Firmware"
	KeyInterface          = "Interface"
	KeyMediaLoaded        = "Media Loaded"
	KeyStatus             = "Status"
	KeyBlocksize          = "Blocksize"
	KeyBootable           = "Bootable"
	KeyActive             = "Active"
	KeyDescription        = "Description"
	KeyPartitionNumber    = "Partition Number"
	KeyBlocks             = "Blocks"
	KeyPrimary            = "Primary"
	KeyOffset             = "Offset"
	KeyType               = "Type"
	KeyFilesystem         = "Filesystem"
	KeyFreeSpace          = "Free Space"
	KeyMaxComponentLength = "Max Component Length"
	KeyName               = "Name"
	KeyLabel              = "Label"
	KeyMounted            = "Mounted"
)

// Entity kind names
const (
	KindPhysicalDisk = "Physical Disk"
	KindPartition    = "Partition"
	KindLogicalDisk  = "Logical Disk"
)

// Entity is implemented by every node of the device graph
type Entity interface {
	Kind() string
	Keys() []string
	Value(key string) (any, error)
}

var diskKeys = []string{
	KeySize, KeyDiskNumber, KeyDeviceID, KeyPath, KeyMedia, KeySerial, KeyModel,
	KeySectors, KeyHeads, KeyCylinders, KeyBytesPerSector, KeyFirmware,
	KeyInterface, KeyMediaLoaded, KeyStatus,
}

var partitionKeys = []string{
	KeyBlocksize, KeyBootable, KeyActive, KeyDescription, KeyPath, KeyDeviceID,
	KeyDiskNumber, KeyPartitionNumber, KeyBlocks, KeyPrimary, KeySize, KeyOffset,
	KeyType,
}

var logicalDiskKeys = []string{
	KeyDescription, KeyDeviceID, KeyType, KeyFilesystem, KeyFreeSpace,
	KeyMaxComponentLength, KeyName, KeyPath, KeySize, KeyLabel, KeySerial,
	KeyMounted,
}

// DiskKeys returns the physical disk schema in declaration order
func DiskKeys() []string { return append([]string(nil), diskKeys...) }

// PartitionKeys returns the partition schema in declaration order
func PartitionKeys() []string { return append([]string(nil), partitionKeys...) }

// LogicalDiskKeys returns the logical disk schema in declaration order
func LogicalDiskKeys() []string { return append([]string(nil), logicalDiskKeys...) }

func (d *PhysicalDisk) Kind() string   { return KindPhysicalDisk }
func (d *PhysicalDisk) Keys() []string { return DiskKeys() }

// Value returns the property stored under key as int64, string or bool
func (d *PhysicalDisk) Value(key string) (any, error) {
	switch key {
	case KeySize:
		return d.Size, nil
	case KeyDiskNumber:
		return d.DiskNumber, nil
	case KeyDeviceID:
		return d.DeviceID, nil
	case KeyPath:
		return d.Path, nil
	case KeyMedia:
		return d.Media, nil
	case KeySerial:
		return d.Serial, nil
	case KeyModel:
		return d.Model, nil
	case KeySectors:
		return d.Sectors, nil
	case KeyHeads:
		return d.Heads, nil
	case KeyCylinders:
		return d.Cylinders, nil
	case KeyBytesPerSector:
		return d.BytesPerSector, nil
	case KeyFirmware:
		return d.Firmware, nil
	case KeyInterface:
		return d.Interface, nil
	case KeyMediaLoaded:
		return d.MediaLoaded, nil
	case KeyStatus:
		return d.Status, nil
	}
	return nil, &UnknownKeyError{Kind: KindPhysicalDisk, Key: key}
}

func (p *Partition) Kind() string   { return KindPartition }
func (p *Partition) Keys() []string { return PartitionKeys() }

// Value returns the property stored under key as int64, string or bool
func (p *Partition) Value(key string) (any, error) {
	switch key {
	case KeyBlocksize:
		return p.Blocksize, nil
	case KeyBootable:
		return p.Bootable, nil
	case KeyActive:
		return p.Active, nil
	case KeyDescription:
		return p.Description, nil
	case KeyPath:
		return p.Path, nil
	case KeyDeviceID:
		return p.DeviceID, nil
	case KeyDiskNumber:
		return p.DiskNumber, nil
	case KeyPartitionNumber:
		return p.PartitionNumber, nil
	case KeyBlocks:
		return p.Blocks, nil
	case KeyPrimary:
		return p.Primary, nil
	case KeySize:
		return p.Size, nil
	case KeyOffset:
		return p.Offset, nil
	case KeyType:
		return p.Type, nil
	}
	return nil, &UnknownKeyError{Kind: KindPartition, Key: key}
}

func (l *LogicalDisk) Kind() string   { return KindLogicalDisk }
func (l *LogicalDisk) Keys() []string { return LogicalDiskKeys() }

// Value returns the property stored under key as int64, string or bool
func (l *LogicalDisk) Value(key string) (any, error) {
	switch key {
	case KeyDescription:
		return l.Description, nil
	case KeyDeviceID:
		return l.DeviceID, nil
	case KeyType:
		return l.Type, nil
	case KeyFilesystem:
		return l.Filesystem, nil
	case KeyFreeSpace:
		return l.FreeSpace, nil
	case KeyMaxComponentLength:
		return l.MaxComponentLength, nil
	case KeyName:
		return l.Name, nil
	case KeyPath:
		return l.Path, nil
	case KeySize:
		return l.Size, nil
	case KeyLabel:
		return l.Label, nil
	case KeySerial:
		return l.Serial, nil
	case KeyMounted:
		return l.Mounted, nil
	}
	return nil, &UnknownKeyError{Kind: KindLogicalDisk, Key: key}
}
