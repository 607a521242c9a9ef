package system

import (
	"os"

	"github.com/rs/zerolog/log"
)

// Build enumerates every record of the backend and returns the device graph.
// An empty name falls back to the host name. Any enumeration failure aborts
// the build with a *ParseError and no System is returned.
func Build(name string, backend Backend) (*System, error) {
	if name == "" {
		name = hostname()
	}

	b := &builder{sys: &System{
		Name:             name,
		Type:             backend.OSType(),
		Version:          backend.OSVersion(),
		partitionsByID:   make(map[string]*Partition),
		logicalDisksByID: make(map[string]*LogicalDisk),
	}}

	records, err := backend.PhysicalDisks()
	if err != nil {
		return nil, &ParseError{Op: "enumerate physical disks", Err: err}
	}

	for _, rec := range records {
		if err := b.addDisk(rec); err != nil {
			return nil, err
		}
	}

	log.Debug().
		Str("system", b.sys.Name).
		Int("disks", len(b.sys.disks)).
		Int("partitions", len(b.sys.partitions)).
		Int("logical_disks", len(b.sys.logicalDisks)).
		Msg("device graph built")

	return b.sys, nil
}

type builder struct {
	sys *System
}

func (b *builder) addDisk(rec DiskRecord) error {
	disk := newPhysicalDisk(rec.Raw())
	disk.system = b.sys
	b.sys.disks = append(b.sys.disks, disk)

	parts, err := rec.Partitions()
	if err != nil {
		return &ParseError{Op: "enumerate partitions of " + disk.DeviceID, Err: err}
	}
	for _, prec := range parts {
		part := b.findOrCreatePartition(prec.Raw(), disk)
		disk.addPartition(part)

		lds, err := prec.LogicalDisks()
		if err != nil {
			return &ParseError{Op: "enumerate logical disks of " + part.DeviceID, Err: err}
		}
		for _, lrec := range lds {
			link(part, b.findOrCreateLogicalDisk(lrec.Raw()))
		}
	}

	direct, err := rec.LogicalDisks()
	if err != nil {
		return &ParseError{Op: "enumerate logical disks of " + disk.DeviceID, Err: err}
	}
	for _, lrec := range direct {
		ld := b.findOrCreateLogicalDisk(lrec.Raw())
		dummy := b.dummyPartition(disk, ld)
		disk.addPartition(dummy)
		link(dummy, ld)
	}

	return nil
}

// findOrCreatePartition deduplicates by device ID. A record without one
// cannot be matched and always becomes a new, unindexed partition.
func (b *builder) findOrCreatePartition(raw RawPartition, disk *PhysicalDisk) *Partition {
	if id := stringOr(raw.DeviceID, ""); id != "" {
		if existing, ok := b.sys.partitionsByID[id]; ok {
			return existing
		}
	}
	part := newPartition(raw)
	part.disk = disk
	b.register(part)
	return part
}

func (b *builder) findOrCreateLogicalDisk(raw RawLogicalDisk) *LogicalDisk {
	if id := stringOr(raw.DeviceID, ""); id != "" {
		if existing, ok := b.sys.logicalDisksByID[id]; ok {
			return existing
		}
	}
	ld := newLogicalDisk(raw)
	ld.system = b.sys
	if ld.DeviceID != "" {
		b.sys.logicalDisksByID[ld.DeviceID] = ld
	}
	b.sys.logicalDisks = append(b.sys.logicalDisks, ld)
	return ld
}

// dummyPartition returns the synthetic partition joining disk and ld. Its
// device ID is derived from both so it never collides with a real partition.
func (b *builder) dummyPartition(disk *PhysicalDisk, ld *LogicalDisk) *Partition {
	id := disk.DeviceID + "#" + ld.DeviceID
	if existing, ok := b.sys.partitionsByID[id]; ok {
		return existing
	}
	part := &Partition{
		Blocksize:       -1,
		Description:     "Whole disk",
		Path:            disk.Path,
		DeviceID:        id,
		DiskNumber:      disk.DiskNumber,
		PartitionNumber: -1,
		Blocks:          disk.Sectors,
		Size:            disk.Size,
		Offset:          0,
		dummy:           true,
		disk:            disk,
	}
	b.register(part)
	return part
}

func (b *builder) register(p *Partition) {
	if p.DeviceID != "" {
		b.sys.partitionsByID[p.DeviceID] = p
	}
	b.sys.partitions = append(b.sys.partitions, p)
}

func newPhysicalDisk(raw RawDisk) *PhysicalDisk {
	f := &fallbacks{}
	d := &PhysicalDisk{
		Size:           f.int(KeySize, raw.Size, 0),
		DiskNumber:     f.int(KeyDiskNumber, raw.DiskNumber, -1),
		DeviceID:       f.str(KeyDeviceID, raw.DeviceID, ""),
		Path:           f.str(KeyPath, raw.Path, ""),
		Media:          f.str(KeyMedia, raw.Media, ""),
		Serial:         f.str(KeySerial, raw.Serial, ""),
		Model:          f.str(KeyModel, raw.Model, ""),
		Sectors:        f.int(KeySectors, raw.Sectors, 0),
		Heads:          f.int(KeyHeads, raw.Heads, 0),
		Cylinders:      f.int(KeyCylinders, raw.Cylinders, 0),
		BytesPerSector: f.int(KeyBytesPerSector, raw.BytesPerSector, 0),
		Firmware:       f.str(KeyFirmware, raw.Firmware, "unknown"),
		Interface:      f.str(KeyInterface, raw.Interface, ""),
		MediaLoaded:    f.bool(KeyMediaLoaded, raw.MediaLoaded),
		Status:         f.str(KeyStatus, raw.Status, ""),
	}
	f.log(KindPhysicalDisk, d.DeviceID)
	return d
}

func newPartition(raw RawPartition) *Partition {
	f := &fallbacks{}
	p := &Partition{
		Blocksize:       f.int(KeyBlocksize, raw.Blocksize, -1),
		Bootable:        f.bool(KeyBootable, raw.Bootable),
		Active:          f.bool(KeyActive, raw.Active),
		Description:     f.str(KeyDescription, raw.Description, ""),
		Path:            f.str(KeyPath, raw.Path, ""),
		DeviceID:        f.str(KeyDeviceID, raw.DeviceID, ""),
		DiskNumber:      f.int(KeyDiskNumber, raw.DiskNumber, -1),
		PartitionNumber: f.int(KeyPartitionNumber, raw.PartitionNumber, -1),
		Blocks:          f.int(KeyBlocks, raw.Blocks, -1),
		Primary:         f.bool(KeyPrimary, raw.Primary),
		Size:            f.int(KeySize, raw.Size, 0),
		Offset:          f.int(KeyOffset, raw.Offset, -1),
		Type:            f.str(KeyType, raw.Type, ""),
	}
	f.log(KindPartition, p.DeviceID)
	return p
}

func newLogicalDisk(raw RawLogicalDisk) *LogicalDisk {
	f := &fallbacks{}
	ld := &LogicalDisk{
		Description:        f.str(KeyDescription, raw.Description, ""),
		DeviceID:           f.str(KeyDeviceID, raw.DeviceID, ""),
		Type:               f.str(KeyType, raw.Type, ""),
		Filesystem:         f.str(KeyFilesystem, raw.Filesystem, "unknown"),
		FreeSpace:          f.int(KeyFreeSpace, raw.FreeSpace, 0),
		MaxComponentLength: f.int(KeyMaxComponentLength, raw.MaxComponentLength, -1),
		Name:               f.str(KeyName, raw.Name, ""),
		Path:               f.str(KeyPath, raw.Path, ""),
		Size:               f.int(KeySize, raw.Size, 0),
		Label:              f.str(KeyLabel, raw.Label, ""),
		Serial:             f.str(KeySerial, raw.Serial, ""),
		Mounted:            f.str(KeyMounted, raw.Mounted, ""),
	}
	f.log(KindLogicalDisk, ld.DeviceID)
	return ld
}

// fallbacks collects the keys that had to take their default value
type fallbacks struct {
	keys []string
}

func (f *fallbacks) int(key string, v *int64, def int64) int64 {
	if v == nil {
		f.keys = append(f.keys, key)
		return def
	}
	return *v
}

func (f *fallbacks) str(key string, v *string, def string) string {
	if v == nil {
		f.keys = append(f.keys, key)
		return def
	}
	return *v
}

func (f *fallbacks) bool(key string, v *bool) bool {
	if v == nil {
		f.keys = append(f.keys, key)
		return false
	}
	return *v
}

func (f *fallbacks) log(kind, deviceID string) {
	if len(f.keys) == 0 {
		return
	}
	log.Trace().
		Str("kind", kind).
		Str("device_id", deviceID).
		Strs("defaults", f.keys).
		Msg("properties unavailable, using defaults")
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "unknown"
	}
	return name
}
