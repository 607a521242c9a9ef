package sources

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sigreer/diskinfo/internal/system"
)

// Runner executes an external command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Linux enumerates block devices from /proc/partitions, sysfs, the udev
// database and df. All pseudo-file paths are resolved below Root so the
// backend can run against a captured tree.
type Linux struct {
	Root string
	Run  Runner

	ctx context.Context
}

// NewLinux returns a Linux backend reading below root
func NewLinux(ctx context.Context, root string) *Linux {
	return &Linux{Root: root, Run: execRunner, ctx: ctx}
}

// skipped kernel names; none of them can carry a partition table
var skipPrefixes = []string{"loop", "ram", "zram", "sr", "fd", "dm-"}

// procEntry is a line of /proc/partitions
type procEntry struct {
	major  int
	minor  int
	blocks int64 // 1 KiB blocks
	name   string
}

func (e procEntry) majMin() string {
	return fmt.Sprintf("%d:%d", e.major, e.minor)
}

func (l *Linux) OSType() string { return "Linux" }

// OSVersion prefers the distribution name from os-release and falls back to
// the kernel release.
func (l *Linux) OSVersion() string {
	if name := readOSRelease(l.path("/etc/os-release")); name != "" {
		return name
	}
	return unameVersion()
}

// PhysicalDisks enumerates every disk with its partitions and the mounted
// filesystems df reports on them.
func (l *Linux) PhysicalDisks() ([]system.DiskRecord, error) {
	entries, err := l.readProcPartitions()
	if err != nil {
		return nil, err
	}

	mounts, err := l.mounts()
	if err != nil {
		return nil, err
	}

	disks, byName := l.disks(entries)
	partsByPath := make(map[string]*partitionRecord)

	for _, e := range entries {
		if _, isDisk := byName[e.name]; isDisk || skipped(e.name) {
			continue
		}
		disk := l.parentDisk(e.name, byName)
		if disk == nil {
			log.Debug().Str("device", e.name).Msg("no parent disk, skipping")
			continue
		}
		part := l.partition(e, disk)
		disk.parts = append(disk.parts, part)
		partsByPath[*part.raw.Path] = part
	}

	links := l.diskLinks()
	disksByPath := make(map[string]*diskRecord, len(disks))
	for _, d := range disks {
		disksByPath[*d.raw.Path] = d
	}

	for _, m := range mounts {
		source := l.resolveDevice(m.source)
		ld := l.logicalDisk(m, source, links)
		if part, ok := partsByPath[source]; ok {
			part.lds = append(part.lds, ld)
			continue
		}
		if disk, ok := disksByPath[source]; ok {
			disk.direct = append(disk.direct, ld)
			continue
		}
		log.Debug().Str("source", m.source).Str("target", m.target).Msg("mount has no block device, skipping")
	}

	return diskRecords(disks), nil
}

// path maps an absolute system path below the backend root
func (l *Linux) path(p string) string {
	return filepath.Join(l.Root, p)
}

func (l *Linux) readProcPartitions() ([]procEntry, error) {
	name := l.path("/proc/partitions")
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	var entries []procEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 4 {
			continue
		}
		major, err1 := strconv.Atoi(fields[0])
		minor, err2 := strconv.Atoi(fields[1])
		blocks, err3 := strconv.ParseInt(fields[2], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			// header line
			continue
		}
		entries = append(entries, procEntry{major: major, minor: minor, blocks: blocks, name: fields[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return entries, nil
}

// disks picks the whole-disk entries. /sys/block lists exactly the disks;
// without sysfs the classic major numbers for SCSI and md devices are used.
func (l *Linux) disks(entries []procEntry) ([]*diskRecord, map[string]*diskRecord) {
	_, statErr := os.Stat(l.path("/sys/block"))
	haveSysfs := statErr == nil

	var disks []*diskRecord
	byName := make(map[string]*diskRecord)
	for _, e := range entries {
		if skipped(e.name) {
			continue
		}
		isDisk := false
		if haveSysfs {
			_, err := os.Stat(l.path(filepath.Join("/sys/block", e.name)))
			isDisk = err == nil
		} else {
			isDisk = (e.major == 8 && e.minor%16 == 0) || e.major == 9
		}
		if !isDisk {
			continue
		}
		d := &diskRecord{raw: l.diskRaw(e, int64(len(disks)))}
		disks = append(disks, d)
		byName[e.name] = d
	}
	return disks, byName
}

// parentDisk finds the disk a partition belongs to, from the sysfs layout
// /sys/block/<disk>/<part> or else by the longest disk name prefix.
func (l *Linux) parentDisk(name string, byName map[string]*diskRecord) *diskRecord {
	for diskName, d := range byName {
		if fileExists(l.path(filepath.Join("/sys/block", diskName, name, "partition"))) {
			return d
		}
	}
	var best *diskRecord
	bestLen := 0
	for diskName, d := range byName {
		if strings.HasPrefix(name, diskName) && len(diskName) > bestLen {
			best, bestLen = d, len(diskName)
		}
	}
	return best
}

func (l *Linux) diskRaw(e procEntry, number int64) system.RawDisk {
	blockDir := l.path(filepath.Join("/sys/block", e.name))
	deviceDir := filepath.Join(blockDir, "device")
	udev := readUdev(l.path("/run/udev/data"), e.majMin())

	raw := system.RawDisk{
		DiskNumber: system.Int(number),
		DeviceID:   system.String(e.name),
		Path:       system.String("/dev/" + e.name),
		Model:      firstString(readAttr(deviceDir, "model"), udev.get("ID_MODEL")),
		Serial:     firstString(udev.get("ID_SERIAL_SHORT"), readAttr(deviceDir, "serial")),
		Firmware: firstString(
			readAttr(deviceDir, "rev"),
			readAttr(deviceDir, "firmware_rev"),
			udev.get("ID_REVISION"),
		),
		Interface: firstString(udev.get("ID_BUS"), busFromName(e.name)),
		Status:    readAttr(deviceDir, "state"),
	}

	size := sizeBytes(blockDir, e)
	raw.Size = size
	if size != nil {
		raw.MediaLoaded = system.Bool(*size > 0)
	}

	if bps := readIntAttr(blockDir, "queue/logical_block_size"); bps != nil && *bps > 0 {
		raw.BytesPerSector = bps
		if size != nil {
			raw.Sectors = system.Int(*size / *bps)
		}
	}

	if removable := readIntAttr(blockDir, "removable"); removable != nil {
		if *removable == 1 {
			raw.Media = system.String("Removable Media")
		} else {
			raw.Media = system.String("Fixed hard disk media")
		}
	}

	return raw
}

func (l *Linux) partition(e procEntry, disk *diskRecord) *partitionRecord {
	diskName := *disk.raw.DeviceID
	partDir := l.path(filepath.Join("/sys/block", diskName, e.name))
	udev := readUdev(l.path("/run/udev/data"), e.majMin())

	raw := system.RawPartition{
		DeviceID:        system.String(e.name),
		Path:            system.String("/dev/" + e.name),
		DiskNumber:      disk.raw.DiskNumber,
		PartitionNumber: firstInt(readIntAttr(partDir, "partition"), udev.getInt("ID_PART_ENTRY_NUMBER")),
		Size:            sizeBytes(partDir, e),
		Blocksize:       disk.raw.BytesPerSector,
	}

	if start := readIntAttr(partDir, "start"); start != nil {
		raw.Offset = system.Int(*start * 512)
	} else if offset := udev.getInt("ID_PART_ENTRY_OFFSET"); offset != nil {
		raw.Offset = system.Int(*offset * 512)
	}

	if raw.Size != nil && raw.Blocksize != nil {
		raw.Blocks = system.Int(*raw.Size / *raw.Blocksize)
	}

	describePartition(&raw, udev)
	return &partitionRecord{raw: raw}
}

func (l *Linux) logicalDisk(m mount, source string, links linkIndex) *logicalDiskRecord {
	raw := system.RawLogicalDisk{
		Description:        system.String("Mounted filesystem on " + source),
		DeviceID:           system.String(m.target),
		Type:               system.String("Local Disk"),
		Filesystem:         system.String(m.fstype),
		FreeSpace:          system.Int(m.avail),
		MaxComponentLength: maxComponentLength(l.path(m.target)),
		Name:               system.String(m.target),
		Path:               system.String(m.target),
		Size:               system.Int(m.size),
		Label:              system.String(links.labels[source]),
		Serial:             system.String(links.uuids[source]),
		Mounted:            system.String(m.target),
	}
	return &logicalDiskRecord{raw: raw}
}

// resolveDevice follows a device symlink such as /dev/mapper/x or
// /dev/disk/by-uuid/y to its kernel device path.
func (l *Linux) resolveDevice(device string) string {
	if !strings.HasPrefix(device, "/") {
		return device
	}
	current := device
	for i := 0; i < 8; i++ {
		target, err := os.Readlink(l.path(current))
		if err != nil {
			return current
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = filepath.Clean(target)
	}
	return current
}

func skipped(name string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// sizeBytes reads the sysfs size (always 512-byte units) and falls back to
// the 1 KiB block count of /proc/partitions.
func sizeBytes(dir string, e procEntry) *int64 {
	if sectors := readIntAttr(dir, "size"); sectors != nil {
		return system.Int(*sectors * 512)
	}
	return system.Int(e.blocks * 1024)
}

func busFromName(name string) *string {
	switch {
	case strings.HasPrefix(name, "nvme"):
		return system.String("nvme")
	case strings.HasPrefix(name, "md"):
		return system.String("md")
	case strings.HasPrefix(name, "mmcblk"):
		return system.String("mmc")
	case strings.HasPrefix(name, "vd"):
		return system.String("virtio")
	}
	return nil
}

func readOSRelease(name string) string {
	file, err := os.Open(name)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if ok && key == "PRETTY_NAME" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}
