package sources

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/sigreer/diskinfo/internal/system"
)

// WMI classes queried by the Windows backend
const (
	classDiskDrive       = "Win32_DiskDrive"
	classDiskPartition   = "Win32_DiskPartition"
	classOperatingSystem = "Win32_OperatingSystem"

	assocDriveToPartition   = "Win32_DiskDriveToDiskPartition"
	assocLogicalToPartition = "Win32_LogicalDiskToPartition"
)

// Property names must match the WMI class; pointer fields stay nil when
// WMI reports NULL.
type win32DiskDrive struct {
	DeviceID         string
	Index            *uint32
	Size             *uint64
	MediaType        *string
	SerialNumber     *string
	Model            *string
	TotalSectors     *uint64
	TotalHeads       *uint32
	TotalCylinders   *uint64
	BytesPerSector   *uint32
	FirmwareRevision *string
	InterfaceType    *string
	MediaLoaded      *bool
	Status           *string
}

type win32DiskPartition struct {
	DeviceID         string
	BlockSize        *uint64
	Bootable         *bool
	BootPartition    *bool
	Description      *string
	DiskIndex        *uint32
	Index            *uint32
	NumberOfBlocks   *uint64
	PrimaryPartition *bool
	Size             *uint64
	StartingOffset   *uint64
	Type             *string
}

type win32LogicalDisk struct {
	DeviceID               string
	Description            *string
	DriveType              *uint32
	FileSystem             *string
	FreeSpace              *uint64
	MaximumComponentLength *uint32
	Size                   *uint64
	VolumeName             *string
	VolumeSerialNumber     *string
}

type win32OperatingSystem struct {
	Caption string
}

// selectQuery lists the fields of record, a struct value, as the columns of
// a WQL SELECT on class.
func selectQuery(record any, class string) string {
	t := reflect.TypeOf(record)
	columns := make([]string, t.NumField())
	for i := range columns {
		columns[i] = t.Field(i).Name
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), class)
}

func diskDriveQuery() string {
	return selectQuery(win32DiskDrive{}, classDiskDrive)
}

func operatingSystemQuery() string {
	return selectQuery(win32OperatingSystem{}, classOperatingSystem)
}

func partitionsQuery(driveID string) string {
	return associators(classDiskDrive, driveID, assocDriveToPartition)
}

func logicalDisksQuery(partitionID string) string {
	return associators(classDiskPartition, partitionID, assocLogicalToPartition)
}

// associators builds an ASSOCIATORS OF query. Backslashes in device IDs
// such as \\.\PHYSICALDRIVE0 must be escaped inside WQL strings.
func associators(class, deviceID, assocClass string) string {
	id := strings.ReplaceAll(deviceID, `\`, `\\`)
	return fmt.Sprintf("ASSOCIATORS OF {%s.DeviceID='%s'} WHERE AssocClass = %s", class, id, assocClass)
}

func diskFromWMI(d win32DiskDrive) system.RawDisk {
	return system.RawDisk{
		Size:           u64(d.Size),
		DiskNumber:     u32(d.Index),
		DeviceID:       system.String(d.DeviceID),
		Path:           system.String(d.DeviceID),
		Media:          str(d.MediaType),
		Serial:         str(d.SerialNumber),
		Model:          str(d.Model),
		Sectors:        u64(d.TotalSectors),
		Heads:          u32(d.TotalHeads),
		Cylinders:      u64(d.TotalCylinders),
		BytesPerSector: u32(d.BytesPerSector),
		Firmware:       str(d.FirmwareRevision),
		Interface:      str(d.InterfaceType),
		MediaLoaded:    d.MediaLoaded,
		Status:         str(d.Status),
	}
}

func partitionFromWMI(p win32DiskPartition) system.RawPartition {
	return system.RawPartition{
		Blocksize:       u64(p.BlockSize),
		Bootable:        p.Bootable,
		Active:          p.BootPartition,
		Description:     str(p.Description),
		DeviceID:        system.String(p.DeviceID),
		Path:            system.String(p.DeviceID),
		DiskNumber:      u32(p.DiskIndex),
		PartitionNumber: u32(p.Index),
		Blocks:          u64(p.NumberOfBlocks),
		Primary:         p.PrimaryPartition,
		Size:            u64(p.Size),
		Offset:          u64(p.StartingOffset),
		Type:            str(p.Type),
	}
}

// logicalDiskFromWMI maps a NULL DriveType to "Unknown", like code 0
func logicalDiskFromWMI(l win32LogicalDisk) system.RawLogicalDisk {
	var driveType int64
	if l.DriveType != nil {
		driveType = int64(*l.DriveType)
	}
	return system.RawLogicalDisk{
		Description:        str(l.Description),
		DeviceID:           system.String(l.DeviceID),
		Type:               system.String(driveTypeName(driveType)),
		Filesystem:         str(l.FileSystem),
		FreeSpace:          u64(l.FreeSpace),
		MaxComponentLength: u32(l.MaximumComponentLength),
		Name:               system.String(l.DeviceID),
		Path:               system.String(l.DeviceID),
		Size:               u64(l.Size),
		Label:              str(l.VolumeName),
		Serial:             str(l.VolumeSerialNumber),
		Mounted:            system.String(mountedPath(l.DeviceID)),
	}
}

// Win32_LogicalDisk.DriveType values
var driveTypes = []string{
	"Unknown",
	"No Root Directory",
	"Removable Disk",
	"Local Disk",
	"Network Drive",
	"Compact Disk",
	"RAM Disk",
}

func driveTypeName(code int64) string {
	if code < 0 || code >= int64(len(driveTypes)) {
		return driveTypes[0]
	}
	return driveTypes[code]
}

// mountedPath turns a drive letter such as C: into its root directory
func mountedPath(deviceID string) string {
	if deviceID == "" {
		return ""
	}
	return deviceID + `\`
}

func u64(v *uint64) *int64 {
	if v == nil {
		return nil
	}
	return system.Int(int64(*v))
}

func u32(v *uint32) *int64 {
	if v == nil {
		return nil
	}
	return system.Int(int64(*v))
}

// str trims WMI padding; blank strings count as missing
func str(v *string) *string {
	if v == nil {
		return nil
	}
	return system.String(strings.TrimSpace(*v))
}
