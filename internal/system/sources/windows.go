//go:build windows

package sources

import (
	"fmt"
	"strings"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"

	"github.com/sigreer/diskinfo/internal/system"
)

// Windows enumerates disks through WMI, following the same associations the
// Disk Management snap-in uses.
type Windows struct{}

func newWindows() (system.Backend, error) {
	return &Windows{}, nil
}

func (w *Windows) OSType() string { return "Windows" }

func (w *Windows) OSVersion() string {
	v := windows.RtlGetVersion()
	version := fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)

	var osInfo []win32OperatingSystem
	if err := wmi.Query(operatingSystemQuery(), &osInfo); err == nil && len(osInfo) > 0 {
		return strings.TrimSpace(osInfo[0].Caption) + " " + version
	}
	return version
}

func (w *Windows) PhysicalDisks() ([]system.DiskRecord, error) {
	var drives []win32DiskDrive
	if err := wmi.Query(diskDriveQuery(), &drives); err != nil {
		return nil, fmt.Errorf("query %s: %w", classDiskDrive, err)
	}

	disks := make([]*diskRecord, 0, len(drives))
	for _, drive := range drives {
		disk := &diskRecord{raw: diskFromWMI(drive)}

		var parts []win32DiskPartition
		if err := wmi.Query(partitionsQuery(drive.DeviceID), &parts); err != nil {
			return nil, fmt.Errorf("query partitions of %s: %w", drive.DeviceID, err)
		}

		for _, part := range parts {
			rec := &partitionRecord{raw: partitionFromWMI(part)}

			var lds []win32LogicalDisk
			if err := wmi.Query(logicalDisksQuery(part.DeviceID), &lds); err != nil {
				return nil, fmt.Errorf("query logical disks of %s: %w", part.DeviceID, err)
			}
			for _, ld := range lds {
				rec.lds = append(rec.lds, &logicalDiskRecord{raw: logicalDiskFromWMI(ld)})
			}
			disk.parts = append(disk.parts, rec)
		}
		disks = append(disks, disk)
	}

	return diskRecords(disks), nil
}
