package system_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/diskinfo/internal/system"
	"github.com/sigreer/diskinfo/internal/system/systemtest"
)

func TestBuildSetsSystemDescription(t *testing.T) {
	sys, err := system.Build("host1", &systemtest.Backend{Type: "Linux", Version: "Debian 12"})
	require.NoError(t, err)

	assert.Equal(t, "host1", sys.Name)
	assert.Equal(t, "Linux", sys.Type)
	assert.Equal(t, "Debian 12", sys.Version)
	assert.Empty(t, sys.PhysicalDisks())
}

func TestBuildDefaultsNameToHostname(t *testing.T) {
	sys, err := system.Build("", &systemtest.Backend{})
	require.NoError(t, err)
	assert.NotEmpty(t, sys.Name)
}

func TestBuildSharedPartitionAcrossDisks(t *testing.T) {
	backend := &systemtest.Backend{Disks: []*systemtest.Disk{
		systemtest.NewDisk("disk0", systemtest.NewPartition("X")),
		systemtest.NewDisk("disk1", systemtest.NewPartition("X")),
	}}

	sys, err := system.Build("h", backend)
	require.NoError(t, err)

	require.Len(t, sys.AllPartitions(), 1)
	x, ok := sys.Partition("X")
	require.True(t, ok)

	disks := sys.PhysicalDisks()
	require.Len(t, disks, 2)
	for _, d := range disks {
		parts := d.Partitions()
		require.Len(t, parts, 1)
		assert.Same(t, x, parts[0])
	}
	// the first disk that reported the partition owns it
	assert.Same(t, disks[0], x.PhysicalDisk())
}

func TestBuildNeverDeduplicatesDisks(t *testing.T) {
	backend := &systemtest.Backend{Disks: []*systemtest.Disk{systemtest.NewDisk("same"), systemtest.NewDisk("same")}}

	sys, err := system.Build("h", backend)
	require.NoError(t, err)
	assert.Len(t, sys.PhysicalDisks(), 2)
}

func TestBuildRevisitedPartitionAddsNoDuplicateEdge(t *testing.T) {
	backend := &systemtest.Backend{Disks: []*systemtest.Disk{
		systemtest.NewDisk("disk0", systemtest.NewPartition("p1", systemtest.NewLogicalDisk("C:")), systemtest.NewPartition("p1", systemtest.NewLogicalDisk("C:"))),
	}}

	sys, err := system.Build("h", backend)
	require.NoError(t, err)

	d := sys.PhysicalDisks()[0]
	require.Len(t, d.Partitions(), 1)
	p := d.Partitions()[0]
	require.Len(t, p.LogicalDisks(), 1)
	require.Len(t, p.LogicalDisks()[0].Partitions(), 1)
}

func TestBuildSpannedVolume(t *testing.T) {
	backend := &systemtest.Backend{Disks: []*systemtest.Disk{
		systemtest.NewDisk("disk0", systemtest.NewPartition("p0", systemtest.NewLogicalDisk("D:"))),
		systemtest.NewDisk("disk1", systemtest.NewPartition("p1", systemtest.NewLogicalDisk("D:"))),
	}}

	sys, err := system.Build("h", backend)
	require.NoError(t, err)

	require.Len(t, sys.LogicalDisks(), 1)
	d, ok := sys.LogicalDisk("D:")
	require.True(t, ok)

	parts := d.Partitions()
	require.Len(t, parts, 2)
	assert.Equal(t, "p0", parts[0].DeviceID)
	assert.Equal(t, "p1", parts[1].DeviceID)
}

func TestBuildDummyPartition(t *testing.T) {
	md := systemtest.NewDisk("md0")
	md.Direct = []*systemtest.LogicalDisk{systemtest.NewLogicalDisk("/srv")}
	backend := &systemtest.Backend{Disks: []*systemtest.Disk{
		systemtest.NewDisk("sda", systemtest.NewPartition("sda1", systemtest.NewLogicalDisk("/"))),
		md,
	}}

	sys, err := system.Build("h", backend)
	require.NoError(t, err)

	assert.Len(t, sys.Partitions(), 1, "dummy partitions are not listed")
	all := sys.AllPartitions()
	require.Len(t, all, 2)

	var dummies []*system.Partition
	for _, p := range all {
		if p.IsDummy() {
			dummies = append(dummies, p)
		}
	}
	require.Len(t, dummies, 1)
	dummy := dummies[0]

	assert.Equal(t, "md0", dummy.PhysicalDisk().DeviceID)
	assert.Equal(t, "/dev/md0", dummy.Path)
	require.Len(t, dummy.LogicalDisks(), 1)

	srv, ok := sys.LogicalDisk("/srv")
	require.True(t, ok)
	require.Len(t, srv.Partitions(), 1)
	assert.Same(t, dummy, srv.Partitions()[0])
	assert.Same(t, dummy, sys.PhysicalDisks()[1].Partitions()[0])
}

func TestBuildGraphInvariants(t *testing.T) {
	md := systemtest.NewDisk("md0", systemtest.NewPartition("md0p1", systemtest.NewLogicalDisk("/data")))
	md.Direct = []*systemtest.LogicalDisk{systemtest.NewLogicalDisk("/raw")}
	backend := &systemtest.Backend{Disks: []*systemtest.Disk{
		systemtest.NewDisk("sda", systemtest.NewPartition("sda1", systemtest.NewLogicalDisk("/")), systemtest.NewPartition("sda2", systemtest.NewLogicalDisk("/home"), systemtest.NewLogicalDisk("/data"))),
		systemtest.NewDisk("sdb", systemtest.NewPartition("sda2", systemtest.NewLogicalDisk("/home")), systemtest.NewPartition("sdb1")),
		md,
	}}

	sys, err := system.Build("h", backend)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, p := range sys.AllPartitions() {
		assert.False(t, seen[p.DeviceID], "duplicate partition %s", p.DeviceID)
		seen[p.DeviceID] = true

		owners := 0
		for _, d := range sys.PhysicalDisks() {
			if d == p.PhysicalDisk() {
				owners++
				assert.Contains(t, d.Partitions(), p)
			}
		}
		assert.Equal(t, 1, owners, "partition %s owners", p.DeviceID)

		for _, ld := range p.LogicalDisks() {
			assert.Contains(t, ld.Partitions(), p)
		}
	}

	seenLD := map[string]bool{}
	for _, ld := range sys.LogicalDisks() {
		assert.False(t, seenLD[ld.DeviceID], "duplicate logical disk %s", ld.DeviceID)
		seenLD[ld.DeviceID] = true
		for _, p := range ld.Partitions() {
			assert.Contains(t, p.LogicalDisks(), ld)
		}
	}
}

func TestBuildSourceUnavailable(t *testing.T) {
	cause := errors.New("access denied")
	sys, err := system.Build("h", &systemtest.Backend{Err: cause})

	assert.Nil(t, sys)
	require.Error(t, err)
	assert.ErrorIs(t, err, system.ErrSourceUnavailable)
	assert.ErrorIs(t, err, cause)

	var perr *system.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "enumerate physical disks", perr.Op)
}

func TestBuildPartitionEnumerationFailureDiscardsGraph(t *testing.T) {
	broken := systemtest.NewDisk("sdb")
	broken.PartErr = errors.New("associator query failed")
	backend := &systemtest.Backend{Disks: []*systemtest.Disk{systemtest.NewDisk("sda", systemtest.NewPartition("sda1")), broken}}

	sys, err := system.Build("h", backend)
	assert.Nil(t, sys)
	assert.ErrorIs(t, err, system.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "sdb")
}

func TestBuildFieldFallbacks(t *testing.T) {
	backend := &systemtest.Backend{Disks: []*systemtest.Disk{{
		Record: system.RawDisk{DeviceID: system.String("d")},
		Parts: []*systemtest.Partition{{
			Record:  system.RawPartition{DeviceID: system.String("p")},
			Volumes: []*systemtest.LogicalDisk{{Record: system.RawLogicalDisk{DeviceID: system.String("l")}}},
		}},
	}}}

	sys, err := system.Build("h", backend)
	require.NoError(t, err)

	d := sys.PhysicalDisks()[0]
	assert.Equal(t, int64(0), d.Size)
	assert.Equal(t, int64(-1), d.DiskNumber)
	assert.Equal(t, "unknown", d.Firmware)
	assert.Equal(t, "", d.Model)
	assert.False(t, d.MediaLoaded)

	p := d.Partitions()[0]
	assert.Equal(t, int64(-1), p.Blocksize)
	assert.Equal(t, int64(-1), p.Offset)
	assert.Equal(t, int64(-1), p.PartitionNumber)
	assert.Equal(t, int64(0), p.Size)
	assert.False(t, p.Bootable)

	ld := p.LogicalDisks()[0]
	assert.Equal(t, "unknown", ld.Filesystem)
	assert.Equal(t, int64(-1), ld.MaxComponentLength)
	assert.Equal(t, int64(0), ld.FreeSpace)
}

func TestBackReferences(t *testing.T) {
	sys, err := system.Build("h", &systemtest.Backend{Disks: []*systemtest.Disk{systemtest.NewDisk("sda", systemtest.NewPartition("sda1", systemtest.NewLogicalDisk("/")))}})
	require.NoError(t, err)

	d := sys.PhysicalDisks()[0]
	assert.Same(t, sys, d.System())
	assert.Same(t, sys, sys.LogicalDisks()[0].System())
}

func TestBuildKeepsRecordsWithoutDeviceIDApart(t *testing.T) {
	disk := systemtest.NewDisk("sda",
		&systemtest.Partition{
			Record:  system.RawPartition{Size: system.Int(100)},
			Volumes: []*systemtest.LogicalDisk{{Record: system.RawLogicalDisk{Size: system.Int(10)}}},
		},
		&systemtest.Partition{
			Record:  system.RawPartition{Size: system.Int(200)},
			Volumes: []*systemtest.LogicalDisk{{Record: system.RawLogicalDisk{Size: system.Int(20)}}},
		},
	)

	sys, err := system.Build("h", &systemtest.Backend{Disks: []*systemtest.Disk{disk}})
	require.NoError(t, err)

	parts := sys.PhysicalDisks()[0].Partitions()
	require.Len(t, parts, 2)
	assert.Equal(t, int64(100), parts[0].Size)
	assert.Equal(t, int64(200), parts[1].Size)
	assert.Len(t, sys.AllPartitions(), 2)
	assert.Len(t, sys.LogicalDisks(), 2)

	for i, p := range parts {
		lds := p.LogicalDisks()
		require.Len(t, lds, 1, "partition %d", i)
		assert.Equal(t, int64(10*(i+1)), lds[0].Size)
		assert.Equal(t, []*system.Partition{p}, lds[0].Partitions())
	}

	_, ok := sys.Partition("")
	assert.False(t, ok, "partitions without a device ID are not indexed")
}

func TestIndexUsesDeviceIDAtBuildTime(t *testing.T) {
	sys, err := system.Build("h", &systemtest.Backend{Disks: []*systemtest.Disk{
		systemtest.NewDisk("sda", systemtest.NewPartition("sda1")),
	}})
	require.NoError(t, err)

	part := sys.PhysicalDisks()[0].Partitions()[0]
	indexed, ok := sys.Partition("sda1")
	require.True(t, ok)
	assert.Same(t, part, indexed)
}
