package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sigreer/diskinfo/internal/options"
	"github.com/sigreer/diskinfo/internal/system"
	"github.com/sigreer/diskinfo/internal/system/systemtest"
)

// singleDisk is one disk holding one partition with one mounted filesystem
func singleDisk(t *testing.T) *system.System {
	disk := systemtest.NewDisk("sda", &systemtest.Partition{
		Record: system.RawPartition{
			DeviceID: system.String("sda1"),
			Path:     system.String("/dev/sda1"),
			Size:     system.Int(104857600),
			Offset:   system.Int(1048576),
			Type:     system.String("GPT: Linux filesystem"),
		},
		Volumes: []*systemtest.LogicalDisk{{Record: system.RawLogicalDisk{
			DeviceID:   system.String("/"),
			Path:       system.String("/"),
			Label:      system.String("root"),
			Filesystem: system.String("ext4"),
			FreeSpace:  system.Int(800000000),
		}}},
	})
	disk.Record.Size = system.Int(256052966400)
	disk.Record.DiskNumber = system.Int(0)
	disk.Record.Media = system.String("Fixed hard disk media")
	disk.Record.Serial = system.String("S1")

	sys, err := system.Build("host", &systemtest.Backend{
		Disks:   []*systemtest.Disk{disk},
		Type:    "Linux",
		Version: "Test 1",
	})
	require.NoError(t, err)
	return sys
}

// withDummy adds an md array mounted without a partition table next to sda
func withDummy(t *testing.T) *system.System {
	md := systemtest.NewDisk("md0")
	md.Direct = []*systemtest.LogicalDisk{systemtest.NewLogicalDisk("/srv")}

	sys, err := system.Build("host", &systemtest.Backend{Disks: []*systemtest.Disk{
		systemtest.NewDisk("sda", systemtest.NewPartition("sda1", systemtest.NewLogicalDisk("/"))),
		md,
	}})
	require.NoError(t, err)
	return sys
}

func renderText(t *testing.T, sys *system.System, in options.Input) string {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sys, options.Parse(in)))
	return buf.String()
}

func TestTextDefaultView(t *testing.T) {
	out := renderText(t, singleDisk(t), options.DefaultInput())

	want := "System -- Name: host, Type: Linux, Version: Test 1\n" +
		"  Physical Disk -- Disk Number: 0, Path: /dev/sda, Media: Fixed hard disk media, Serial: S1, Size: 256.05GB\n" +
		"    Partition -- Device ID: sda1, Type: GPT: Linux filesystem, Size: 104.86MB, Offset: 1048576\n" +
		"      Logical Disk -- Label: root, Filesystem: ext4, Free Space: 800.00MB\n"
	assert.Equal(t, want, out)
}

func TestTextRawSize(t *testing.T) {
	in := options.DefaultInput()
	in.Disk = "Sps"
	in.Partition = ""

	out := renderText(t, singleDisk(t), in)
	assert.Contains(t, out, "  Physical Disk -- Size: 256052966400, Path: /dev/sda\n")
	assert.NotContains(t, out, "Partition")
}

func TestTextFreeSpaceAlwaysHuman(t *testing.T) {
	in := options.DefaultInput()
	in.LogicalDisk = "SF"

	out := renderText(t, singleDisk(t), in)
	assert.Contains(t, out, "Logical Disk -- Size: 0, Free Space: 800.00MB")
}

func TestTextUnits(t *testing.T) {
	in := options.DefaultInput()
	in.Units = "binary"

	out := renderText(t, singleDisk(t), in)
	assert.Contains(t, out, "Size: 238.47GiB\n")
	assert.Contains(t, out, "Free Space: 762.94MiB\n")

	in.Units = "GB"
	in.Disk = "PS"
	out = renderText(t, singleDisk(t), in)
	assert.Contains(t, out, "Physical Disk -- Size: 256052966400\n")
	assert.Contains(t, out, "Free Space: 0.80GB\n")
}

func TestTextLogicalOrientation(t *testing.T) {
	in := options.DefaultInput()
	in.Logical = true
	in.Disk = "p"

	out := renderText(t, singleDisk(t), in)
	want := "System -- Name: host, Type: Linux, Version: Test 1\n" +
		"  Logical Disk -- Label: root, Filesystem: ext4, Free Space: 800.00MB\n" +
		"    Partition -- Device ID: sda1, Type: GPT: Linux filesystem, Size: 104.86MB, Offset: 1048576\n" +
		"      Physical Disk -- Path: /dev/sda\n"
	assert.Equal(t, want, out)
}

func TestTextDummyPartitionDiskSide(t *testing.T) {
	out := renderText(t, withDummy(t), options.Input{Disk: "Pd", Partition: "Ld", LogicalDisk: "d"})

	want := "System -- Name: host, Type: , Version: \n" +
		"  Physical Disk -- Device ID: sda\n" +
		"    Partition -- Device ID: sda1\n" +
		"      Logical Disk -- Device ID: /\n" +
		"  Physical Disk -- Device ID: md0\n" +
		"    Logical Disk -- Device ID: /srv\n"
	assert.Equal(t, want, out)
}

func TestTextDummyPartitionLogicalSide(t *testing.T) {
	out := renderText(t, withDummy(t), options.Input{
		Disk: "d", Partition: "Dd", LogicalDisk: "Pd", Logical: true,
	})

	want := "System -- Name: host, Type: , Version: \n" +
		"  Logical Disk -- Device ID: /\n" +
		"    Partition -- Device ID: sda1\n" +
		"      Physical Disk -- Device ID: sda\n" +
		"  Logical Disk -- Device ID: /srv\n" +
		"    Physical Disk -- Device ID: md0\n"
	assert.Equal(t, want, out)
}

func TestTextPartitionsOnly(t *testing.T) {
	sys := withDummy(t)

	out := renderText(t, sys, options.Input{Partition: "dL", LogicalDisk: "d", PartitionsOnly: true})
	want := "System -- Name: host, Type: , Version: \n" +
		"  Partition -- Device ID: sda1\n" +
		"    Logical Disk -- Device ID: /\n"
	assert.Equal(t, want, out)

	out = renderText(t, sys, options.Input{Disk: "d", Partition: "dD", PartitionsOnly: true, Logical: true})
	want = "System -- Name: host, Type: , Version: \n" +
		"  Partition -- Device ID: sda1\n" +
		"    Physical Disk -- Device ID: sda\n"
	assert.Equal(t, want, out)
}

func TestTextWithoutChildren(t *testing.T) {
	out := renderText(t, withDummy(t), options.Input{Disk: "d", Partition: "d"})
	want := "System -- Name: host, Type: , Version: \n" +
		"  Physical Disk -- Device ID: sda\n" +
		"  Physical Disk -- Device ID: md0\n"
	assert.Equal(t, want, out)
}

func TestIndentationFollowsDepth(t *testing.T) {
	md := systemtest.NewDisk("md0", systemtest.NewPartition("md0p1", systemtest.NewLogicalDisk("/a"), systemtest.NewLogicalDisk("/b")))
	md.Direct = []*systemtest.LogicalDisk{systemtest.NewLogicalDisk("/c")}
	sys, err := system.Build("h", &systemtest.Backend{Disks: []*systemtest.Disk{
		systemtest.NewDisk("sda", systemtest.NewPartition("sda1"), systemtest.NewPartition("sda2", systemtest.NewLogicalDisk("/a"))),
		md,
	}})
	require.NoError(t, err)

	inputs := []options.Input{
		options.DefaultInput(),
		{Disk: "P", Partition: "LD", LogicalDisk: "P", Logical: true},
		{Partition: "L", PartitionsOnly: true},
		{Partition: "D", PartitionsOnly: true, Logical: true},
	}
	for _, in := range inputs {
		opts := options.Parse(in)
		root, err := Tree(sys, opts)
		require.NoError(t, err)

		var want []string
		var collect func(n *Node, depth int)
		collect = func(n *Node, depth int) {
			want = append(want, strings.Repeat(" ", 2*depth)+Line(n))
			for _, c := range n.Children {
				collect(c, depth+1)
			}
		}
		collect(root, 0)

		var buf bytes.Buffer
		require.NoError(t, Text(&buf, sys, opts))
		got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		assert.Equal(t, want, got, "mode %s", opts.Mode())
	}
}

func TestLineWithoutProperties(t *testing.T) {
	assert.Equal(t, "Partition", Line(&Node{Kind: system.KindPartition}))
	assert.Equal(t, "Partition -- Bootable: true, Blocks: -1", Line(&Node{
		Kind:       system.KindPartition,
		Properties: Properties{{Key: system.KeyBootable, Value: true}, {Key: system.KeyBlocks, Value: int64(-1)}},
	}))
}

func TestWriteJSONKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, singleDisk(t), options.Parse(options.DefaultInput())))

	out := buf.String()
	assert.Less(t, strings.Index(out, `"Disk Number": 0`), strings.Index(out, `"Size": "256.05GB"`))

	var decoded struct {
		Kind       string                 `json:"kind"`
		Properties map[string]interface{} `json:"properties"`
		Children   []struct {
			Kind       string                 `json:"kind"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, KindSystem, decoded.Kind)
	assert.Equal(t, "host", decoded.Properties["Name"])
	require.Len(t, decoded.Children, 1)
	assert.Equal(t, system.KindPhysicalDisk, decoded.Children[0].Kind)
	assert.Equal(t, "S1", decoded.Children[0].Properties["Serial"])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, singleDisk(t), options.Parse(options.DefaultInput())))

	out := buf.String()
	assert.Less(t, strings.Index(out, "Disk Number: 0"), strings.Index(out, "Size: 256.05GB"))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, KindSystem, decoded["kind"])
	assert.Len(t, decoded["children"], 1)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", singleDisk(t), options.Parse(options.DefaultInput()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
