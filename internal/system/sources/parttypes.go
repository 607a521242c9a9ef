package sources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sigreer/diskinfo/internal/system"
)

var (
	gptEFISystem = uuid.MustParse("c12a7328-f81f-11d2-ba4b-00a0c93ec93b")
	gptBIOSBoot  = uuid.MustParse("21686148-6449-6e6f-744e-656564454649")
)

var gptTypes = map[uuid.UUID]string{
	gptEFISystem: "EFI System",
	gptBIOSBoot:  "BIOS boot",
	uuid.MustParse("0fc63daf-8483-4772-8e79-3d69d8477de4"): "Linux filesystem",
	uuid.MustParse("0657fd6d-a4ab-43c4-84e5-0933c84b4f4f"): "Linux swap",
	uuid.MustParse("e6d6d379-f507-44c2-a23c-238f2a3df928"): "Linux LVM",
	uuid.MustParse("a19d880f-05fc-4d3b-a006-743f0f84911e"): "Linux RAID",
	uuid.MustParse("4f68bce3-e8cd-4db1-96e7-fbcaf984b709"): "Linux root (x86-64)",
	uuid.MustParse("933ac7e1-2eb4-4f13-b844-0e14e2aef915"): "Linux home",
	uuid.MustParse("bc13c2ff-59e6-4262-a352-b275fd6f7172"): "Linux extended boot",
	uuid.MustParse("ebd0a0a2-b9e5-4433-87c0-68b6b72699c7"): "Microsoft basic data",
	uuid.MustParse("e3c9e316-0b5c-4db8-817d-f92df00215ae"): "Microsoft reserved",
	uuid.MustParse("de94bba4-06d1-4d40-a16a-bfd50179d6ac"): "Windows recovery environment",
	uuid.MustParse("6a898cc3-1dd2-11b2-99a6-080020736631"): "ZFS",
	uuid.MustParse("48465300-0000-11aa-aa11-00306543ecac"): "Apple HFS+",
}

var mbrTypes = map[int64]string{
	0x05: "Extended",
	0x07: "HPFS/NTFS/exFAT",
	0x0b: "W95 FAT32",
	0x0c: "W95 FAT32 (LBA)",
	0x0f: "W95 Ext'd (LBA)",
	0x82: "Linux swap",
	0x83: "Linux",
	0x85: "Linux extended",
	0x8e: "Linux LVM",
	0xee: "GPT protective",
	0xef: "EFI (FAT-12/16/32)",
	0xfd: "Linux raid autodetect",
}

// describePartition fills the partition table fields from the udev
// ID_PART_ENTRY_* properties.
func describePartition(raw *system.RawPartition, udev udevProps) {
	raw.Description = udev.get("ID_PART_ENTRY_NAME")

	typ, ok := udev["ID_PART_ENTRY_TYPE"]
	if !ok {
		return
	}

	switch strings.ToLower(udev["ID_PART_ENTRY_SCHEME"]) {
	case "gpt":
		id, err := uuid.Parse(typ)
		if err != nil {
			raw.Type = system.String("GPT: " + typ)
			return
		}
		name, known := gptTypes[id]
		if !known {
			name = id.String()
		}
		raw.Type = system.String("GPT: " + name)
		raw.Bootable = system.Bool(id == gptEFISystem || id == gptBIOSBoot)
		raw.Active = system.Bool(false)
		raw.Primary = system.Bool(true)

	case "dos":
		code, err := strconv.ParseInt(typ, 0, 64)
		if err != nil {
			raw.Type = system.String("MBR: " + typ)
			return
		}
		name, known := mbrTypes[code]
		if !known {
			name = fmt.Sprintf("0x%02x", code)
		}
		raw.Type = system.String("MBR: " + name)

		active := false
		if flags := udev.getInt("ID_PART_ENTRY_FLAGS"); flags != nil {
			active = *flags&0x80 != 0
		}
		raw.Active = system.Bool(active)
		raw.Bootable = system.Bool(active)
		if n := udev.getInt("ID_PART_ENTRY_NUMBER"); n != nil {
			raw.Primary = system.Bool(*n <= 4)
		}
	}
}
