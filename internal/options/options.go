// Package options parses the compact per-entity option strings that select
// which properties are printed and how the device graph is walked.
package options

import (
	"github.com/rs/zerolog/log"

	"github.com/sigreer/diskinfo/internal/system"
	"github.com/sigreer/diskinfo/internal/units"
)

// Default option strings
const (
	DefaultDiskOptions        = "Piptns"
	DefaultPartitionOptions   = "LDdtse"
	DefaultLogicalDiskOptions = "PVfF"
)

// Size tokens shared by every entity kind. Whichever appears first decides
// how Size is printed.
const (
	sizeHuman = 's'
	sizeRaw   = 'S'
)

// Structural tokens
const (
	letterListPartitions   = 'P' // disk and logical disk strings
	letterListLogicalDisks = 'L' // partition string
	letterShowDisk         = 'D' // partition string
)

var diskLetters = map[rune]string{
	'i': system.KeyDiskNumber,
	'd': system.KeyDeviceID,
	'p': system.KeyPath,
	't': system.KeyMedia,
	'n': system.KeySerial,
	'm': system.KeyModel,
	'c': system.KeySectors,
	'b': system.KeyBytesPerSector,
	'h': system.KeyHeads,
	'C': system.KeyCylinders,
	'f': system.KeyFirmware,
	'I': system.KeyInterface,
	'M': system.KeyMediaLoaded,
	'a': system.KeyStatus,
}

var partitionLetters = map[rune]string{
	'b': system.KeyBlocksize,
	'B': system.KeyBootable,
	'o': system.KeyActive,
	'x': system.KeyDescription,
	'p': system.KeyPath,
	'd': system.KeyDeviceID,
	'i': system.KeyDiskNumber,
	'N': system.KeyPartitionNumber,
	'c': system.KeyBlocks,
	'r': system.KeyPrimary,
	'e': system.KeyOffset,
	't': system.KeyType,
}

var logicalDiskLetters = map[rune]string{
	'x': system.KeyDescription,
	'd': system.KeyDeviceID,
	't': system.KeyType,
	'f': system.KeyFilesystem,
	'F': system.KeyFreeSpace,
	'U': system.KeyMaxComponentLength,
	'v': system.KeyName,
	'M': system.KeyMounted,
	'p': system.KeyPath,
	'V': system.KeyLabel,
	'n': system.KeySerial,
}

// WalkMode is the traversal the renderer performs
type WalkMode int

const (
	WalkDisks WalkMode = iota
	WalkLogicalDisks
	WalkPartitionsFromDisks
	WalkPartitionsFromLogicalDisks
)

func (m WalkMode) String() string {
	switch m {
	case WalkDisks:
		return "disks"
	case WalkLogicalDisks:
		return "logical-disks"
	case WalkPartitionsFromDisks:
		return "partitions-from-disks"
	case WalkPartitionsFromLogicalDisks:
		return "partitions-from-logical-disks"
	}
	return "unknown"
}

// Input holds the raw option values as given on the command line
type Input struct {
	Disk           string
	Partition      string
	LogicalDisk    string
	Logical        bool
	PartitionsOnly bool
	SystemName     string
	// Units names the byte unit family or a fixed unit, see
	// units.ParseFormatter
	Units string
}

// DefaultInput returns the input used when nothing is configured
func DefaultInput() Input {
	return Input{
		Disk:        DefaultDiskOptions,
		Partition:   DefaultPartitionOptions,
		LogicalDisk: DefaultLogicalDiskOptions,
	}
}

// Selection is the parsed option string of one entity kind
type Selection struct {
	// Keys are the properties to print, in first-occurrence order
	Keys []string
	// HumanSize prints Size through the Units formatter. It is true unless
	// S appears before any s.
	HumanSize bool

	letters map[rune]bool
}

func (s Selection) has(letter rune) bool {
	return s.letters[letter]
}

// Options is the resolved rendering configuration
type Options struct {
	Disk        Selection
	Partition   Selection
	LogicalDisk Selection

	Logical        bool
	PartitionsOnly bool
	SystemName     string
	// Units renders human readable sizes and Free Space
	Units units.Formatter
}

// Parse turns the raw option strings into Options. Unknown letters are
// ignored, as is an unknown unit name.
func Parse(in Input) Options {
	formatter, err := units.ParseFormatter(in.Units)
	if err != nil {
		log.Debug().Err(err).Msg("using decimal units")
	}
	return Options{
		Disk:           parseSelection(system.KindPhysicalDisk, in.Disk, diskLetters, letterListPartitions),
		Partition:      parseSelection(system.KindPartition, in.Partition, partitionLetters, letterListLogicalDisks, letterShowDisk),
		LogicalDisk:    parseSelection(system.KindLogicalDisk, in.LogicalDisk, logicalDiskLetters, letterListPartitions),
		Logical:        in.Logical,
		PartitionsOnly: in.PartitionsOnly,
		SystemName:     in.SystemName,
		Units:          formatter,
	}
}

func parseSelection(kind, opts string, letters map[rune]string, structural ...rune) Selection {
	sel := Selection{HumanSize: true, letters: make(map[rune]bool)}
	seen := make(map[string]bool)
	sizeDecided := false

	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			sel.Keys = append(sel.Keys, key)
		}
	}

	for _, r := range opts {
		switch {
		case r == sizeHuman || r == sizeRaw:
			if !sizeDecided {
				sel.HumanSize = r == sizeHuman
				sizeDecided = true
			}
			add(system.KeySize)
		case letters[r] != "":
			add(letters[r])
		case containsRune(structural, r):
			sel.letters[r] = true
		default:
			log.Trace().Str("kind", kind).Str("letter", string(r)).Msg("ignoring unknown option letter")
		}
	}
	return sel
}

func containsRune(runes []rune, r rune) bool {
	for _, c := range runes {
		if c == r {
			return true
		}
	}
	return false
}

// ListPartitions reports whether partitions are listed under the outer
// layer. Partitions-only mode always lists them.
func (o Options) ListPartitions() bool {
	if o.PartitionsOnly {
		return true
	}
	if o.Logical {
		return o.LogicalDisk.has(letterListPartitions)
	}
	return o.Disk.has(letterListPartitions)
}

// PartitionChildren reports whether the other side is shown under each
// partition: its logical disks when disk-first, its owning disk when
// logical-disk-first.
func (o Options) PartitionChildren() bool {
	if o.Logical {
		return o.Partition.has(letterShowDisk)
	}
	return o.Partition.has(letterListLogicalDisks)
}

// Mode returns the walk fixed by orientation and partitions-only mode
func (o Options) Mode() WalkMode {
	switch {
	case o.PartitionsOnly && o.Logical:
		return WalkPartitionsFromLogicalDisks
	case o.PartitionsOnly:
		return WalkPartitionsFromDisks
	case o.Logical:
		return WalkLogicalDisks
	default:
		return WalkDisks
	}
}

// Selection returns the selection for an entity kind
func (o Options) Selection(kind string) Selection {
	switch kind {
	case system.KindPhysicalDisk:
		return o.Disk
	case system.KindPartition:
		return o.Partition
	default:
		return o.LogicalDisk
	}
}
