package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sigreer/diskinfo/internal/config"
	"github.com/sigreer/diskinfo/internal/logger"
	"github.com/sigreer/diskinfo/internal/options"
	"github.com/sigreer/diskinfo/internal/render"
	"github.com/sigreer/diskinfo/internal/system"
	"github.com/sigreer/diskinfo/internal/system/sources"
	"github.com/sigreer/diskinfo/internal/units"
	"github.com/sigreer/diskinfo/internal/version"
)

// newBackend is swapped out in tests
var newBackend = sources.ForPlatform

type rootFlags struct {
	configFile string
	platform   string
	verbosity  int

	disk           string
	partition      string
	logicalDisk    string
	logical        bool
	partitionsOnly bool
	name           string
	output         string
	units          string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "diskinfo",
		Short: "Show how disks, partitions and filesystems relate",
		Long: `diskinfo enumerates the physical disks, partitions and mounted
filesystems of this machine and prints them as a tree.

By default the tree is rooted at the physical disks. Use --logical to root it
at the mounted filesystems instead, and --partitions to start at partitions.

Option strings pick the properties shown for each kind of entity. Each letter
selects one property, in the order given:

  Physical Disk (-d)  default "Piptns"
    P partitions              i Disk Number      d Device ID
    p Path                    t Media            n Serial
    m Model                   c Sectors          b Bytes/Sector
    h Heads                   C Cylinders        f Firmware
    I Interface               M Media Loaded     a Status

  Partition (-P)  default "LDdtse"
    L logical disks           D physical disk    b Block Size
    B Bootable                o Active           x Description
    p Path                    d Device ID        i Disk Number
    N Partition Number        c Blocks           r Primary
    e Offset                  t Type

  Logical Disk (-L)  default "PVfF"
    P partitions              x Description      d Device ID
    t Type                    f Filesystem       F Free Space
    U Max Component Length    v Name             M Mounted
    p Path                    V Label            n Serial

Every kind also takes s (Size, human readable) and S (Size in bytes).
Human readable sizes and Free Space use --units.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Configure(cmd.ErrOrStderr(), f.verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(cmd.Context(), cmd.Flags(), f, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.disk, "disk", "d", options.DefaultDiskOptions, "physical disk option string")
	flags.StringVarP(&f.partition, "partition", "P", options.DefaultPartitionOptions, "partition option string")
	flags.StringVarP(&f.logicalDisk, "logical-disk", "L", options.DefaultLogicalDiskOptions, "logical disk option string")
	flags.BoolVarP(&f.logical, "logical", "l", false, "root the tree at logical disks")
	flags.BoolVarP(&f.partitionsOnly, "partitions", "p", false, "root the tree at partitions")
	flags.StringVarP(&f.name, "name", "n", "", "system name shown at the root (default: hostname)")
	flags.StringVarP(&f.output, "output", "o", render.FormatText, "output format: text, json or yaml")
	flags.StringVar(&f.units, "units", "decimal", "size units: decimal, binary, metric or a fixed unit such as GB or MiB")

	cmd.PersistentFlags().StringVar(&f.configFile, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&f.platform, "platform", sources.Current(), "platform backend: linux or windows")
	cmd.PersistentFlags().CountVarP(&f.verbosity, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// runInventory merges config and flags, enumerates the machine and renders
// the tree. Nothing is written to w unless enumeration succeeds.
func runInventory(ctx context.Context, flags *pflag.FlagSet, f *rootFlags, w io.Writer) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		log.Debug().Str("path", cfg.Path).Msg("loaded config")
	}

	in := cfg.Input()
	format := cfg.Output
	if flags.Changed("disk") {
		in.Disk = f.disk
	}
	if flags.Changed("partition") {
		in.Partition = f.partition
	}
	if flags.Changed("logical-disk") {
		in.LogicalDisk = f.logicalDisk
	}
	if flags.Changed("logical") {
		in.Logical = f.logical
	}
	if flags.Changed("partitions") {
		in.PartitionsOnly = f.partitionsOnly
	}
	if flags.Changed("name") {
		in.SystemName = f.name
	}
	if flags.Changed("output") {
		format = f.output
	}
	if flags.Changed("units") {
		if _, err := units.ParseFormatter(f.units); err != nil {
			return fmt.Errorf("--units: %w", err)
		}
		in.Units = f.units
	}

	opts := options.Parse(in)

	backend, err := newBackend(ctx, f.platform)
	if err != nil {
		return err
	}

	sys, err := system.Build(opts.SystemName, backend)
	if err != nil {
		return err
	}
	log.Debug().
		Str("mode", opts.Mode().String()).
		Int("disks", len(sys.PhysicalDisks())).
		Int("partitions", len(sys.Partitions())).
		Int("logical_disks", len(sys.LogicalDisks())).
		Msg("enumerated")

	return render.Write(w, format, sys, opts)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
