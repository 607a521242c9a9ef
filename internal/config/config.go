package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sigreer/diskinfo/internal/options"
	"github.com/sigreer/diskinfo/internal/units"
)

// Orientation values
const (
	OrientationDisk    = "disk"
	OrientationLogical = "logical"
)

// Config holds the defaults the command line can override
type Config struct {
	DiskOptions        string `yaml:"disk_options,omitempty"`
	PartitionOptions   string `yaml:"partition_options,omitempty"`
	LogicalDiskOptions string `yaml:"logical_disk_options,omitempty"`
	// Orientation is "disk" (default) or "logical"
	Orientation    string `yaml:"orientation,omitempty"`
	PartitionsOnly bool   `yaml:"partitions_only,omitempty"`
	SystemName     string `yaml:"system_name,omitempty"`
	// Output is "text" (default), "json" or "yaml"
	Output string `yaml:"output,omitempty"`
	// Units is decimal (default), binary, metric or a fixed unit like GiB
	Units string `yaml:"units,omitempty"`

	// Path is the file the config was read from, empty for built-in defaults
	Path string `yaml:"-"`
}

var defaultConfig = Config{
	DiskOptions:        options.DefaultDiskOptions,
	PartitionOptions:   options.DefaultPartitionOptions,
	LogicalDiskOptions: options.DefaultLogicalDiskOptions,
	Orientation:        OrientationDisk,
	Output:             "text",
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// Candidates lists the files Load tries when no path is given, in order
func Candidates() []string {
	return []string{
		"/etc/diskinfo/config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/diskinfo/config.yaml"),
		"config.yaml",
	}
}

// Load reads the config at path, or the first existing candidate when path
// is empty. With no file at all the defaults are returned. A file that exists
// but cannot be read or parsed is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, c := range Candidates() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path

	// Apply defaults for missing values
	if cfg.DiskOptions == "" {
		cfg.DiskOptions = defaultConfig.DiskOptions
	}
	if cfg.PartitionOptions == "" {
		cfg.PartitionOptions = defaultConfig.PartitionOptions
	}
	if cfg.LogicalDiskOptions == "" {
		cfg.LogicalDiskOptions = defaultConfig.LogicalDiskOptions
	}
	if cfg.Orientation == "" {
		cfg.Orientation = defaultConfig.Orientation
	}
	if cfg.Output == "" {
		cfg.Output = defaultConfig.Output
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Orientation {
	case OrientationDisk, OrientationLogical:
	default:
		return fmt.Errorf("orientation must be %q or %q, got %q", OrientationDisk, OrientationLogical, c.Orientation)
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output must be text, json or yaml, got %q", c.Output)
	}
	if _, err := units.ParseFormatter(c.Units); err != nil {
		return fmt.Errorf("units: %w", err)
	}
	return nil
}

// Input converts the config into option parser input
func (c *Config) Input() options.Input {
	return options.Input{
		Disk:           c.DiskOptions,
		Partition:      c.PartitionOptions,
		LogicalDisk:    c.LogicalDiskOptions,
		Logical:        c.Orientation == OrientationLogical,
		PartitionsOnly: c.PartitionsOnly,
		SystemName:     c.SystemName,
		Units:          c.Units,
	}
}
