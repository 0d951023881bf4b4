// Package config holds the server's flag-and-YAML-overlay configuration,
// the same two-stage shape tempo's cmd/tempo/main.go loadConfig uses:
// flag.FlagSet registers defaults, an optional YAML file overlays them,
// and flags passed after the file win last.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server's top-level configuration.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	RegistryPath  string `yaml:"registry_path"`
	DataFileParts uint8  `yaml:"data_file_parts"`
	CacheCapacity int    `yaml:"cache_capacity"`
	LogLevel      string `yaml:"log_level"`
}

// dataFileParts adapts Config.DataFileParts (uint8, flag has no
// Uint8Var) onto flag.Value.
type dataFileParts struct{ c *Config }

func (d dataFileParts) String() string {
	if d.c == nil {
		return "4"
	}
	return fmt.Sprintf("%d", d.c.DataFileParts)
}

func (d dataFileParts) Set(s string) error {
	var v uint64
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return err
	}
	if v == 0 || v > 255 {
		return fmt.Errorf("data-file-parts must be in [1,255]")
	}
	d.c.DataFileParts = uint8(v)
	return nil
}

// RegisterFlags installs Config's flags onto fs with their defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DataDir, "data-dir", "./data", "root directory for collection data files")
	fs.StringVar(&c.RegistryPath, "registry-path", "./data/registry.db", "path to the collection registry database")
	c.DataFileParts = 4
	fs.Var(dataFileParts{c}, "data-file-parts", "number of data-file partitions per inverted index")
	fs.IntVar(&c.CacheCapacity, "cache-capacity", 10000, "entries held by the node cache")
	fs.StringVar(&c.LogLevel, "log-level", "info", "debug|info|warn|error")
}

// Validate returns human-readable warnings for implausible settings,
// mirroring tempo's configIsValid pattern of logging warnings rather than
// failing outright.
func (c *Config) Validate() []string {
	var warnings []string
	if c.DataFileParts == 0 {
		warnings = append(warnings, "data-file-parts is 0; defaulting to 1")
		c.DataFileParts = 1
	}
	if c.CacheCapacity <= 0 {
		warnings = append(warnings, "cache-capacity must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unrecognized log-level %q, defaulting to info", c.LogLevel))
		c.LogLevel = "info"
	}
	return warnings
}

// Load builds a Config from CLI args, optionally overlaid by a YAML file
// named by -config-file, with flags parsed a second time afterward so
// explicit CLI flags still win over the file.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	configFile := fs.String("config-file", "", "YAML config file to overlay onto defaults")

	c := &Config{}
	c.RegisterFlags(fs)

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	if *configFile != "" {
		b, err := os.ReadFile(*configFile)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, err
		}
		// re-parse so CLI flags still win over the file they overlay
		if err := fs.Parse(args[1:]); err != nil {
			return nil, err
		}
	}

	return c, nil
}
