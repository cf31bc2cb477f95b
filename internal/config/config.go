package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional ferry configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
}

// DefaultsConfig holds persistent flag defaults. Pointer fields
// distinguish "unset" from an explicit value, so command-line flags
// always win over the file.
type DefaultsConfig struct {
	Overwrite  *string  `toml:"overwrite"`
	Verify     *bool    `toml:"verify"`
	Hash       *string  `toml:"hash"`
	BWLimit    *string  `toml:"bwlimit"`
	Exclude    []string `toml:"exclude"`
	MinSize    *string  `toml:"min-size"`
	MaxSize    *string  `toml:"max-size"`
	NoProgress *bool    `toml:"no-progress"`
	NoColor    *bool    `toml:"no-color"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ferry", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}

	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
