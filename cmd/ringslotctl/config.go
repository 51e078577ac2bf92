package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds the layout defaults ringslotctl applies when none of the
// matching flags were set explicitly, the same precedence the teacher's
// root config.go uses for .tk.json: flags beat the config file, the config
// file beats DefaultConfig.
type Config struct {
	Stride       uint32 `json:"stride,omitempty"`
	LittleEndian bool   `json:"little_endian,omitempty"` //nolint:tagliatelle // snake_case for config file
	FullScan     bool   `json:"full_scan,omitempty"`     //nolint:tagliatelle // snake_case for config file
}

// ConfigFileName is the default config file name, read from the current
// directory if present.
const ConfigFileName = ".ringslotctl.json"

// DefaultConfig returns the baseline ringslotctl uses when no config file
// exists and no flags override it.
func DefaultConfig() Config {
	return Config{
		Stride:       32,
		LittleEndian: false,
		FullScan:     false,
	}
}

// LoadConfig reads configPath if non-empty, otherwise ConfigFileName in
// workDir if it exists. A missing default file is not an error; a missing
// explicit path is.
func LoadConfig(workDir, configPath string) (Config, string, error) {
	cfg := DefaultConfig()

	explicit := configPath != ""

	path := configPath
	if !explicit {
		path = filepath.Join(workDir, ConfigFileName)
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-controlled path, same as the teacher's config loader
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, "", nil
		}

		return Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	fileCfg := DefaultConfig()

	if err := json.Unmarshal(standardized, &fileCfg); err != nil {
		return Config{}, "", fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return fileCfg, path, nil
}
