// Package config loads optional user configuration from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/svgpress/config.toml (falling back to
// ~/.config/svgpress/config.toml). A missing file is not an error - compiled
// defaults apply. Command-line flags always override configured values.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// appName is the directory name under the XDG config home.
const appName = "svgpress"

// Config holds user-level defaults for the CLI and server.
type Config struct {
	Defaults Defaults `toml:"defaults"`
	Cache    CacheCfg `toml:"cache"`
	Serve    ServeCfg `toml:"serve"`
}

// Defaults are fallback rendering options applied when flags are unset.
type Defaults struct {
	DPI        int    `toml:"dpi"`
	Background string `toml:"background"`
	Raster     string `toml:"raster"`
}

// CacheCfg controls artifact caching.
type CacheCfg struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
}

// ServeCfg holds HTTP server settings.
type ServeCfg struct {
	Addr  string `toml:"addr"`
	Redis string `toml:"redis"`
}

// Load reads the config file if present. Absent file yields the zero Config.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

// LoadFile reads a specific config file. Absent file yields the zero Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Path returns the config file location using the XDG convention.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
