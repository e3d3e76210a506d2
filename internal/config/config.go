package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the application configuration
type Config struct {
	LogLevel   string `toml:"log_level"`
	Color      string `toml:"color"`
	CatalogDir string `toml:"catalog_dir"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Color:    ColorAuto,
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetCatalogLibraryPath returns the directory holding downloaded bulk exports
func (c *Config) GetCatalogLibraryPath() string {
	if c.CatalogDir != "" {
		return c.CatalogDir
	}
	return filepath.Join(GetXDGDataHome(), "pricerank", "catalogs")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "pricerank", "config.toml")
}

// LoadConfig loads the config file at path, or the default config file
// when path is empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	config := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	return nil
}

// InitConfig writes the default config to path, or to the default config
// file when path is empty. An existing file is left untouched.
func InitConfig(path string) (string, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(Default()); err != nil {
		return "", fmt.Errorf("error encoding config: %w", err)
	}

	return path, nil
}

// ResolveCatalogPath returns the path to a catalog export, either as given
// or inside the catalog library. Unknown names are returned unchanged so
// that reading them reports the original path.
func (c *Config) ResolveCatalogPath(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}

	if !filepath.IsAbs(name) {
		libraryPath := filepath.Join(c.GetCatalogLibraryPath(), name)
		if _, err := os.Stat(libraryPath); err == nil {
			return libraryPath
		}
	}

	return name
}
