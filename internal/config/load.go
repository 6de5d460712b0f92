package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/timejump/internal/assets"
)

// Load loads configuration with priority: defaults < file < flags, and
// rejects the result if Validate fails.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TimeJump")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TimeJump")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "timejump")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "timejump")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Relative paths set by the file are taken relative to its directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	// Decode again into an empty config to see which paths the file sets.
	var set Config
	if err := yaml.Unmarshal(data, &set); err != nil {
		return err
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return err
	}
	resolvePaths(cfg, &set, dir)
	return nil
}

// resolvePaths anchors the relative local paths in set at dir and stores
// them in cfg. Remote heightmaps and resource names inside the resources
// directory are left alone.
func resolvePaths(cfg, set *Config, dir string) {
	anchor := func(dst *string, v string) {
		if v == "" || filepath.IsAbs(v) {
			return
		}
		*dst = filepath.Join(dir, v)
	}

	if !assets.IsRemote(set.Terrain.Heightmap) {
		anchor(&cfg.Terrain.Heightmap, set.Terrain.Heightmap)
	}
	anchor(&cfg.Assets.ResourcesDir, set.Assets.ResourcesDir)
	anchor(&cfg.Assets.CacheDir, set.Assets.CacheDir)
	anchor(&cfg.Bake.OutDir, set.Bake.OutDir)
	anchor(&cfg.Logging.LogFile, set.Logging.LogFile)
}
