// Package config handles demo configuration loading and management.
package config

import "github.com/Faultbox/timejump/internal/logger"

// Config holds all demo settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Trees    TreesConfig    `yaml:"trees"`
	Camera   CameraConfig   `yaml:"camera"`
	Sky      SkyConfig      `yaml:"sky"`
	TimeJump TimeJumpConfig `yaml:"time_jump"`
	Assets   AssetsConfig   `yaml:"assets"`
	Bake     BakeConfig     `yaml:"bake"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds the viewport size.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TerrainConfig holds heightmap and scale settings.
type TerrainConfig struct {
	Heightmap   string  `yaml:"heightmap"`    // Local path or go-getter URL
	Texture     string  `yaml:"texture"`      // Default ground texture
	DryTexture  string  `yaml:"dry_texture"`  // Texture after a time jump
	HeightScale float32 `yaml:"height_scale"` // World height of a white pixel
	Size        float32 `yaml:"size"`         // Edge length of the footprint
	Workers     int     `yaml:"workers"`      // Mesh build goroutines, 0 = sequential
}

// Range is a closed float interval.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// TreesConfig holds scattering settings.
type TreesConfig struct {
	Model string `yaml:"model"`
	Count int    `yaml:"count"`
	X     Range  `yaml:"x"`
	Z     Range  `yaml:"z"`
	Scale Range  `yaml:"scale"`
	Seed  uint64 `yaml:"seed"`
}

// CameraConfig holds camera settings.
type CameraConfig struct {
	Mode            string  `yaml:"mode"` // "auto" or "free"
	FOV             float32 `yaml:"fov"`
	Speed           float32 `yaml:"speed"`
	Sensitivity     float32 `yaml:"sensitivity"`
	OrbitRadius     float32 `yaml:"orbit_radius"`
	OrbitSpeed      float32 `yaml:"orbit_speed"`
	OrbitHeight     float32 `yaml:"orbit_height"`
	GroundClearance float32 `yaml:"ground_clearance"`
}

// SkyConfig holds day/night settings.
type SkyConfig struct {
	DayLength float32 `yaml:"day_length"` // Seconds
	Skybox    string  `yaml:"skybox"`
	DrySkybox string  `yaml:"dry_skybox"`
}

// TimeJumpConfig holds transition settings.
type TimeJumpConfig struct {
	Speed       float32 `yaml:"speed"`
	SkipSeconds float32 `yaml:"skip_seconds"`
}

// AssetsConfig holds resource lookup settings.
type AssetsConfig struct {
	ResourcesDir string `yaml:"resources_dir"` // Empty = search upward from cwd
	CacheDir     string `yaml:"cache_dir"`     // Downloaded heightmaps
}

// BakeConfig holds headless bake output settings.
type BakeConfig struct {
	OutDir   string  `yaml:"out_dir"`
	Frames   int     `yaml:"frames"`
	FrameDt  float32 `yaml:"frame_dt"`
	JumpAt   int     `yaml:"jump_at"` // Frame that toggles the time jump, -1 = never
	Previews int     `yaml:"previews"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
	JSON       bool   `yaml:"json"`
}

// FileConfig converts the logging section to rotating file settings.
func (l LoggingConfig) FileConfig() logger.FileConfig {
	if l.LogFile == "" {
		return logger.FileConfig{}
	}
	return logger.FileConfig{
		Path:       l.LogFile,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
		JSON:       l.JSON,
	}
}

// Default returns a Config with the demo's default values.
func Default() *Config {
	file := logger.DefaultFileConfig("")
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
		},
		Terrain: TerrainConfig{
			Heightmap:   "resources/textures/heightmap.png",
			Texture:     "resources/textures/grass.jpg",
			DryTexture:  "resources/textures/sand.jpg",
			HeightScale: 25,
			Size:        400,
			Workers:     0,
		},
		Trees: TreesConfig{
			Model: "resources/models/tree.obj",
			Count: 100,
			X:     Range{Min: -90, Max: 90},
			Z:     Range{Min: -90, Max: 90},
			Scale: Range{Min: 0.4, Max: 1.0},
			Seed:  1,
		},
		Camera: CameraConfig{
			Mode:            "auto",
			FOV:             45,
			Speed:           25,
			Sensitivity:     0.1,
			OrbitRadius:     120,
			OrbitSpeed:      0.08,
			OrbitHeight:     40,
			GroundClearance: 2,
		},
		Sky: SkyConfig{
			DayLength: 180,
			Skybox:    "resources/skybox",
			DrySkybox: "resources/skybox_dead",
		},
		TimeJump: TimeJumpConfig{
			Speed:       6,
			SkipSeconds: 30,
		},
		Assets: AssetsConfig{
			ResourcesDir: "",
			CacheDir:     ".cache/timejump",
		},
		Bake: BakeConfig{
			OutDir:   "out",
			Frames:   600,
			FrameDt:  1.0 / 60,
			JumpAt:   120,
			Previews: 4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAgeDays: file.MaxAgeDays,
			Compress:   file.Compress,
		},
	}
}
