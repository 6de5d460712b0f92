package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagHeightmap = flag.String("heightmap", "", "Heightmap path or URL")
	flagSeed      = flag.Uint64("seed", 0, "Tree placement seed")
	flagTrees     = flag.Int("trees", -1, "Number of tree placement attempts")
	flagOut       = flag.String("out", "", "Output directory")
	flagFrames    = flag.Int("frames", 0, "Frames to simulate")
	flagWorkers   = flag.Int("workers", 0, "Mesh build goroutines")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagHeightmap != "" {
		cfg.Terrain.Heightmap = *flagHeightmap
	}
	if *flagSeed != 0 {
		cfg.Trees.Seed = *flagSeed
	}
	if *flagTrees >= 0 {
		cfg.Trees.Count = *flagTrees
	}
	if *flagOut != "" {
		cfg.Bake.OutDir = *flagOut
	}
	if *flagFrames > 0 {
		cfg.Bake.Frames = *flagFrames
	}
	if *flagWorkers > 0 {
		cfg.Terrain.Workers = *flagWorkers
	}
}
