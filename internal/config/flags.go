package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagEngine    = flag.String("engine", "", "Target engine: unity, ue")
	flagOut       = flag.String("out", "", "Output directory")
	flagTexDir    = flag.String("texdir", "", "Texture directory relative to output")
	flagMtlDir    = flag.String("mtldir", "", "Material directory relative to output")
	flagMaxFacet  = flag.Int("maxfacet", 0, "Split OBJ after this many facets (Unity)")
	flagRecenter  = flag.Bool("recenter", false, "Move the first object to the origin")
	flagNoPhantom = flag.Bool("no-phantom", false, "Skip non-collider facets")
	flagNoTexture = flag.Bool("no-texture", false, "Do not export textures")
	flagTexLimit  = flag.Int("texlimit", 0, "Max texture resolution")
)

// ParseFlags parses command-line flags.
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the path given via -config.
func ConfigPath() string {
	return *flagConfig
}

// ApplyFlags overrides cfg with the flags that were set.
func ApplyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagEngine != "" {
		cfg.Output.Engine = *flagEngine
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagTexDir != "" {
		cfg.Output.TextureDir = *flagTexDir
	}
	if *flagMtlDir != "" {
		cfg.Output.MaterialDir = *flagMtlDir
	}
	if *flagMaxFacet > 0 {
		cfg.Output.MaxFacet = *flagMaxFacet
	}
	if *flagRecenter {
		cfg.Output.Recenter = true
	}
	if *flagNoPhantom {
		cfg.Output.Phantom = false
	}
	if *flagNoTexture {
		cfg.Texture.Export = false
	}
	if *flagTexLimit > 0 {
		cfg.Texture.ResolutionLimit = *flagTexLimit
	}
}
