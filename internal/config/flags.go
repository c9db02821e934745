package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagRules      = flag.String("rules", "", "Layout rules: packed, std140 or simd")
	flagGRF        = flag.String("grf", "", "Additional GRF archive to read maps from")
	flagData       = flag.String("data", "", "Additional extracted data directory")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRules != "" {
		rules, err := shadertypes.ParseRules(*flagRules)
		if err != nil {
			return fmt.Errorf("-rules: %w", err)
		}
		cfg.Render.Rules = rules
	}
	if *flagGRF != "" {
		cfg.Data.GRFPaths = append(cfg.Data.GRFPaths, *flagGRF)
	}
	if *flagData != "" {
		cfg.Data.Dirs = append(cfg.Data.Dirs, *flagData)
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	return nil
}
