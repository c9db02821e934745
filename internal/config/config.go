// Package config handles worldtool configuration loading and management.
package config

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

// Config holds all worldtool settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds the asset sources searched for map files. Later entries
// take priority; directories are searched after archives.
type DataConfig struct {
	GRFPaths []string `yaml:"grf_paths"` // Paths to GRF archives
	Dirs     []string `yaml:"dirs"`      // Extracted data directories
}

// WindowConfig holds viewer window settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig holds record layout and shading settings.
type RenderConfig struct {
	Rules        shadertypes.Rules `yaml:"rules"`
	LightMap     bool              `yaml:"lightmap"`
	WaterOpacity float32           `yaml:"water_opacity"`
	Fog          FogConfig         `yaml:"fog"`
	Camera       CameraConfig      `yaml:"camera"`
}

// FogConfig holds distance fog settings.
type FogConfig struct {
	Enabled bool       `yaml:"enabled"`
	Near    float32    `yaml:"near"`
	Far     float32    `yaml:"far"`
	Color   [3]float32 `yaml:"color"`
}

// CameraConfig holds the viewer camera lens.
type CameraConfig struct {
	FOV  float32 `yaml:"fov"` // degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			Rules:        shadertypes.Std140,
			LightMap:     true,
			WaterOpacity: 0.6,
			Fog: FogConfig{
				Enabled: false,
				Near:    200,
				Far:     1500,
				Color:   [3]float32{0.85, 0.9, 1},
			},
			Camera: CameraConfig{
				FOV:  45,
				Near: 1,
				Far:  5000,
			},
		},
		Data: DataConfig{
			GRFPaths: []string{"data.grf"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// LayoutRules returns the configured layout rule set. YAML and flags only
// produce known sets, but the field can be assigned any value in code.
func (c *Config) LayoutRules() (shadertypes.Rules, error) {
	if !slices.Contains(shadertypes.AllRules, c.Render.Rules) {
		return 0, fmt.Errorf("%w: %s", shadertypes.ErrUnknownRules, c.Render.Rules)
	}
	return c.Render.Rules, nil
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var err error
	if _, rerr := c.LayoutRules(); rerr != nil {
		err = multierr.Append(err, rerr)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Render.WaterOpacity < 0 || c.Render.WaterOpacity > 1 {
		err = multierr.Append(err, fmt.Errorf("water_opacity %g outside [0, 1]", c.Render.WaterOpacity))
	}
	if c.Render.Fog.Enabled && c.Render.Fog.Far <= c.Render.Fog.Near {
		err = multierr.Append(err, fmt.Errorf("fog far %g must exceed near %g", c.Render.Fog.Far, c.Render.Fog.Near))
	}
	if c.Render.Camera.FOV <= 0 || c.Render.Camera.FOV >= 180 {
		err = multierr.Append(err, fmt.Errorf("camera fov %g outside (0, 180)", c.Render.Camera.FOV))
	}
	if c.Render.Camera.Near <= 0 || c.Render.Camera.Far <= c.Render.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera clip range %g..%g is invalid", c.Render.Camera.Near, c.Render.Camera.Far))
	}
	return err
}
