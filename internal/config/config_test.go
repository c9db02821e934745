package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test render defaults
	rules, err := cfg.LayoutRules()
	if err != nil || rules != shadertypes.Std140 {
		t.Errorf("expected std140 rules, got %v (%v)", rules, err)
	}
	if !cfg.Render.LightMap {
		t.Error("expected lightmap to be enabled by default")
	}
	if cfg.Render.Fog.Enabled {
		t.Error("expected fog to be disabled by default")
	}
	if cfg.Render.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Render.Camera.FOV)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

render:
  rules: simd
  lightmap: false
  water_opacity: 0.8
  fog:
    enabled: true
    near: 100
    far: 900
    color: [0.5, 0.5, 0.6]
  camera:
    fov: 60

data:
  grf_paths: ["rdata.grf", "data.grf"]
  dirs: ["./data"]

logging:
  level: "debug"
  log_file: "worldtool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if rules, _ := cfg.LayoutRules(); rules != shadertypes.SIMD {
		t.Errorf("expected simd rules, got %v", rules)
	}
	if cfg.Render.LightMap {
		t.Error("expected lightmap to be false")
	}
	if cfg.Render.WaterOpacity != 0.8 {
		t.Errorf("expected water opacity 0.8, got %f", cfg.Render.WaterOpacity)
	}
	if !cfg.Render.Fog.Enabled || cfg.Render.Fog.Near != 100 || cfg.Render.Fog.Far != 900 {
		t.Errorf("unexpected fog: %+v", cfg.Render.Fog)
	}
	if cfg.Render.Fog.Color != [3]float32{0.5, 0.5, 0.6} {
		t.Errorf("unexpected fog color: %v", cfg.Render.Fog.Color)
	}
	if cfg.Render.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Render.Camera.FOV)
	}
	// unset keys keep their defaults
	if cfg.Render.Camera.Far != 5000 {
		t.Errorf("expected default camera far 5000, got %f", cfg.Render.Camera.Far)
	}

	if len(cfg.Data.GRFPaths) != 2 || cfg.Data.GRFPaths[0] != "rdata.grf" {
		t.Errorf("unexpected grf paths: %v", cfg.Data.GRFPaths)
	}
	if len(cfg.Data.Dirs) != 1 || cfg.Data.Dirs[0] != "./data" {
		t.Errorf("unexpected data dirs: %v", cfg.Data.Dirs)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "worldtool.log" {
		t.Errorf("expected log file 'worldtool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  water_opacty: 0.2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil || !strings.Contains(err.Error(), "water_opacty") {
		t.Errorf("expected misspelled key to be reported, got %v", err)
	}
	if cfg.Render.WaterOpacity != 0.6 {
		t.Errorf("expected default water opacity to remain, got %f", cfg.Render.WaterOpacity)
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err != nil {
		t.Errorf("expected empty file to keep defaults, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown rules", func(c *Config) { c.Render.Rules = shadertypes.Rules(9) }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"opacity above one", func(c *Config) { c.Render.WaterOpacity = 1.5 }},
		{"inverted fog", func(c *Config) {
			c.Render.Fog.Enabled = true
			c.Render.Fog.Near, c.Render.Fog.Far = 500, 100
		}},
		{"flat fov", func(c *Config) { c.Render.Camera.FOV = 0 }},
		{"inverted clip range", func(c *Config) { c.Render.Camera.Far = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	// disabled fog is not checked
	cfg := Default()
	cfg.Render.Fog.Near, cfg.Render.Fog.Far = 500, 100
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected disabled fog to pass, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if dir := ConfigDir(); dir != filepath.Join(tmpDir, "midgard-world") {
		t.Errorf("expected config dir under XDG_CONFIG_HOME, got %s", dir)
	}
}

func TestResolveConfigPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvConfigPath, "")

	if path := resolveConfigPath(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	userConfig := filepath.Join(tmpDir, "midgard-world", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(userConfig), 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(userConfig, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := resolveConfigPath(); path != userConfig {
		t.Errorf("expected user config %s, got %s", userConfig, path)
	}

	if err := os.WriteFile(localConfigName, []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create local config: %v", err)
	}
	if path := resolveConfigPath(); path != localConfigName {
		t.Errorf("expected local %s to win over user config, got %s", localConfigName, path)
	}

	t.Setenv(EnvConfigPath, "from-env.yaml")
	if path := resolveConfigPath(); path != "from-env.yaml" {
		t.Errorf("expected $%s to win over search paths, got %s", EnvConfigPath, path)
	}

	*flagConfig = "from-flag.yaml"
	defer func() { *flagConfig = "" }()
	if path := resolveConfigPath(); path != "from-flag.yaml" {
		t.Errorf("expected -config to win over $%s, got %s", EnvConfigPath, path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "rules flag",
			setup: func() { *flagRules = "Metal" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Rules != shadertypes.SIMD {
					t.Errorf("expected simd rules, got %v", cfg.Render.Rules)
				}
			},
			teardown: func() { *flagRules = "" },
		},
		{
			name: "data flags",
			setup: func() {
				*flagGRF = "extra.grf"
				*flagData = "extracted"
			},
			verify: func(t *testing.T, cfg *Config) {
				last := cfg.Data.GRFPaths[len(cfg.Data.GRFPaths)-1]
				if last != "extra.grf" {
					t.Errorf("expected extra.grf appended, got %v", cfg.Data.GRFPaths)
				}
				if len(cfg.Data.Dirs) != 1 || cfg.Data.Dirs[0] != "extracted" {
					t.Errorf("expected extracted dir, got %v", cfg.Data.Dirs)
				}
			},
			teardown: func() {
				*flagGRF = ""
				*flagData = ""
			},
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags failed: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsBadRules(t *testing.T) {
	*flagRules = "std430"
	defer func() { *flagRules = "" }()

	cfg := Default()
	err := applyFlags(cfg)
	if !errors.Is(err, shadertypes.ErrUnknownRules) {
		t.Errorf("expected ErrUnknownRules, got %v", err)
	}
	if cfg.Render.Rules != shadertypes.Std140 {
		t.Errorf("expected rules to stay std140, got %v", cfg.Render.Rules)
	}

	if _, err := LoadFrom(""); !errors.Is(err, shadertypes.ErrUnknownRules) {
		t.Errorf("expected LoadFrom to fail on -rules std430, got %v", err)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  rules: std430\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, shadertypes.ErrUnknownRules) {
		t.Errorf("expected Load to reject unknown rules, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  rules: packed\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfigPath, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Render.Rules != shadertypes.Packed {
		t.Errorf("expected packed rules from $%s, got %v", EnvConfigPath, cfg.Render.Rules)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Rules = shadertypes.SIMD
	cfg.Data.Dirs = []string{"data"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Render.Rules != shadertypes.SIMD || len(loaded.Data.Dirs) != 1 {
		t.Errorf("saved config did not round trip: %+v", loaded)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.Contains(string(data), "rules: simd") {
		t.Errorf("expected rules saved by name, got:\n%s", data)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Window.Width = 1024
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join(tmpDir, "midgard-world", "config.yaml") {
		t.Errorf("unexpected save path %s", path)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("expected width 1024, got %d", loaded.Window.Width)
	}
}
