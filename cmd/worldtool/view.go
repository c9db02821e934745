package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-world/internal/assets"
	"github.com/Faultbox/midgard-world/internal/config"
	"github.com/Faultbox/midgard-world/internal/engine/input"
	"github.com/Faultbox/midgard-world/internal/engine/scene"
	"github.com/Faultbox/midgard-world/internal/engine/window"
	"github.com/Faultbox/midgard-world/internal/logger"
	"github.com/Faultbox/midgard-world/pkg/formats"
)

// openAssets registers the configured archives and directories. Sources
// that cannot be opened are skipped with a warning.
func openAssets(cfg *config.Config) *assets.Manager {
	m := assets.NewManager()
	for _, path := range cfg.Data.GRFPaths {
		if err := m.AddArchive(path); err != nil {
			logger.Warn("skipping GRF archive", zap.String("path", path), zap.Error(err))
		}
	}
	for _, dir := range cfg.Data.Dirs {
		if err := m.AddDir(dir); err != nil {
			logger.Warn("skipping data directory", zap.String("path", dir), zap.Error(err))
		}
	}
	return m
}

// loadMap reads the GND and RSW of a map. A missing RSW is not fatal.
func loadMap(m *assets.Manager, name string) (*formats.GND, *formats.RSW, error) {
	gndPath, rswPath := assets.MapPaths(name)
	data, err := m.Load(gndPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading map %s: %w", name, err)
	}
	gnd, err := formats.ParseGND(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", gndPath, err)
	}

	data, err = m.Load(rswPath)
	if errors.Is(err, assets.ErrNotFound) {
		logger.Warn("map has no RSW, using default light", zap.String("path", rswPath))
		return gnd, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", rswPath, err)
	}
	rsw, err := formats.ParseRSW(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", rswPath, err)
	}
	return gnd, rsw, nil
}

func runView(out io.Writer, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	name := args[0]

	data := openAssets(cfg)
	defer data.Close()
	gnd, rsw, err := loadMap(data, name)
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{
		Title:      "worldtool - " + name,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	sc, err := scene.New(scene.Config{
		Fog:          fogFromConfig(cfg),
		LightMap:     cfg.Render.LightMap,
		WaterOpacity: cfg.Render.WaterOpacity,
	})
	if err != nil {
		return err
	}
	defer sc.Destroy()
	sc.LoadMap(gnd, rsw, data)

	cam := cameraFromConfig(cfg)
	bounds := sc.Bounds()
	cam.FitToBounds(bounds.Min, bounds.Max)
	// orbit around the ground surface rather than the middle of the box
	center := bounds.Center()
	cam.Center = mgl32.Vec3{center[0], sc.HeightAt(center[0], center[2]), center[2]}

	in := input.New()
	frames, last := 0, time.Now()
	for {
		state := in.Poll()
		if state.Quit {
			break
		}
		cam.HandleDrag(state.DragX, state.DragY)
		if state.Wheel != 0 {
			cam.HandleZoom(state.Wheel)
		}

		width, height := win.Size()
		sc.Render(cam, width, height)
		win.SwapBuffers()

		frames++
		if elapsed := time.Since(last); elapsed >= time.Second {
			win.SetTitle(fmt.Sprintf("worldtool - %s (%.0f fps)", name, float64(frames)/elapsed.Seconds()))
			frames, last = 0, time.Now()
		}
	}

	logger.Info("viewer closed", zap.String("map", name))
	return nil
}
