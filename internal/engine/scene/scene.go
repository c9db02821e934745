package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-world/internal/engine/camera"
	"github.com/Faultbox/midgard-world/internal/engine/lighting"
	"github.com/Faultbox/midgard-world/internal/engine/terrain"
	"github.com/Faultbox/midgard-world/internal/logger"
	"github.com/Faultbox/midgard-world/pkg/formats"
)

// Config contains scene configuration options.
type Config struct {
	Fog          lighting.Fog
	LightMap     bool
	WaterOpacity float32
}

// Scene holds the ground and water of one map.
type Scene struct {
	config Config
	Env    Environment

	ground *GroundRenderer
	water  *WaterRenderer

	gnd      *formats.GND
	loadedAt time.Time

	log *zap.Logger
}

// New creates a scene. A GL context must be current.
func New(cfg Config) (*Scene, error) {
	s := &Scene{config: cfg, log: logger.Named("scene")}

	var err error
	s.ground, err = NewGroundRenderer(s.log)
	if err != nil {
		return nil, fmt.Errorf("creating ground renderer: %w", err)
	}
	s.water, err = NewWaterRenderer(s.log)
	if err != nil {
		s.ground.Destroy()
		return nil, fmt.Errorf("creating water renderer: %w", err)
	}
	s.Env = NewEnvironment(nil, cfg.Fog, cfg.LightMap, cfg.WaterOpacity)
	return s, nil
}

// LoadMap replaces the scene contents. rsw may be nil, in which case the
// default light and no water are used. Water is also skipped when the RSW
// has no water block.
func (s *Scene) LoadMap(gnd *formats.GND, rsw *formats.RSW, loader Loader) {
	s.gnd = gnd
	s.Env = NewEnvironment(rsw, s.config.Fog, s.config.LightMap, s.config.WaterOpacity)

	s.ground.Load(gnd, loader)
	if rsw != nil && rsw.HasWater {
		s.water.Load(gnd, s.Env.Water, loader)
	} else {
		s.water.clear()
	}
	s.loadedAt = time.Now()
}

// Bounds returns the bounding box of the loaded terrain.
func (s *Scene) Bounds() terrain.Bounds {
	return s.ground.Bounds
}

// HeightAt returns the terrain height below a world position, 0 before a
// map is loaded.
func (s *Scene) HeightAt(worldX, worldZ float32) float32 {
	if s.gnd == nil {
		return 0
	}
	return terrain.HeightAt(s.gnd, worldX, worldZ)
}

// Render draws one frame into the current framebuffer.
func (s *Scene) Render(cam *camera.OrbitCamera, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))

	sky := s.Env.Fog.Color
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(float32(width) / float32(height))
	elapsed := time.Since(s.loadedAt)

	s.ground.Draw(GroundUniforms(view, proj, s.Env))
	wv, wf := WaterUniforms(view, proj, s.Env, elapsed)
	s.water.Draw(wv, wf, elapsed)
}

// Destroy frees every GL object of the scene.
func (s *Scene) Destroy() {
	s.water.Destroy()
	s.ground.Destroy()
}
