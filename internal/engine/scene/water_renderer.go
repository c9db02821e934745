package scene

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-world/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-world/internal/engine/shader"
	"github.com/Faultbox/midgard-world/internal/engine/texture"
	"github.com/Faultbox/midgard-world/internal/engine/water"
	"github.com/Faultbox/midgard-world/pkg/formats"
	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

const waterTextureUnit uint32 = 0

// WaterRenderer draws the animated water surface of a map.
type WaterRenderer struct {
	program      uint32
	vertUniforms *shader.UniformBuffer
	fragUniforms *shader.UniformBuffer

	mesh      *shader.VertexBuffer
	frames    []uint32 // one texture per animation frame
	animSpeed int32

	log *zap.Logger
}

// NewWaterRenderer compiles the water program and allocates its uniform
// buffers.
func NewWaterRenderer(log *zap.Logger) (*WaterRenderer, error) {
	vert := shader.VertexSource(shaders.WaterVertexShader, &shadertypes.WaterVertex{}, &shadertypes.WaterVertexUniforms{})
	frag := shader.FragmentSource(shaders.WaterFragmentShader, &shadertypes.WaterFragmentUniforms{})
	program, err := shader.CompileProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}

	r := &WaterRenderer{
		program:      program,
		vertUniforms: shader.NewUniformBuffer(&shadertypes.WaterVertexUniforms{}, waterVertexBinding),
		fragUniforms: shader.NewUniformBuffer(&shadertypes.WaterFragmentUniforms{}, waterFragmentBinding),
		log:          log,
	}
	for _, ub := range []*shader.UniformBuffer{r.vertUniforms, r.fragUniforms} {
		if err := ub.Attach(program); err != nil {
			r.Destroy()
			return nil, fmt.Errorf("water shader: %w", err)
		}
	}

	shader.Use(program)
	shader.BindSampler(program, "waterTexture", int32(waterTextureUnit))
	return r, nil
}

// Load builds the water surface of gnd at the level given by settings and
// loads the animation frames. Maps without water draw nothing.
func (r *WaterRenderer) Load(gnd *formats.GND, settings water.Settings, loader Loader) {
	r.clear()

	mesh := water.BuildMesh(gnd, settings)
	if mesh.Empty() {
		r.log.Info("map has no water")
		return
	}
	r.mesh = shader.NewVertexBuffer(mesh.Vertices, mesh.Indices)
	r.animSpeed = settings.AnimSpeed

	for frame := 0; frame < water.FrameCount; frame++ {
		path := water.TexturePath(settings.Type, frame)
		data, err := loader.Load(path)
		if err != nil {
			r.log.Debug("water frame missing", zap.String("path", path))
			continue
		}
		img, err := texture.Decode(path, data)
		if err != nil {
			r.log.Warn("water frame unreadable", zap.String("path", path), zap.Error(err))
			continue
		}
		r.frames = append(r.frames, shader.UploadTexture(img, shader.TextureOptions{Repeat: true, Mipmaps: true}))
	}
	if len(r.frames) == 0 {
		r.frames = append(r.frames, shader.White())
	}

	r.log.Info("water loaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("frames", len(r.frames)),
		zap.Float32("level", settings.Level))
}

// Draw renders the water surface elapsed after the map was loaded. It
// should run after the ground since the surface is blended over it.
func (r *WaterRenderer) Draw(vert shadertypes.WaterVertexUniforms, frag shadertypes.WaterFragmentUniforms, elapsed time.Duration) {
	if r.mesh == nil {
		return
	}
	r.vertUniforms.Update(&vert)
	r.fragUniforms.Update(&frag)

	shader.Use(r.program)
	frame := water.AnimFrame(elapsed, r.animSpeed) % len(r.frames)
	shader.Bind(waterTextureUnit, r.frames[frame])

	shader.EnableBlending(true)
	r.mesh.Draw()
	shader.EnableBlending(false)
}

func (r *WaterRenderer) clear() {
	if r.mesh != nil {
		r.mesh.Delete()
		r.mesh = nil
	}
	for _, tex := range r.frames {
		shader.DeleteTexture(tex)
	}
	r.frames = nil
}

// Destroy frees every GL object of the renderer.
func (r *WaterRenderer) Destroy() {
	r.clear()
	r.vertUniforms.Delete()
	r.fragUniforms.Delete()
	shader.DeleteProgram(r.program)
}
