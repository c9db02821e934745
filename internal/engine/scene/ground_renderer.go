package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-world/internal/assets"
	"github.com/Faultbox/midgard-world/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-world/internal/engine/shader"
	"github.com/Faultbox/midgard-world/internal/engine/terrain"
	"github.com/Faultbox/midgard-world/internal/engine/texture"
	"github.com/Faultbox/midgard-world/pkg/formats"
	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

// Uniform block binding points.
const (
	groundVertexBinding uint32 = iota
	groundFragmentBinding
	waterVertexBinding
	waterFragmentBinding
)

// Texture units of the ground program.
const (
	groundTextureUnit uint32 = iota
	lightmapTextureUnit
	tileColorTextureUnit
)

// Loader reads asset bytes by archive path.
type Loader interface {
	Load(path string) ([]byte, error)
}

// GroundRenderer draws the terrain mesh of a GND file.
type GroundRenderer struct {
	program      uint32
	vertUniforms *shader.UniformBuffer
	fragUniforms *shader.UniformBuffer

	mesh   *shader.VertexBuffer
	groups []terrain.TextureGroup
	Bounds terrain.Bounds

	textures   map[int]uint32
	white      uint32
	lightmap   uint32
	tileColors uint32

	log *zap.Logger
}

// NewGroundRenderer compiles the ground program and allocates its uniform
// buffers.
func NewGroundRenderer(log *zap.Logger) (*GroundRenderer, error) {
	vert := shader.VertexSource(shaders.GroundVertexShader, &shadertypes.GroundVertex{}, &shadertypes.GroundVertexUniforms{})
	frag := shader.FragmentSource(shaders.GroundFragmentShader, &shadertypes.GroundFragmentUniforms{})
	program, err := shader.CompileProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("ground shader: %w", err)
	}

	r := &GroundRenderer{
		program:      program,
		vertUniforms: shader.NewUniformBuffer(&shadertypes.GroundVertexUniforms{}, groundVertexBinding),
		fragUniforms: shader.NewUniformBuffer(&shadertypes.GroundFragmentUniforms{}, groundFragmentBinding),
		textures:     make(map[int]uint32),
		white:        shader.White(),
		log:          log,
	}
	for _, ub := range []*shader.UniformBuffer{r.vertUniforms, r.fragUniforms} {
		if err := ub.Attach(program); err != nil {
			r.Destroy()
			return nil, fmt.Errorf("ground shader: %w", err)
		}
	}

	shader.Use(program)
	shader.BindSampler(program, "groundTexture", int32(groundTextureUnit))
	shader.BindSampler(program, "lightmapTexture", int32(lightmapTextureUnit))
	shader.BindSampler(program, "tileColorTexture", int32(tileColorTextureUnit))
	return r, nil
}

// Load replaces the current terrain with the one described by gnd. Ground
// textures that cannot be loaded are drawn white.
func (r *GroundRenderer) Load(gnd *formats.GND, loader Loader) {
	r.clear()

	atlas := terrain.BuildLightmapAtlas(gnd)
	r.lightmap = shader.UploadRGBA(atlas.Data, atlas.Size, atlas.Size, shader.TextureOptions{})
	r.tileColors = shader.UploadTexture(terrain.BuildTileColors(gnd), shader.TextureOptions{})

	mesh := terrain.BuildMesh(gnd, atlas)
	r.mesh = shader.NewVertexBuffer(mesh.Vertices, mesh.Indices)
	r.groups = mesh.Groups
	r.Bounds = mesh.Bounds

	for _, g := range mesh.Groups {
		if g.TextureID < 0 || g.TextureID >= len(gnd.Textures) {
			continue
		}
		r.textures[g.TextureID] = r.loadTexture(gnd.Textures[g.TextureID], loader)
	}

	r.log.Info("ground loaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("groups", len(mesh.Groups)),
		zap.Int("textures", len(r.textures)))
}

func (r *GroundRenderer) loadTexture(name string, loader Loader) uint32 {
	path := assets.TexturePath(name)
	data, err := loader.Load(path)
	if err != nil {
		r.log.Warn("ground texture missing", zap.String("path", path), zap.Error(err))
		return r.white
	}
	img, err := texture.Decode(path, data)
	if err != nil {
		r.log.Warn("ground texture unreadable", zap.String("path", path), zap.Error(err))
		return r.white
	}
	return shader.UploadTexture(img, shader.TextureOptions{Repeat: true, Mipmaps: true})
}

// Draw renders the terrain with the given uniforms.
func (r *GroundRenderer) Draw(vert shadertypes.GroundVertexUniforms, frag shadertypes.GroundFragmentUniforms) {
	if r.mesh == nil {
		return
	}
	r.vertUniforms.Update(&vert)
	r.fragUniforms.Update(&frag)

	shader.Use(r.program)
	shader.Bind(lightmapTextureUnit, r.lightmap)
	shader.Bind(tileColorTextureUnit, r.tileColors)
	for _, g := range r.groups {
		tex, ok := r.textures[g.TextureID]
		if !ok {
			tex = r.white
		}
		shader.Bind(groundTextureUnit, tex)
		r.mesh.DrawRange(g.StartIndex, g.IndexCount)
	}
}

func (r *GroundRenderer) clear() {
	if r.mesh != nil {
		r.mesh.Delete()
		r.mesh = nil
	}
	for id, tex := range r.textures {
		if tex != r.white {
			shader.DeleteTexture(tex)
		}
		delete(r.textures, id)
	}
	for _, tex := range []*uint32{&r.lightmap, &r.tileColors} {
		if *tex != 0 {
			shader.DeleteTexture(*tex)
			*tex = 0
		}
	}
	r.groups = nil
	r.Bounds = terrain.Bounds{}
}

// Destroy frees every GL object of the renderer.
func (r *GroundRenderer) Destroy() {
	r.clear()
	shader.DeleteTexture(r.white)
	r.vertUniforms.Delete()
	r.fragUniforms.Delete()
	shader.DeleteProgram(r.program)
}
