package shadertypes

import "github.com/go-gl/mathgl/mgl32"

// WaterVertex is one water surface vertex.
type WaterVertex struct {
	Position          mgl32.Vec3
	TextureCoordinate mgl32.Vec2
}

// TypeName implements Record.
func (*WaterVertex) TypeName() string { return "WaterVertex" }

// Fields implements Record.
func (v *WaterVertex) Fields() []Field {
	return []Field{
		newField("position", &v.Position),
		newField("textureCoordinate", &v.TextureCoordinate),
	}
}

// WaterVertexUniforms holds the per-draw data of the water vertex stage. The
// wave parameters drive the vertical displacement of the surface.
type WaterVertexUniforms struct {
	ModelViewMat  mgl32.Mat4
	ProjectionMat mgl32.Mat4
	WaveHeight    float32 // amplitude
	WavePitch     float32 // period, in degrees per world unit
	WaterOffset   float32 // phase, in degrees
}

// TypeName implements Record.
func (*WaterVertexUniforms) TypeName() string { return "WaterVertexUniforms" }

// Fields implements Record.
func (u *WaterVertexUniforms) Fields() []Field {
	return []Field{
		newField("modelViewMat", &u.ModelViewMat),
		newField("projectionMat", &u.ProjectionMat),
		newField("waveHeight", &u.WaveHeight),
		newField("wavePitch", &u.WavePitch),
		newField("waterOffset", &u.WaterOffset),
	}
}

// WaterFragmentUniforms holds the per-draw data of the water fragment stage.
type WaterFragmentUniforms struct {
	FogUse       int32
	FogNear      float32
	FogFar       float32
	FogColor     mgl32.Vec3
	LightAmbient mgl32.Vec3
	LightDiffuse mgl32.Vec3
	LightOpacity float32
	Opacity      float32 // overall surface transparency
}

// TypeName implements Record.
func (*WaterFragmentUniforms) TypeName() string { return "WaterFragmentUniforms" }

// Fields implements Record.
func (u *WaterFragmentUniforms) Fields() []Field {
	return []Field{
		newField("fogUse", &u.FogUse),
		newField("fogNear", &u.FogNear),
		newField("fogFar", &u.FogFar),
		newField("fogColor", &u.FogColor),
		newField("lightAmbient", &u.LightAmbient),
		newField("lightDiffuse", &u.LightDiffuse),
		newField("lightOpacity", &u.LightOpacity),
		newField("opacity", &u.Opacity),
	}
}

// FogEnabled reports whether FogUse is set.
func (u *WaterFragmentUniforms) FogEnabled() bool { return u.FogUse != 0 }

// SetFog sets FogUse to 0 or 1.
func (u *WaterFragmentUniforms) SetFog(enabled bool) { u.FogUse = Flag(enabled) }

// Records returns a zero value of every layout record, ground group first.
func Records() []Record {
	return []Record{
		&GroundVertex{},
		&GroundVertexUniforms{},
		&GroundFragmentUniforms{},
		&WaterVertex{},
		&WaterVertexUniforms{},
		&WaterFragmentUniforms{},
	}
}
