package shadertypes

import "github.com/go-gl/mathgl/mgl32"

// GroundVertex is one terrain mesh vertex as fed to the ground vertex stage.
type GroundVertex struct {
	Position            mgl32.Vec3
	Normal              mgl32.Vec3 // expected unit length
	TextureCoordinate   mgl32.Vec2 // into the ground texture
	LightmapCoordinate  mgl32.Vec2 // into the lightmap atlas
	TileColorCoordinate mgl32.Vec2 // into the per-tile color texture
}

// TypeName implements Record.
func (*GroundVertex) TypeName() string { return "GroundVertex" }

// Fields implements Record.
func (v *GroundVertex) Fields() []Field {
	return []Field{
		newField("position", &v.Position),
		newField("normal", &v.Normal),
		newField("textureCoordinate", &v.TextureCoordinate),
		newField("lightmapCoordinate", &v.LightmapCoordinate),
		newField("tileColorCoordinate", &v.TileColorCoordinate),
	}
}

// GroundVertexUniforms holds the per-draw data of the ground vertex stage.
//
// NormalMat should be the inverse-transpose of the upper 3x3 of ModelViewMat;
// NormalMatrix computes it.
type GroundVertexUniforms struct {
	ModelViewMat   mgl32.Mat4
	ProjectionMat  mgl32.Mat4
	LightDirection mgl32.Vec3
	NormalMat      mgl32.Mat3
}

// TypeName implements Record.
func (*GroundVertexUniforms) TypeName() string { return "GroundVertexUniforms" }

// Fields implements Record.
func (u *GroundVertexUniforms) Fields() []Field {
	return []Field{
		newField("modelViewMat", &u.ModelViewMat),
		newField("projectionMat", &u.ProjectionMat),
		newField("lightDirection", &u.LightDirection),
		newField("normalMat", &u.NormalMat),
	}
}

// GroundFragmentUniforms holds the per-draw data of the ground fragment stage.
// LightMapUse and FogUse are 0/1 integers.
type GroundFragmentUniforms struct {
	LightMapUse  int32
	FogUse       int32
	FogNear      float32
	FogFar       float32
	FogColor     mgl32.Vec3
	LightAmbient mgl32.Vec3
	LightDiffuse mgl32.Vec3
	LightOpacity float32
}

// TypeName implements Record.
func (*GroundFragmentUniforms) TypeName() string { return "GroundFragmentUniforms" }

// Fields implements Record.
func (u *GroundFragmentUniforms) Fields() []Field {
	return []Field{
		newField("lightMapUse", &u.LightMapUse),
		newField("fogUse", &u.FogUse),
		newField("fogNear", &u.FogNear),
		newField("fogFar", &u.FogFar),
		newField("fogColor", &u.FogColor),
		newField("lightAmbient", &u.LightAmbient),
		newField("lightDiffuse", &u.LightDiffuse),
		newField("lightOpacity", &u.LightOpacity),
	}
}

// LightMapEnabled reports whether LightMapUse is set.
func (u *GroundFragmentUniforms) LightMapEnabled() bool { return u.LightMapUse != 0 }

// SetLightMap sets LightMapUse to 0 or 1.
func (u *GroundFragmentUniforms) SetLightMap(enabled bool) { u.LightMapUse = Flag(enabled) }

// FogEnabled reports whether FogUse is set.
func (u *GroundFragmentUniforms) FogEnabled() bool { return u.FogUse != 0 }

// SetFog sets FogUse to 0 or 1.
func (u *GroundFragmentUniforms) SetFog(enabled bool) { u.FogUse = Flag(enabled) }

// NormalMatrix returns the inverse-transpose of the upper 3x3 of modelView.
// A singular matrix yields the identity.
func NormalMatrix(modelView mgl32.Mat4) mgl32.Mat3 {
	upper := modelView.Mat3()
	if upper.Det() == 0 {
		return mgl32.Ident3()
	}
	return upper.Inv().Transpose()
}
