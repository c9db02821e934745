// Package scene draws the ground and water of a map and fills the uniform
// records those draws need.
package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-world/internal/engine/lighting"
	"github.com/Faultbox/midgard-world/internal/engine/water"
	"github.com/Faultbox/midgard-world/pkg/formats"
	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

// Environment is the per-map state shared by every draw of a frame.
type Environment struct {
	Light        lighting.Light
	Fog          lighting.Fog
	LightMap     bool
	Water        water.Settings
	WaterOpacity float32
}

// NewEnvironment builds the environment of a map. A nil rsw keeps the file
// format defaults.
func NewEnvironment(rsw *formats.RSW, fog lighting.Fog, lightMap bool, waterOpacity float32) Environment {
	light, settings := formats.DefaultRSWLight(), formats.DefaultRSWWater()
	if rsw != nil {
		light, settings = rsw.Light, rsw.Water
	}
	if waterOpacity <= 0 || waterOpacity > 1 {
		waterOpacity = water.DefaultOpacity
	}
	return Environment{
		Light:        lighting.FromRSW(light),
		Fog:          fog,
		LightMap:     lightMap,
		Water:        water.SettingsFromRSW(settings),
		WaterOpacity: waterOpacity,
	}
}

// GroundUniforms returns the vertex and fragment uniforms of a ground draw.
// The ground has no model transform, so the model-view matrix is the view.
func GroundUniforms(view, projection mgl32.Mat4, env Environment) (shadertypes.GroundVertexUniforms, shadertypes.GroundFragmentUniforms) {
	vert := shadertypes.GroundVertexUniforms{
		ModelViewMat:   view,
		ProjectionMat:  projection,
		LightDirection: env.Light.Direction,
		NormalMat:      shadertypes.NormalMatrix(view),
	}
	frag := shadertypes.GroundFragmentUniforms{
		FogNear:      env.Fog.Near,
		FogFar:       env.Fog.Far,
		FogColor:     env.Fog.Color,
		LightAmbient: env.Light.Ambient,
		LightDiffuse: env.Light.Diffuse,
		LightOpacity: env.Light.Opacity,
	}
	frag.SetLightMap(env.LightMap)
	frag.SetFog(env.Fog.Enabled)
	return vert, frag
}

// WaterUniforms returns the vertex and fragment uniforms of a water draw
// elapsed after the map was loaded.
func WaterUniforms(view, projection mgl32.Mat4, env Environment, elapsed time.Duration) (shadertypes.WaterVertexUniforms, shadertypes.WaterFragmentUniforms) {
	vert := shadertypes.WaterVertexUniforms{
		ModelViewMat:  view,
		ProjectionMat: projection,
		WaveHeight:    env.Water.WaveHeight,
		WavePitch:     env.Water.WavePitch,
		WaterOffset:   water.WaveOffset(elapsed, env.Water.WaveSpeed),
	}
	frag := shadertypes.WaterFragmentUniforms{
		FogNear:      env.Fog.Near,
		FogFar:       env.Fog.Far,
		FogColor:     env.Fog.Color,
		LightAmbient: env.Light.Ambient,
		LightDiffuse: env.Light.Diffuse,
		LightOpacity: env.Light.Opacity,
		Opacity:      env.WaterOpacity,
	}
	frag.SetFog(env.Fog.Enabled)
	return vert, frag
}
