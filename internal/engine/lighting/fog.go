package lighting

import "github.com/go-gl/mathgl/mgl32"

// Fog is linear distance fog.
type Fog struct {
	Enabled bool
	Near    float32
	Far     float32
	Color   mgl32.Vec3
}

// DefaultFog returns the fog used when none is configured: disabled, with a
// pale sky color and a range that covers most of a map.
func DefaultFog() Fog {
	return Fog{
		Near:  200,
		Far:   1500,
		Color: mgl32.Vec3{0.85, 0.9, 1},
	}
}

// Factor returns how much of the fog color covers a fragment at distance d,
// from 0 at Near to 1 at Far. Disabled fog always yields 0.
func (f Fog) Factor(d float32) float32 {
	if !f.Enabled || f.Far <= f.Near {
		return 0
	}
	return mgl32.Clamp((d-f.Near)/(f.Far-f.Near), 0, 1)
}
