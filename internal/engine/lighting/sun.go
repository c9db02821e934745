// Package lighting derives the global light and fog of a map.
package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-world/pkg/formats"
)

// MinAmbient is the floor applied to each ambient channel so unlit sides of
// the terrain never go fully black.
const MinAmbient = 0.3

// SunDirection converts RSW longitude and latitude (degrees) to a unit vector
// pointing towards the sun. Longitude rotates around Y, latitude is the
// elevation above the horizon.
func SunDirection(longitude, latitude int32) mgl32.Vec3 {
	lon := mgl32.DegToRad(float32(longitude))
	lat := mgl32.DegToRad(float32(latitude))
	return mgl32.Vec3{
		math32.Cos(lat) * math32.Sin(lon),
		math32.Sin(lat),
		math32.Cos(lat) * math32.Cos(lon),
	}
}

// Light is the directional light shared by the ground and water stages.
type Light struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Opacity   float32 // lightmap shadow strength
}

// FromRSW builds the map light from its RSW settings. Ambient channels are
// raised to MinAmbient and a non-positive opacity becomes 1.
func FromRSW(l formats.RSWLight) Light {
	light := Light{
		Direction: SunDirection(l.Longitude, l.Latitude),
		Ambient:   mgl32.Vec3(l.Ambient),
		Diffuse:   mgl32.Vec3(l.Diffuse),
		Opacity:   l.Opacity,
	}
	for i := range light.Ambient {
		light.Ambient[i] = max(light.Ambient[i], MinAmbient)
	}
	if light.Opacity <= 0 {
		light.Opacity = 1
	}
	return light
}
