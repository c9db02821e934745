// Package terrain builds the ground mesh and its side textures from GND data.
package terrain

import "github.com/Faultbox/midgard-world/pkg/shadertypes"

// TextureGroup is a run of indices drawn with one ground texture.
type TextureGroup struct {
	TextureID  int
	StartIndex int32
	IndexCount int32
}

// Mesh holds the ground mesh ready for upload.
type Mesh struct {
	Vertices []shadertypes.GroundVertex
	Indices  []uint32
	Groups   []TextureGroup // sorted by TextureID
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// LightmapAtlas holds all GND lightmaps packed into one square RGBA image.
// RGB is the color tint and A the shadow intensity.
type LightmapAtlas struct {
	Data        []byte
	Size        int32 // pixels per side
	TilesPerRow int32
	TileWidth   int
	TileHeight  int
}
