package terrain

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-world/pkg/formats"
)

const (
	minAtlasSize = 64
	maxAtlasSize = 4096
)

// BuildLightmapAtlas packs every GND lightmap into a square power-of-two
// atlas. Unused texels are white with full brightness.
func BuildLightmapAtlas(gnd *formats.GND) *LightmapAtlas {
	if len(gnd.Lightmaps) == 0 {
		return &LightmapAtlas{
			Data:        bytes.Repeat([]byte{255}, 8*8*4),
			Size:        8,
			TilesPerRow: 1,
			TileWidth:   8,
			TileHeight:  8,
		}
	}

	lmWidth := int(gnd.LightmapWidth)
	lmHeight := int(gnd.LightmapHeight)
	if lmWidth == 0 {
		lmWidth = 8
	}
	if lmHeight == 0 {
		lmHeight = 8
	}

	perRow := 1
	for perRow*perRow < len(gnd.Lightmaps) {
		perRow *= 2
	}
	size := minAtlasSize
	for size < perRow*max(lmWidth, lmHeight) && size < maxAtlasSize {
		size *= 2
	}
	perRow = size / lmWidth

	data := bytes.Repeat([]byte{255}, size*size*4)
	for i, lm := range gnd.Lightmaps {
		baseX := (i % perRow) * lmWidth
		baseY := (i / perRow) * lmHeight
		for y := range lmHeight {
			for x := range lmWidth {
				dstX, dstY := baseX+x, baseY+y
				if dstX >= size || dstY >= size {
					continue
				}
				src := y*lmWidth + x
				dst := (dstY*size + dstX) * 4

				var rgb [3]byte
				if src*3+2 < len(lm.ColorRGB) {
					copy(rgb[:], lm.ColorRGB[src*3:])
				}
				brightness := byte(255)
				if src < len(lm.Brightness) {
					brightness = lm.Brightness[src]
				}
				data[dst], data[dst+1], data[dst+2], data[dst+3] = rgb[0], rgb[1], rgb[2], brightness
			}
		}
	}

	return &LightmapAtlas{
		Data:        data,
		Size:        int32(size),
		TilesPerRow: int32(perRow),
		TileWidth:   lmWidth,
		TileHeight:  lmHeight,
	}
}

// LightmapUV returns the atlas coordinate of one corner of a lightmap, in GND
// corner order (bottom-left, bottom-right, top-left, top-right). Coordinates
// are inset by half a texel so sampling never bleeds into the neighbour.
// IDs whose slot lies outside the atlas map to its center.
func LightmapUV(atlas *LightmapAtlas, lightmapID uint16, corner int) mgl32.Vec2 {
	if atlas == nil || atlas.TilesPerRow == 0 || atlas.TileHeight == 0 {
		return mgl32.Vec2{0.5, 0.5}
	}
	tileX := int(lightmapID) % int(atlas.TilesPerRow)
	tileY := int(lightmapID) / int(atlas.TilesPerRow)
	if (tileY+1)*atlas.TileHeight > int(atlas.Size) {
		return mgl32.Vec2{0.5, 0.5}
	}

	size := float32(atlas.Size)

	half := 0.5 / size
	u0 := float32(tileX*atlas.TileWidth)/size + half
	v0 := float32(tileY*atlas.TileHeight)/size + half
	u1 := float32((tileX+1)*atlas.TileWidth)/size - half
	v1 := float32((tileY+1)*atlas.TileHeight)/size - half

	switch corner {
	case 0:
		return mgl32.Vec2{u0, v1}
	case 1:
		return mgl32.Vec2{u1, v1}
	case 2:
		return mgl32.Vec2{u0, v0}
	case 3:
		return mgl32.Vec2{u1, v0}
	}
	return mgl32.Vec2{0.5, 0.5}
}
