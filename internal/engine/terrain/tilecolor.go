package terrain

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-world/pkg/formats"
)

// BuildTileColors returns a Width x Height image holding the vertex color of
// each tile's top surface. Tiles without one are white.
func BuildTileColors(gnd *formats.GND) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(gnd.Width), int(gnd.Height)))
	for y := range int(gnd.Height) {
		for x := range int(gnd.Width) {
			c := color.RGBA{255, 255, 255, 255}
			if s := gnd.Surface(gnd.GetTile(x, y).TopSurface); s != nil {
				rgba := s.RGBA()
				c = color.RGBA{rgba[0], rgba[1], rgba[2], rgba[3]}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// TileColorCoordinate returns the texture coordinate of the center of tile
// (x, y) in the image built by BuildTileColors.
func TileColorCoordinate(gnd *formats.GND, x, y int) mgl32.Vec2 {
	return mgl32.Vec2{
		(float32(x) + 0.5) / float32(gnd.Width),
		(float32(y) + 0.5) / float32(gnd.Height),
	}
}
