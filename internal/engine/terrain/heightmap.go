package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-world/pkg/formats"
)

// HeightAt returns the ground height (negated altitude) at a world position by
// bilinear interpolation of the corners of the tile under it. Positions off
// the map are clamped to the nearest edge tile.
func HeightAt(gnd *formats.GND, worldX, worldZ float32) float32 {
	if gnd == nil || len(gnd.Tiles) == 0 || gnd.Zoom <= 0 {
		return 0
	}

	fx := worldX / gnd.Zoom
	fz := worldZ / gnd.Zoom
	x := clamp(int(math32.Floor(fx)), 0, int(gnd.Width)-1)
	z := clamp(int(math32.Floor(fz)), 0, int(gnd.Height)-1)
	tx := clampf(fx-float32(x), 0, 1)
	tz := clampf(fz-float32(z), 0, 1)

	// tz runs from the top edge (corners 2, 3) to the bottom edge (0, 1).
	alt := gnd.GetTile(x, z).Altitude
	top := alt[2] + (alt[3]-alt[2])*tx
	bottom := alt[0] + (alt[1]-alt[0])*tx
	return -(top + (bottom-top)*tz)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func clampf(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
