package formats

import (
	"errors"
	"fmt"
	"os"
)

// GND format errors.
var (
	ErrInvalidGNDMagic       = errors.New("invalid GND magic: expected 'GRGN'")
	ErrUnsupportedGNDVersion = errors.New("unsupported GND version")
	ErrTruncatedGNDData      = errors.New("truncated GND data")
	ErrInvalidGNDDimensions  = errors.New("invalid GND dimensions")
)

// maxGNDDimension bounds width and height to reject corrupt headers.
const maxGNDDimension = 1024

// On-disk record sizes used to bound counts before allocating.
const (
	gndSurfaceSize = 40
	gndTileSize    = 28
)

// GNDVersion represents the GND file version.
type GNDVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GNDVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GNDSurface is a textured face. Corner order for U and V is
// bottom-left, bottom-right, top-left, top-right.
type GNDSurface struct {
	U          [4]float32
	V          [4]float32
	TextureID  int16 // -1 = no texture
	LightmapID uint16
	Color      [4]uint8 // BGRA
}

// RGBA returns the surface color with channels in RGBA order.
func (s *GNDSurface) RGBA() [4]uint8 {
	return [4]uint8{s.Color[2], s.Color[1], s.Color[0], s.Color[3]}
}

// GNDTile is one cell of the ground grid.
type GNDTile struct {
	Altitude     [4]float32 // corner heights, positive is down
	TopSurface   int32      // -1 = none
	FrontSurface int32
	RightSurface int32
}

// GNDLightmap is the shadow and color data of one surface.
type GNDLightmap struct {
	Brightness []uint8
	ColorRGB   []uint8
}

// GND is a parsed ground file.
type GND struct {
	Version        GNDVersion
	Width          uint32
	Height         uint32
	Zoom           float32 // tile size in world units
	Textures       []string
	Lightmaps      []GNDLightmap
	LightmapWidth  uint32
	LightmapHeight uint32
	Surfaces       []GNDSurface
	Tiles          []GNDTile
}

// GetTile returns the tile at (x, y), or nil when out of bounds.
func (g *GND) GetTile(x, y int) *GNDTile {
	if x < 0 || y < 0 || x >= int(g.Width) || y >= int(g.Height) {
		return nil
	}
	return &g.Tiles[y*int(g.Width)+x]
}

// Surface returns the surface with the given ID, or nil for -1 and IDs out of
// range.
func (g *GND) Surface(id int32) *GNDSurface {
	if id < 0 || int(id) >= len(g.Surfaces) {
		return nil
	}
	return &g.Surfaces[id]
}

// GetAltitudeRange returns the minimum and maximum corner altitude.
func (g *GND) GetAltitudeRange() (min, max float32) {
	if len(g.Tiles) == 0 {
		return 0, 0
	}
	min, max = g.Tiles[0].Altitude[0], g.Tiles[0].Altitude[0]
	for _, tile := range g.Tiles {
		for _, h := range tile.Altitude {
			min = minf(min, h)
			max = maxf(max, h)
		}
	}
	return min, max
}

// ParseGND parses a GND file from raw bytes. Versions 1.5 to 1.9 are
// supported.
func ParseGND(data []byte) (*GND, error) {
	if len(data) < 18 {
		return nil, ErrTruncatedGNDData
	}
	if string(data[0:4]) != "GRGN" {
		return nil, ErrInvalidGNDMagic
	}

	gnd := &GND{Version: GNDVersion{Major: data[4], Minor: data[5]}}
	if gnd.Version.Major != 1 || gnd.Version.Minor < 5 || gnd.Version.Minor > 9 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGNDVersion, gnd.Version)
	}

	r := newReader(data[6:], ErrTruncatedGNDData)
	r.read("width", &gnd.Width)
	r.read("height", &gnd.Height)
	r.read("zoom", &gnd.Zoom)
	if r.err != nil {
		return nil, r.err
	}
	if gnd.Width == 0 || gnd.Height == 0 || gnd.Width > maxGNDDimension || gnd.Height > maxGNDDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGNDDimensions, gnd.Width, gnd.Height)
	}

	var textureCount, nameLen uint32
	r.read("texture count", &textureCount)
	r.read("texture name length", &nameLen)
	r.fits("textures", uint64(textureCount), uint64(nameLen))
	for i := uint32(0); i < textureCount && r.err == nil; i++ {
		gnd.Textures = append(gnd.Textures, r.cstring(fmt.Sprintf("texture %d name", i), int(nameLen)))
	}

	var lightmapCount, cells uint32
	r.read("lightmap count", &lightmapCount)
	r.read("lightmap width", &gnd.LightmapWidth)
	r.read("lightmap height", &gnd.LightmapHeight)
	r.read("lightmap cells", &cells)
	area := uint64(gnd.LightmapWidth) * uint64(gnd.LightmapHeight)
	r.fits("lightmap cells", uint64(cells), area)
	pixels := area * uint64(cells)
	r.fits("lightmaps", uint64(lightmapCount), pixels*4)
	for i := uint32(0); i < lightmapCount && r.err == nil; i++ {
		gnd.Lightmaps = append(gnd.Lightmaps, GNDLightmap{
			Brightness: r.bytes(fmt.Sprintf("lightmap %d brightness", i), int(pixels)),
			ColorRGB:   r.bytes(fmt.Sprintf("lightmap %d color", i), int(pixels)*3),
		})
	}

	var surfaceCount uint32
	r.read("surface count", &surfaceCount)
	r.fits("surfaces", uint64(surfaceCount), gndSurfaceSize)
	if r.err != nil {
		return nil, r.err
	}
	gnd.Surfaces = make([]GNDSurface, surfaceCount)
	for i := range gnd.Surfaces {
		s := &gnd.Surfaces[i]
		r.read("surface U", &s.U)
		r.read("surface V", &s.V)
		r.read("surface texture ID", &s.TextureID)
		r.read("surface lightmap ID", &s.LightmapID)
		r.read("surface color", &s.Color)
		if r.err != nil {
			return nil, fmt.Errorf("parsing surface %d: %w", i, r.err)
		}
	}

	if !r.fits("tiles", uint64(gnd.Width)*uint64(gnd.Height), gndTileSize) {
		return nil, r.err
	}
	gnd.Tiles = make([]GNDTile, gnd.Width*gnd.Height)
	for i := range gnd.Tiles {
		t := &gnd.Tiles[i]
		r.read("altitude", &t.Altitude)
		r.read("top surface", &t.TopSurface)
		r.read("front surface", &t.FrontSurface)
		r.read("right surface", &t.RightSurface)
		if r.err != nil {
			return nil, fmt.Errorf("parsing tile %d: %w", i, r.err)
		}
	}

	return gnd, nil
}

// ParseGNDFile parses a GND file from disk.
func ParseGNDFile(path string) (*GND, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GND file: %w", err)
	}
	return ParseGND(data)
}

// CountSurfacesByTexture returns the number of surfaces using each texture.
func (g *GND) CountSurfacesByTexture() map[int]int {
	counts := make(map[int]int)
	for _, surface := range g.Surfaces {
		if surface.TextureID >= 0 {
			counts[int(surface.TextureID)]++
		}
	}
	return counts
}

func minf(a, b float32) float32 {
	if b < a {
		return b
	}
	return a
}

func maxf(a, b float32) float32 {
	if b > a {
		return b
	}
	return a
}
