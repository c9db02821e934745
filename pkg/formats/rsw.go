package formats

import (
	"errors"
	"fmt"
	"os"
)

// RSW format errors.
var (
	ErrInvalidRSWMagic       = errors.New("invalid RSW magic: expected 'GRSW'")
	ErrUnsupportedRSWVersion = errors.New("unsupported RSW version")
	ErrTruncatedRSWData      = errors.New("truncated RSW data")
	ErrUnknownObjectType     = errors.New("unknown RSW object type")
)

const rswFileNameLen = 40

// RSWVersion represents the RSW file version.
type RSWVersion struct {
	Major       uint8
	Minor       uint8
	BuildNumber uint32 // v2.2+
}

// String returns the version as "Major.Minor" or "Major.Minor.Build".
func (v RSWVersion) String() string {
	if v.BuildNumber > 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.BuildNumber)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether the version is >= major.minor.
func (v RSWVersion) AtLeast(major, minor uint8) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// RSWWater holds the water plane settings of a map.
type RSWWater struct {
	Level      float32 // plane height, positive is down
	Type       int32   // texture set
	WaveHeight float32
	WaveSpeed  float32 // degrees per frame
	WavePitch  float32 // degrees per world unit
	AnimSpeed  int32   // frames per texture
}

// RSWLight holds the global directional light of a map.
type RSWLight struct {
	Longitude int32 // degrees
	Latitude  int32 // degrees
	Diffuse   [3]float32
	Ambient   [3]float32
	Opacity   float32 // lightmap shadow opacity
}

// RSWGround holds the ground view bounds.
type RSWGround struct {
	Top    int32
	Bottom int32
	Left   int32
	Right  int32
}

// RSW is a parsed resource world file.
type RSW struct {
	Version RSWVersion
	IniFile string
	GndFile string
	GatFile string
	SrcFile string
	// HasWater is false when the file carries no water block, either
	// because it predates water (v1.2) or because v2.6 moved water into
	// the ground file. Water then holds the defaults for uniforms only.
	HasWater bool
	Water    RSWWater
	Light    RSWLight
	Ground   RSWGround
	Objects  []RSWObject
	Quadtree [][4]float32 // v2.1+
}

// DefaultRSWWater returns the water settings used when a file predates them.
func DefaultRSWWater() RSWWater {
	return RSWWater{
		WaveHeight: 1.0,
		WaveSpeed:  2,
		WavePitch:  50,
		AnimSpeed:  3,
	}
}

// DefaultRSWLight returns the light settings used when a file predates them.
func DefaultRSWLight() RSWLight {
	return RSWLight{
		Longitude: 45,
		Latitude:  45,
		Diffuse:   [3]float32{1, 1, 1},
		Ambient:   [3]float32{0.3, 0.3, 0.3},
		Opacity:   1,
	}
}

// ParseRSW parses an RSW file. Versions 1.2 to 2.6 are supported; fields
// missing from older versions keep their defaults.
func ParseRSW(data []byte) (*RSW, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedRSWData
	}
	if string(data[0:4]) != "GRSW" {
		return nil, ErrInvalidRSWMagic
	}

	v := RSWVersion{Major: data[4], Minor: data[5]}
	if !v.AtLeast(1, 2) || v.AtLeast(2, 7) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRSWVersion, v)
	}

	rsw := &RSW{
		Version: v,
		Water:   DefaultRSWWater(),
		Light:   DefaultRSWLight(),
		Ground:  RSWGround{Top: -500, Bottom: 500, Left: -500, Right: 500},
	}

	r := newReader(data[6:], ErrTruncatedRSWData)
	switch {
	case v.AtLeast(2, 5):
		r.read("build number", &rsw.Version.BuildNumber)
		r.bytes("render flag", 1)
	case v.AtLeast(2, 2):
		var build uint8
		r.read("build number", &build)
		rsw.Version.BuildNumber = uint32(build)
	}

	rsw.IniFile = r.cstring("ini file", rswFileNameLen)
	rsw.GndFile = r.cstring("gnd file", rswFileNameLen)
	rsw.GatFile = r.cstring("gat file", rswFileNameLen)
	if v.AtLeast(1, 4) {
		rsw.SrcFile = r.cstring("src file", rswFileNameLen)
	}

	// v2.6 moved the water settings into the GND file.
	if v.AtLeast(1, 3) && !v.AtLeast(2, 6) {
		rsw.HasWater = true
		r.read("water level", &rsw.Water.Level)
		if v.AtLeast(1, 8) {
			r.read("water type", &rsw.Water.Type)
			r.read("wave height", &rsw.Water.WaveHeight)
			r.read("wave speed", &rsw.Water.WaveSpeed)
			r.read("wave pitch", &rsw.Water.WavePitch)
		}
		if v.AtLeast(1, 9) {
			r.read("water animation speed", &rsw.Water.AnimSpeed)
		}
	}

	if v.AtLeast(1, 5) {
		r.read("light longitude", &rsw.Light.Longitude)
		r.read("light latitude", &rsw.Light.Latitude)
		r.read("light diffuse", &rsw.Light.Diffuse)
		r.read("light ambient", &rsw.Light.Ambient)
	}
	if v.AtLeast(1, 7) {
		r.read("light opacity", &rsw.Light.Opacity)
	}

	if v.AtLeast(1, 6) {
		r.read("ground bounds", &rsw.Ground)
	}

	var objectCount uint32
	r.read("object count", &objectCount)
	r.fits("objects", uint64(objectCount), rswMinObjectSize)
	if r.err != nil {
		return nil, r.err
	}
	rsw.Objects = make([]RSWObject, 0, objectCount)
	for i := uint32(0); i < objectCount; i++ {
		obj, err := readRSWObject(r, rsw.Version)
		if err != nil {
			return nil, fmt.Errorf("parsing object %d: %w", i, err)
		}
		rsw.Objects = append(rsw.Objects, obj)
	}

	if v.AtLeast(2, 1) {
		for r.r.Len() >= 16 {
			var node [4]float32
			r.read("quadtree node", &node)
			rsw.Quadtree = append(rsw.Quadtree, node)
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	return rsw, nil
}

// ParseRSWFile parses an RSW file from disk.
func ParseRSWFile(path string) (*RSW, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading RSW file: %w", err)
	}
	return ParseRSW(data)
}
