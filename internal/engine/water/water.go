// Package water builds the animated water surface of a map.
package water

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-world/pkg/formats"
	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

const (
	// TextureRepeat is the number of tiles one water texture spans.
	TextureRepeat = 5
	// FrameCount is the number of frames in a water texture animation.
	FrameCount = 32
	// FramesPerSecond is the tick rate the wave and animation speeds are
	// expressed in.
	FramesPerSecond = 60
	// DefaultAnimSpeed is used when a map carries no usable animation speed.
	DefaultAnimSpeed = 3
	// DefaultOpacity is the surface transparency of RO water.
	DefaultOpacity = 0.6
)

// Settings describes the water plane of a map. Level and altitudes grow
// downwards, as in the map files.
type Settings struct {
	Level      float32
	Type       int32
	WaveHeight float32
	WaveSpeed  float32 // degrees per frame
	WavePitch  float32 // degrees per world unit
	AnimSpeed  int32   // frames per texture
}

// SettingsFromRSW converts the water block of an RSW file.
func SettingsFromRSW(w formats.RSWWater) Settings {
	return Settings{
		Level:      w.Level,
		Type:       w.Type,
		WaveHeight: w.WaveHeight,
		WaveSpeed:  w.WaveSpeed,
		WavePitch:  w.WavePitch,
		AnimSpeed:  w.AnimSpeed,
	}
}

// Mesh holds the water surface ready for upload.
type Mesh struct {
	Vertices []shadertypes.WaterVertex
	Indices  []uint32
}

// Empty reports whether the map has no water.
func (m *Mesh) Empty() bool { return len(m.Vertices) == 0 }

// BuildMesh emits one quad at the water plane for every tile that dips below
// the wave crest, that is, any corner deeper than Level - WaveHeight. The
// texture repeats every TextureRepeat tiles.
func BuildMesh(gnd *formats.GND, s Settings) *Mesh {
	mesh := &Mesh{}
	crest := s.Level - s.WaveHeight
	y := -s.Level
	size := gnd.Zoom
	step := float32(1) / TextureRepeat

	for ty := range int(gnd.Height) {
		for tx := range int(gnd.Width) {
			alt := gnd.GetTile(tx, ty).Altitude
			if alt[0] <= crest && alt[1] <= crest && alt[2] <= crest && alt[3] <= crest {
				continue
			}

			x0, z0 := float32(tx)*size, float32(ty)*size
			u0 := float32(tx%TextureRepeat) * step
			v0 := float32(ty%TextureRepeat) * step

			base := uint32(len(mesh.Vertices))
			mesh.Vertices = append(mesh.Vertices,
				shadertypes.WaterVertex{Position: mgl32.Vec3{x0, y, z0 + size}, TextureCoordinate: mgl32.Vec2{u0, v0 + step}},
				shadertypes.WaterVertex{Position: mgl32.Vec3{x0 + size, y, z0 + size}, TextureCoordinate: mgl32.Vec2{u0 + step, v0 + step}},
				shadertypes.WaterVertex{Position: mgl32.Vec3{x0, y, z0}, TextureCoordinate: mgl32.Vec2{u0, v0}},
				shadertypes.WaterVertex{Position: mgl32.Vec3{x0 + size, y, z0}, TextureCoordinate: mgl32.Vec2{u0 + step, v0}},
			)
			mesh.Indices = append(mesh.Indices,
				base, base+1, base+2,
				base+2, base+1, base+3,
			)
		}
	}
	return mesh
}

// frames converts elapsed time to animation ticks.
func frames(elapsed time.Duration) float32 {
	return float32(elapsed.Seconds()) * FramesPerSecond
}

// WaveOffset returns the wave phase in degrees after elapsed time, in the
// range [-180, 180).
func WaveOffset(elapsed time.Duration, speed float32) float32 {
	phase := math32.Mod(frames(elapsed)*speed, 360)
	if phase < 0 {
		phase += 360
	}
	return phase - 180
}

// AnimFrame returns the water texture frame shown after elapsed time.
func AnimFrame(elapsed time.Duration, animSpeed int32) int {
	if animSpeed <= 0 {
		animSpeed = DefaultAnimSpeed
	}
	return int(frames(elapsed)) / int(animSpeed) % FrameCount
}

// TexturePath returns the archive path of one water texture frame.
func TexturePath(waterType int32, frame int) string {
	return fmt.Sprintf("data/texture/워터/water%d%02d.jpg", waterType, frame)
}
