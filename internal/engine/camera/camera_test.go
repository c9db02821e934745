package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrbitCamera_Position(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{10, 0, 10}
	c.Distance = 100
	c.Pitch = 0
	c.Yaw = 0

	assert.True(t, c.Position().ApproxEqualThreshold(mgl32.Vec3{10, 0, 110}, 1e-4))

	// the view matrix maps the center onto the -Z axis at Distance
	center := c.ViewMatrix().Mul4x1(c.Center.Vec4(1))
	assert.InDelta(t, -100, center[2], 1e-3)
	assert.InDelta(t, 0, center[0], 1e-3)
}

func TestOrbitCamera_Constraints(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.Pitch)

	c.HandleZoom(100)
	assert.Equal(t, c.MinDistance, c.Distance)
	c.HandleZoom(-1e6)
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestOrbitCamera_FitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds([3]float32{0, -20, 0}, [3]float32{2000, 0, 1000})

	assert.Equal(t, mgl32.Vec3{1000, -10, 500}, c.Center)
	assert.Equal(t, float32(600), c.Distance)

	c.FitToBounds([3]float32{}, [3]float32{10, 0, 10})
	assert.Equal(t, float32(200), c.Distance)
}

func TestOrbitCamera_ProjectionMatrix(t *testing.T) {
	c := NewOrbitCamera()
	assert.Equal(t, c.ProjectionMatrix(0), c.ProjectionMatrix(1))
	assert.NotEqual(t, c.ProjectionMatrix(1), c.ProjectionMatrix(2))
}
