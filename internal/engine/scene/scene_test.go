package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-world/pkg/formats"
)

func TestScene_HeightAt(t *testing.T) {
	s := &Scene{}
	assert.Zero(t, s.HeightAt(5, 5), "no map loaded")

	s.gnd = &formats.GND{
		Width: 1, Height: 1, Zoom: 10,
		Tiles: []formats.GNDTile{{Altitude: [4]float32{-4, -4, -4, -4}}},
	}
	assert.InDelta(t, 4, s.HeightAt(5, 5), 1e-6)
}
