package shadertypes

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMat4(base float32) mgl32.Mat4 {
	var m mgl32.Mat4
	for i := range m {
		m[i] = base + float32(i)
	}
	return m
}

func sampleRecords() []Record {
	return []Record{
		&GroundVertex{
			Position:            mgl32.Vec3{1, 2, 3},
			Normal:              mgl32.Vec3{0, 1, 0},
			TextureCoordinate:   mgl32.Vec2{0.25, 0.75},
			LightmapCoordinate:  mgl32.Vec2{0.125, 0.5},
			TileColorCoordinate: mgl32.Vec2{0.0625, 0.9375},
		},
		&GroundVertexUniforms{
			ModelViewMat:   sampleMat4(1),
			ProjectionMat:  sampleMat4(100),
			LightDirection: mgl32.Vec3{-0.5, 0.7, 0.5},
			NormalMat:      mgl32.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9},
		},
		&GroundFragmentUniforms{
			LightMapUse:  1,
			FogUse:       0,
			FogNear:      10,
			FogFar:       100,
			FogColor:     mgl32.Vec3{0.5, 0.5, 0.5},
			LightAmbient: mgl32.Vec3{0.2, 0.2, 0.2},
			LightDiffuse: mgl32.Vec3{0.8, 0.8, 0.8},
			LightOpacity: 1,
		},
		&WaterVertex{
			Position:          mgl32.Vec3{-4, 5.5, 6},
			TextureCoordinate: mgl32.Vec2{0.2, 0.4},
		},
		&WaterVertexUniforms{
			ModelViewMat:  sampleMat4(-8),
			ProjectionMat: sampleMat4(32),
			WaveHeight:    0.1,
			WavePitch:     2,
			WaterOffset:   -180,
		},
		&WaterFragmentUniforms{
			FogUse:       1,
			FogNear:      30,
			FogFar:       180,
			FogColor:     mgl32.Vec3{1, 0.9, 0.8},
			LightAmbient: mgl32.Vec3{0.3, 0.3, 0.3},
			LightDiffuse: mgl32.Vec3{1, 1, 1},
			LightOpacity: 0.7,
			Opacity:      0.6,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	zeros := Records()
	for i, rec := range sampleRecords() {
		for _, rules := range AllRules {
			t.Run(rec.TypeName()+"/"+rules.String(), func(t *testing.T) {
				data := Marshal(rec, rules)
				require.Len(t, data, SizeOf(rec, rules))

				out := Records()[i]
				require.NoError(t, Unmarshal(data, out, rules))
				assert.Equal(t, rec, out)
				assert.NotEqual(t, zeros[i], out)
			})
		}
	}
}

func TestPaddingIsZero(t *testing.T) {
	u := &GroundVertexUniforms{
		LightDirection: mgl32.Vec3{1, 1, 1},
		NormalMat:      mgl32.Mat3{1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
	data := Marshal(u, Std140)

	// lightDirection lane 3
	assert.Equal(t, []byte{0, 0, 0, 0}, data[140:144])
	// lane 3 of each normalMat column
	for col := 0; col < 3; col++ {
		off := 144 + col*16 + 12
		assert.Equal(t, []byte{0, 0, 0, 0}, data[off:off+4], "column %d", col)
	}
}

func TestGroundFragmentUniformsScenario(t *testing.T) {
	in := GroundFragmentUniforms{
		LightMapUse:  1,
		FogUse:       0,
		FogNear:      10.0,
		FogFar:       100.0,
		FogColor:     mgl32.Vec3{0.5, 0.5, 0.5},
		LightAmbient: mgl32.Vec3{0.2, 0.2, 0.2},
		LightDiffuse: mgl32.Vec3{0.8, 0.8, 0.8},
		LightOpacity: 1.0,
	}

	data := Marshal(&in, Std140)
	assert.Len(t, data, 64)

	// each field is independently readable at its offset
	l := LayoutOf(&in, Std140)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[l.Offset("lightMapUse"):]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[l.Offset("fogUse"):]))
	assert.Equal(t, float32(10), readFloat(data, l.Offset("fogNear")))
	assert.Equal(t, float32(100), readFloat(data, l.Offset("fogFar")))
	for i := 0; i < 3; i++ {
		assert.Equal(t, float32(0.5), readFloat(data, l.Offset("fogColor")+4*i))
		assert.Equal(t, float32(0.2), readFloat(data, l.Offset("lightAmbient")+4*i))
		assert.Equal(t, float32(0.8), readFloat(data, l.Offset("lightDiffuse")+4*i))
	}
	assert.Equal(t, float32(1), readFloat(data, l.Offset("lightOpacity")))

	var out GroundFragmentUniforms
	require.NoError(t, Unmarshal(data, &out, Std140))
	assert.Equal(t, in, out)
	assert.True(t, out.LightMapEnabled())
	assert.False(t, out.FogEnabled())

	// packed size is the plain sum of the field sizes
	assert.Equal(t, 4+4+4+4+12+12+12+4, SizeOf(&in, Packed))
}

func TestWaterVertexUniformsIdentityScenario(t *testing.T) {
	in := WaterVertexUniforms{
		ModelViewMat:  mgl32.Ident4(),
		ProjectionMat: mgl32.Ident4(),
		WaveHeight:    0.1,
		WavePitch:     2.0,
		WaterOffset:   0.0,
	}
	want := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

	for _, rules := range AllRules {
		var out WaterVertexUniforms
		require.NoError(t, Unmarshal(Marshal(&in, rules), &out, rules))
		assert.Equal(t, want, [16]float32(out.ModelViewMat), rules.String())
		assert.Equal(t, want, [16]float32(out.ProjectionMat), rules.String())
		assert.Equal(t, float32(0.1), out.WaveHeight)
		assert.Equal(t, float32(2.0), out.WavePitch)
		assert.Equal(t, float32(0.0), out.WaterOffset)
	}

	raw := Marshal(&in, Std140)
	for i, v := range want {
		assert.Equal(t, v, readFloat(raw, i*4), "modelViewMat[%d]", i)
	}
}

func TestMatrixIsColumnMajor(t *testing.T) {
	u := GroundVertexUniforms{ModelViewMat: mgl32.Translate3D(7, 8, 9)}
	data := Marshal(&u, Std140)
	// translation lives in column 3
	assert.Equal(t, float32(7), readFloat(data, 48))
	assert.Equal(t, float32(8), readFloat(data, 52))
	assert.Equal(t, float32(9), readFloat(data, 56))
}

func TestUnmarshalShortBuffer(t *testing.T) {
	var u WaterFragmentUniforms
	err := Unmarshal(make([]byte, 79), &u, Std140)
	assert.ErrorIs(t, err, ErrShortBuffer)
	assert.NoError(t, Unmarshal(make([]byte, 56), &u, Packed))
}

func TestAppendKeepsPrefix(t *testing.T) {
	prefix := []byte{0xAA, 0xBB}
	out := Append(prefix, &WaterVertex{Position: mgl32.Vec3{1, 2, 3}}, Packed)
	require.Len(t, out, 2+20)
	assert.Equal(t, []byte{0xAA, 0xBB}, out[:2])
	assert.Equal(t, float32(1), readFloat(out, 2))
}

func TestSliceRoundTrip(t *testing.T) {
	verts := []GroundVertex{
		{Position: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{10, -2, 0}, Normal: mgl32.Vec3{0, 1, 0}, TextureCoordinate: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{0, -3, 10}, Normal: mgl32.Vec3{1, 0, 0}, LightmapCoordinate: mgl32.Vec2{0.5, 0.5}},
	}

	for _, rules := range AllRules {
		data := MarshalSlice(verts, rules)
		assert.Len(t, data, len(verts)*SizeOf(&GroundVertex{}, rules))

		got, err := UnmarshalSlice[GroundVertex](data, rules)
		require.NoError(t, err)
		assert.Equal(t, verts, got)
	}

	_, err := UnmarshalSlice[GroundVertex](make([]byte, 50), Packed)
	assert.ErrorIs(t, err, ErrTrailingBytes)

	assert.Empty(t, MarshalSlice([]WaterVertex(nil), Packed))
}

func readFloat(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}
