package shadertypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutOffsets(t *testing.T) {
	tests := []struct {
		record  Record
		rules   Rules
		offsets []int
		size    int
	}{
		{&GroundVertex{}, Packed, []int{0, 12, 24, 32, 40}, 48},
		{&GroundVertex{}, Std140, []int{0, 16, 32, 40, 48}, 64},
		{&GroundVertex{}, SIMD, []int{0, 16, 32, 40, 48}, 64},

		{&GroundVertexUniforms{}, Packed, []int{0, 64, 128, 140}, 176},
		{&GroundVertexUniforms{}, Std140, []int{0, 64, 128, 144}, 192},
		{&GroundVertexUniforms{}, SIMD, []int{0, 64, 128, 144}, 192},

		{&GroundFragmentUniforms{}, Packed, []int{0, 4, 8, 12, 16, 28, 40, 52}, 56},
		{&GroundFragmentUniforms{}, Std140, []int{0, 4, 8, 12, 16, 32, 48, 60}, 64},
		{&GroundFragmentUniforms{}, SIMD, []int{0, 4, 8, 12, 16, 32, 48, 64}, 80},

		{&WaterVertex{}, Packed, []int{0, 12}, 20},
		{&WaterVertex{}, Std140, []int{0, 16}, 32},
		{&WaterVertex{}, SIMD, []int{0, 16}, 32},

		{&WaterVertexUniforms{}, Packed, []int{0, 64, 128, 132, 136}, 140},
		{&WaterVertexUniforms{}, Std140, []int{0, 64, 128, 132, 136}, 144},
		{&WaterVertexUniforms{}, SIMD, []int{0, 64, 128, 132, 136}, 144},

		{&WaterFragmentUniforms{}, Packed, []int{0, 4, 8, 12, 24, 36, 48, 52}, 56},
		{&WaterFragmentUniforms{}, Std140, []int{0, 4, 8, 16, 32, 48, 60, 64}, 80},
		{&WaterFragmentUniforms{}, SIMD, []int{0, 4, 8, 16, 32, 48, 64, 68}, 80},
	}

	for _, tt := range tests {
		t.Run(tt.record.TypeName()+"/"+tt.rules.String(), func(t *testing.T) {
			l := LayoutOf(tt.record, tt.rules)
			require.Len(t, l.Fields, len(tt.offsets))
			for i, f := range l.Fields {
				assert.Equal(t, tt.offsets[i], f.Offset, "offset of %s", f.Name)
			}
			assert.Equal(t, tt.size, l.Size)
			assert.Equal(t, tt.size, SizeOf(tt.record, tt.rules))
		})
	}
}

func TestPackedSizeIsSumOfFieldSizes(t *testing.T) {
	logical := map[Kind]int{Int: 4, Float: 4, Vec2: 8, Vec3: 12, Mat3: 36, Mat4: 64}
	for _, r := range Records() {
		sum := 0
		for _, f := range r.Fields() {
			sum += logical[f.Kind]
		}
		assert.Equal(t, sum, SizeOf(r, Packed), r.TypeName())
	}
}

func TestUniformLayoutsAreSixteenByteMultiples(t *testing.T) {
	for _, r := range Records() {
		for _, rules := range []Rules{Std140, SIMD} {
			assert.Zero(t, SizeOf(r, rules)%16, "%s under %s", r.TypeName(), rules)
		}
	}
}

func TestMatrixColumnStride(t *testing.T) {
	l := LayoutOf(&GroundVertexUniforms{}, Std140)
	f, ok := l.Field("normalMat")
	require.True(t, ok)
	assert.Equal(t, 16, f.Stride)
	assert.Equal(t, 48, f.Size)

	l = LayoutOf(&GroundVertexUniforms{}, Packed)
	f, ok = l.Field("normalMat")
	require.True(t, ok)
	assert.Equal(t, 12, f.Stride)
	assert.Equal(t, 36, f.Size)
}

func TestLayoutLookup(t *testing.T) {
	l := LayoutOf(&WaterFragmentUniforms{}, Std140)
	assert.Equal(t, 64, l.Offset("opacity"))
	assert.Equal(t, -1, l.Offset("missing"))
	assert.Contains(t, l.String(), "WaterFragmentUniforms (std140) size=80")
}

func TestParseRules(t *testing.T) {
	tests := []struct {
		in   string
		want Rules
	}{
		{"packed", Packed},
		{"STD140", Std140},
		{" simd ", SIMD},
		{"metal", SIMD},
	}
	for _, tt := range tests {
		got, err := ParseRules(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseRules("std430")
	assert.ErrorIs(t, err, ErrUnknownRules)

	var r Rules
	require.NoError(t, r.UnmarshalText([]byte("simd")))
	assert.Equal(t, SIMD, r)
	text, err := Std140.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "std140", string(text))
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "mat3", Mat3.String())
	assert.Equal(t, "matrix_float4x4", Mat4.MSL())
	assert.Equal(t, "vector_float2", Vec2.MSL())
	assert.Equal(t, 9, Mat3.Components())
	assert.True(t, Int.Integer())
	assert.False(t, Float.Integer())
}

func TestNewFieldPanicsOnUnsupportedType(t *testing.T) {
	var d float64
	assert.Panics(t, func() { newField("bad", &d) })
}
