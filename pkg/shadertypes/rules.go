package shadertypes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRules is returned by ParseRules for an unrecognised name.
var ErrUnknownRules = errors.New("unknown layout rules")

// Rules selects how fields are aligned and padded in memory.
type Rules uint8

const (
	// Packed places every field on a 4-byte boundary with no padding.
	// Vertex buffers use it; attribute offsets are given explicitly.
	Packed Rules = iota
	// Std140 is the OpenGL uniform block layout. vec3 is 16-byte aligned
	// but only 12 bytes long, so a following scalar fills its last lane.
	// Matrix columns are padded to 16 bytes and blocks to a multiple of 16.
	Std140
	// SIMD is the Apple simd layout used by Metal shaders. vec3 occupies a
	// full 16 bytes and structs are padded to their largest alignment.
	SIMD
)

// AllRules lists every rule set.
var AllRules = []Rules{Packed, Std140, SIMD}

// String returns the rule set name.
func (r Rules) String() string {
	switch r {
	case Packed:
		return "packed"
	case Std140:
		return "std140"
	case SIMD:
		return "simd"
	default:
		return fmt.Sprintf("Rules(%d)", uint8(r))
	}
}

// ParseRules parses a rule set name as produced by String.
func ParseRules(s string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "packed":
		return Packed, nil
	case "std140":
		return Std140, nil
	case "simd", "metal":
		return SIMD, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRules, s)
}

// MarshalText implements encoding.TextMarshaler so rules round-trip through
// YAML configuration.
func (r Rules) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rules) UnmarshalText(text []byte) error {
	parsed, err := ParseRules(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Alignment returns the byte alignment of a field of kind k.
func (r Rules) Alignment(k Kind) int {
	if r == Packed {
		return 4
	}
	switch k {
	case Vec2:
		return 8
	case Vec3, Mat3, Mat4:
		return 16
	default:
		return 4
	}
}

// ColumnStride returns the distance in bytes between matrix columns. For
// scalars and vectors it is the size of the single column.
func (r Rules) ColumnStride(k Kind) int {
	switch {
	case r == Packed:
		return k.Rows() * 4
	case k == Mat3 || k == Mat4:
		return 16
	case k == Vec3 && r == SIMD:
		return 16
	default:
		return k.Rows() * 4
	}
}

// Size returns the number of bytes a field of kind k occupies.
func (r Rules) Size(k Kind) int {
	return r.ColumnStride(k) * k.Columns()
}

// structAlignment returns the alignment a whole record is padded to.
func (r Rules) structAlignment(maxField int) int {
	switch r {
	case Std140:
		return 16
	case SIMD:
		return maxField
	default:
		return 4
	}
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}
