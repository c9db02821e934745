// Package shadertypes defines the fixed-layout records shared between host
// code and the ground and water shader programs, together with the rules
// that place their fields in GPU memory.
//
// Every record is a plain value. Field order is the declaration order of the
// shader-side struct and never changes; only the alignment rules decide the
// byte offsets. All floating-point data is single precision, vectors and
// matrices use mgl32 types and matrices are stored column-major.
package shadertypes

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind is the numeric type of a record field.
type Kind uint8

const (
	Int Kind = iota + 1 // 32-bit signed integer (used for 0/1 flags)
	Float
	Vec2
	Vec3
	Mat3
	Mat4
)

// Columns returns the number of columns (1 for scalars and vectors).
func (k Kind) Columns() int {
	switch k {
	case Mat3:
		return 3
	case Mat4:
		return 4
	default:
		return 1
	}
}

// Rows returns the number of components in one column.
func (k Kind) Rows() int {
	switch k {
	case Vec2:
		return 2
	case Vec3, Mat3:
		return 3
	case Mat4:
		return 4
	default:
		return 1
	}
}

// Components returns the total number of scalar components.
func (k Kind) Components() int {
	return k.Columns() * k.Rows()
}

// Integer reports whether the kind holds integer data.
func (k Kind) Integer() bool {
	return k == Int
}

// String returns the GLSL type name.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Mat3:
		return "mat3"
	case Mat4:
		return "mat4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MSL returns the Metal simd type name.
func (k Kind) MSL() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Vec2:
		return "vector_float2"
	case Vec3:
		return "vector_float3"
	case Mat3:
		return "matrix_float3x3"
	case Mat4:
		return "matrix_float4x4"
	default:
		return k.String()
	}
}

// Field is one named member of a record. It points at the record's storage
// so the encoder can read and write the value in place.
type Field struct {
	Name string
	Kind Kind
	ptr  any
}

// newField infers the kind from the pointer type.
func newField(name string, ptr any) Field {
	var kind Kind
	switch ptr.(type) {
	case *int32:
		kind = Int
	case *float32:
		kind = Float
	case *mgl32.Vec2:
		kind = Vec2
	case *mgl32.Vec3:
		kind = Vec3
	case *mgl32.Mat3:
		kind = Mat3
	case *mgl32.Mat4:
		kind = Mat4
	default:
		panic(fmt.Sprintf("shadertypes: unsupported field type %T for %q", ptr, name))
	}
	return Field{Name: name, Kind: kind, ptr: ptr}
}

// Record is implemented by pointers to the layout structs.
type Record interface {
	// TypeName is the struct or uniform block name on the shader side.
	TypeName() string
	// Fields lists the members in declaration order.
	Fields() []Field
}

// Flag converts a boolean to the 0/1 integer stored in flag fields.
func Flag(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
