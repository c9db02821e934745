package shadertypes

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Encoding errors.
var (
	ErrShortBuffer   = errors.New("buffer too short for record layout")
	ErrTrailingBytes = errors.New("buffer length is not a multiple of the record size")
)

// Marshal encodes r into a new buffer laid out by rules. Padding is zero.
func Marshal(r Record, rules Rules) []byte {
	return Append(nil, r, rules)
}

// Append encodes r at the end of dst and returns the extended buffer.
func Append(dst []byte, r Record, rules Rules) []byte {
	fields := r.Fields()
	l := computeLayout(r.TypeName(), fields, rules)
	return appendFields(dst, fields, l)
}

func appendFields(dst []byte, fields []Field, l Layout) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, l.Size)...)
	buf := dst[start:]
	for i, f := range fields {
		putField(buf[l.Fields[i].Offset:], f, l.Fields[i].Stride)
	}
	return dst
}

// Unmarshal decodes data laid out by rules into r.
func Unmarshal(data []byte, r Record, rules Rules) error {
	fields := r.Fields()
	l := computeLayout(r.TypeName(), fields, rules)
	if len(data) < l.Size {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrShortBuffer, l.Name, l.Size, len(data))
	}
	for i, f := range fields {
		getField(data[l.Fields[i].Offset:], f, l.Fields[i].Stride)
	}
	return nil
}

// AppendSlice encodes items back to back, each one record-size apart.
func AppendSlice[T any, P interface {
	*T
	Record
}](dst []byte, items []T, rules Rules) []byte {
	if len(items) == 0 {
		return dst
	}
	l := LayoutOf(P(&items[0]), rules)
	dst = grow(dst, l.Size*len(items))
	for i := range items {
		dst = appendFields(dst, P(&items[i]).Fields(), l)
	}
	return dst
}

// MarshalSlice encodes items into a new buffer.
func MarshalSlice[T any, P interface {
	*T
	Record
}](items []T, rules Rules) []byte {
	return AppendSlice[T, P](nil, items, rules)
}

// UnmarshalSlice decodes a buffer produced by MarshalSlice.
func UnmarshalSlice[T any, P interface {
	*T
	Record
}](data []byte, rules Rules) ([]T, error) {
	var zero T
	l := LayoutOf(P(&zero), rules)
	if len(data)%l.Size != 0 {
		return nil, fmt.Errorf("%w: %d bytes, %s is %d", ErrTrailingBytes, len(data), l.Name, l.Size)
	}
	items := make([]T, len(data)/l.Size)
	for i := range items {
		fields := P(&items[i]).Fields()
		chunk := data[i*l.Size:]
		for j, f := range fields {
			getField(chunk[l.Fields[j].Offset:], f, l.Fields[j].Stride)
		}
	}
	return items, nil
}

func grow(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	nb := make([]byte, len(b), len(b)+n)
	copy(nb, b)
	return nb
}

func putFloat(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func getFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func putField(b []byte, f Field, stride int) {
	switch p := f.ptr.(type) {
	case *int32:
		binary.LittleEndian.PutUint32(b, uint32(*p))
	case *float32:
		putFloat(b, *p)
	case *mgl32.Vec2:
		putColumns(b, p[:], 2, stride)
	case *mgl32.Vec3:
		putColumns(b, p[:], 3, stride)
	case *mgl32.Mat3:
		putColumns(b, p[:], 3, stride)
	case *mgl32.Mat4:
		putColumns(b, p[:], 4, stride)
	}
}

func getField(b []byte, f Field, stride int) {
	switch p := f.ptr.(type) {
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(b))
	case *float32:
		*p = getFloat(b)
	case *mgl32.Vec2:
		getColumns(b, p[:], 2, stride)
	case *mgl32.Vec3:
		getColumns(b, p[:], 3, stride)
	case *mgl32.Mat3:
		getColumns(b, p[:], 3, stride)
	case *mgl32.Mat4:
		getColumns(b, p[:], 4, stride)
	}
}

// putColumns writes column-major values, rows floats per column, with each
// column starting stride bytes after the previous one.
func putColumns(b []byte, values []float32, rows, stride int) {
	for i, v := range values {
		col, row := i/rows, i%rows
		putFloat(b[col*stride+row*4:], v)
	}
}

func getColumns(b []byte, values []float32, rows, stride int) {
	for i := range values {
		col, row := i/rows, i%rows
		values[i] = getFloat(b[col*stride+row*4:])
	}
}
