package shadertypes

import (
	"fmt"
	"strings"
)

// GLSLBlock returns a std140 uniform block declaration for r.
func GLSLBlock(r Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "layout(std140) uniform %s {\n", r.TypeName())
	for _, f := range r.Fields() {
		fmt.Fprintf(&sb, "    %s %s;\n", f.Kind, f.Name)
	}
	sb.WriteString("};\n")
	return sb.String()
}

// GLSLInputs returns vertex input declarations for r, numbered from the
// first attribute location.
func GLSLInputs(r Record, first uint32) string {
	var sb strings.Builder
	for _, a := range VertexAttributes(r) {
		if a.Column > 0 {
			continue
		}
		fmt.Fprintf(&sb, "layout(location = %d) in %s %s;\n", first+a.Location, a.Kind, a.Name)
	}
	return sb.String()
}

// MSLStruct returns the Metal simd typedef for r.
func MSLStruct(r Record) string {
	var sb strings.Builder
	sb.WriteString("typedef struct {\n")
	for _, f := range r.Fields() {
		fmt.Fprintf(&sb, "    %s %s;\n", f.Kind.MSL(), f.Name)
	}
	fmt.Fprintf(&sb, "} %s;\n", r.TypeName())
	return sb.String()
}

// Attribute describes how one vertex field (or one matrix column) is read
// from a packed vertex buffer.
type Attribute struct {
	Name       string
	Kind       Kind
	Location   uint32
	Column     int // matrix column, 0 otherwise
	Components int32
	Integer    bool
	Offset     int
	Stride     int32
}

// VertexAttributes returns the attribute bindings for a vertex record laid
// out with Packed rules. Matrix fields take one location per column.
func VertexAttributes(r Record) []Attribute {
	l := LayoutOf(r, Packed)
	var attrs []Attribute
	var loc uint32
	for _, f := range l.Fields {
		for col := 0; col < f.Kind.Columns(); col++ {
			attrs = append(attrs, Attribute{
				Name:       f.Name,
				Kind:       f.Kind,
				Location:   loc,
				Column:     col,
				Components: int32(f.Kind.Rows()),
				Integer:    f.Kind.Integer(),
				Offset:     f.Offset + col*f.Stride,
				Stride:     int32(l.Size),
			})
			loc++
		}
	}
	return attrs
}
