package shadertypes

import (
	"fmt"
	"strings"
)

// FieldLayout is the placement of one field.
type FieldLayout struct {
	Name   string
	Kind   Kind
	Offset int
	Size   int
	// Stride is the distance between matrix columns, or the slot size of a
	// scalar or vector.
	Stride int
}

// Layout is the placement of every field of a record under one rule set.
type Layout struct {
	Name   string
	Rules  Rules
	Fields []FieldLayout
	Size   int
	Align  int
}

// LayoutOf computes the layout of r under the given rules. The field values
// of r are not read.
func LayoutOf(r Record, rules Rules) Layout {
	return computeLayout(r.TypeName(), r.Fields(), rules)
}

// SizeOf returns the encoded size of r in bytes.
func SizeOf(r Record, rules Rules) int {
	return LayoutOf(r, rules).Size
}

func computeLayout(name string, fields []Field, rules Rules) Layout {
	l := Layout{
		Name:   name,
		Rules:  rules,
		Fields: make([]FieldLayout, len(fields)),
	}

	offset, maxAlign := 0, 4
	for i, f := range fields {
		align := rules.Alignment(f.Kind)
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignUp(offset, align)
		size := rules.Size(f.Kind)
		l.Fields[i] = FieldLayout{
			Name:   f.Name,
			Kind:   f.Kind,
			Offset: offset,
			Size:   size,
			Stride: rules.ColumnStride(f.Kind),
		}
		offset += size
	}

	l.Align = rules.structAlignment(maxAlign)
	l.Size = alignUp(offset, l.Align)
	return l
}

// Field returns the layout of the named field.
func (l Layout) Field(name string) (FieldLayout, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldLayout{}, false
}

// Offset returns the byte offset of the named field, or -1.
func (l Layout) Offset(name string) int {
	if f, ok := l.Field(name); ok {
		return f.Offset
	}
	return -1
}

// String renders the layout as an offset table.
func (l Layout) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s) size=%d align=%d\n", l.Name, l.Rules, l.Size, l.Align)
	for _, f := range l.Fields {
		fmt.Fprintf(&sb, "  %4d  %-6s %-20s %3d bytes\n", f.Offset, f.Kind, f.Name, f.Size)
	}
	return sb.String()
}
