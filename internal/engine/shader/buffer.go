package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-world/pkg/shadertypes"
)

// UniformBuffer is a std140 uniform buffer holding one record, bound to a
// fixed binding point.
type UniformBuffer struct {
	id      uint32
	binding uint32
	name    string
	data    []byte
}

// NewUniformBuffer allocates a buffer sized for r and binds it to binding.
func NewUniformBuffer(r shadertypes.Record, binding uint32) *UniformBuffer {
	b := &UniformBuffer{
		binding: binding,
		name:    r.TypeName(),
		data:    make([]byte, 0, shadertypes.SizeOf(r, shadertypes.Std140)),
	}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferData(gl.UNIFORM_BUFFER, cap(b.data), nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, b.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return b
}

// Attach connects the program's block named after the record to the
// buffer's binding point.
func (b *UniformBuffer) Attach(program uint32) error {
	index := gl.GetUniformBlockIndex(program, gl.Str(b.name+"\x00"))
	if index == gl.INVALID_INDEX {
		return fmt.Errorf("uniform block %s not found in program %d", b.name, program)
	}
	gl.UniformBlockBinding(program, index, b.binding)
	return nil
}

// Update uploads r, which must be of the record type the buffer was made for.
func (b *UniformBuffer) Update(r shadertypes.Record) {
	b.data = shadertypes.Append(b.data[:0], r, shadertypes.Std140)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(b.data), gl.Ptr(b.data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

// Delete frees the buffer.
func (b *UniformBuffer) Delete() {
	gl.DeleteBuffers(1, &b.id)
}

// VertexBuffer is an indexed mesh in a vertex array object. Vertices are
// stored packed.
type VertexBuffer struct {
	vao, vbo, ebo uint32
	count         int32
}

// NewVertexBuffer uploads vertices and indices and enables one attribute per
// vertex field (per column for matrices), in declaration order.
func NewVertexBuffer[T any, P interface {
	*T
	shadertypes.Record
}](vertices []T, indices []uint32) *VertexBuffer {
	b := &VertexBuffer{count: int32(len(indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	data := shadertypes.MarshalSlice[T, P](vertices, shadertypes.Packed)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}

	for _, a := range shadertypes.VertexAttributes(P(new(T))) {
		if a.Integer {
			gl.VertexAttribIPointerWithOffset(a.Location, a.Components, gl.INT, a.Stride, uintptr(a.Offset))
		} else {
			gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, a.Stride, uintptr(a.Offset))
		}
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return b
}

// Draw draws every index as triangles.
func (b *VertexBuffer) Draw() {
	b.DrawRange(0, b.count)
}

// DrawRange draws count indices starting at index start.
func (b *VertexBuffer) DrawRange(start, count int32) {
	if count <= 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(int(start)*4))
	gl.BindVertexArray(0)
}

// Delete frees the GL objects.
func (b *VertexBuffer) Delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
}
