package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridfx/grid"
)

type FieldKind int

const (
	FieldFloat FieldKind = iota // f32
	FieldInt3                   // vec3<i32>
	FieldVec4                   // vec4<f32>
	FieldMat4                   // mat4x4<f32>
)

// align and size per the WGSL host-shareable layout rules
func (k FieldKind) layout() (align, size int) {
	switch k {
	case FieldFloat:
		return 4, 4
	case FieldInt3:
		return 16, 12
	case FieldVec4:
		return 16, 16
	case FieldMat4:
		return 16, 64
	}
	panic(fmt.Sprintf("gpu: unknown uniform field kind %d", int(k)))
}

type UniformField struct {
	Name string
	Kind FieldKind
}

type uniformSlot struct {
	kind   FieldKind
	offset int
}

// UniformBlock is a CPU copy of a WGSL uniform struct. Fields are laid out in
// declaration order, so the WGSL struct must declare them in the same order.
type UniformBlock struct {
	data  []byte
	slots map[grid.PropertyID]uniformSlot
	dirty bool
}

func NewUniformBlock(fields ...UniformField) *UniformBlock {
	b := &UniformBlock{slots: make(map[grid.PropertyID]uniformSlot, len(fields))}

	offset := 0
	for _, f := range fields {
		align, size := f.Kind.layout()
		offset = alignUp(offset, align)
		b.slots[grid.PropertyToID(f.Name)] = uniformSlot{kind: f.Kind, offset: offset}
		offset += size
	}
	b.data = make([]byte, alignUp(offset, 16))
	b.dirty = true
	return b
}

func alignUp(v, align int) int {
	return (v + align - 1) / align * align
}

func (b *UniformBlock) Size() int {
	return len(b.data)
}

// Offset returns the byte offset of a field, or -1 when the block does not declare it.
func (b *UniformBlock) Offset(id grid.PropertyID) int {
	if slot, ok := b.slots[id]; ok {
		return slot.offset
	}
	return -1
}

func (b *UniformBlock) slot(id grid.PropertyID, kind FieldKind) (int, bool) {
	slot, ok := b.slots[id]
	if !ok {
		return 0, false
	}
	if slot.kind != kind {
		panic(fmt.Sprintf("gpu: uniform %s is not of kind %d", id.Name(), int(kind)))
	}
	return slot.offset, true
}

func (b *UniformBlock) putFloat(offset int, v float32) {
	binary.LittleEndian.PutUint32(b.data[offset:], math.Float32bits(v))
}

// SetFloat writes a scalar. Unknown ids are ignored and reported as false.
func (b *UniformBlock) SetFloat(id grid.PropertyID, v float32) bool {
	offset, ok := b.slot(id, FieldFloat)
	if !ok {
		return false
	}
	b.putFloat(offset, v)
	b.dirty = true
	return true
}

// SetInts writes up to three ints into a vec3<i32>; missing components are zero.
func (b *UniformBlock) SetInts(id grid.PropertyID, values ...int32) bool {
	offset, ok := b.slot(id, FieldInt3)
	if !ok {
		return false
	}
	for i := 0; i < 3; i++ {
		var v int32
		if i < len(values) {
			v = values[i]
		}
		binary.LittleEndian.PutUint32(b.data[offset+i*4:], uint32(v))
	}
	b.dirty = true
	return true
}

func (b *UniformBlock) SetVector(id grid.PropertyID, v mgl32.Vec4) bool {
	offset, ok := b.slot(id, FieldVec4)
	if !ok {
		return false
	}
	for i, c := range v {
		b.putFloat(offset+i*4, c)
	}
	b.dirty = true
	return true
}

// SetMatrix writes a column-major matrix, which is how both mgl32 and WGSL store them.
func (b *UniformBlock) SetMatrix(id grid.PropertyID, m mgl32.Mat4) bool {
	offset, ok := b.slot(id, FieldMat4)
	if !ok {
		return false
	}
	for i, c := range m {
		b.putFloat(offset+i*4, c)
	}
	b.dirty = true
	return true
}

func (b *UniformBlock) Dirty() bool {
	return b.dirty
}

// Flush returns the block contents if they changed since the last flush, or nil.
func (b *UniformBlock) Flush() []byte {
	if !b.Dirty() {
		return nil
	}
	b.dirty = false
	return b.data
}
