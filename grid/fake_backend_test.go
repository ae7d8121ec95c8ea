package grid

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeBuffer struct {
	label    string
	count    int
	stride   int
	releases int
}

func (b *fakeBuffer) Count() int  { return b.count }
func (b *fakeBuffer) Stride() int { return b.stride }
func (b *fakeBuffer) Release()    { b.releases++ }

type fakeAllocator struct {
	buffers []*fakeBuffer
	failAt  int // 1-based allocation that fails, 0 never
}

func (a *fakeAllocator) NewStructuredBuffer(label string, count, stride int) (Buffer, error) {
	if a.failAt > 0 && len(a.buffers)+1 == a.failAt {
		return nil, errors.New("out of memory")
	}
	buf := &fakeBuffer{label: label, count: count, stride: stride}
	a.buffers = append(a.buffers, buf)
	return buf, nil
}

type push struct {
	id     PropertyID
	floats []float32
	ints   []int32
}

type fakeProgram struct {
	kernels map[string]*fakeKernel
	pushes  []push
}

func newFakeProgram(size [3]uint32) *fakeProgram {
	return &fakeProgram{kernels: map[string]*fakeKernel{
		KernelName: {size: size, buffers: map[PropertyID]Buffer{}},
	}}
}

func (p *fakeProgram) FindKernel(entryPoint string) (Kernel, error) {
	if k, ok := p.kernels[entryPoint]; ok {
		return k, nil
	}
	return nil, errors.New("no such entry point")
}

func (p *fakeProgram) SetInts(id PropertyID, values ...int32) {
	p.pushes = append(p.pushes, push{id: id, ints: append([]int32(nil), values...)})
}

func (p *fakeProgram) SetFloat(id PropertyID, value float32) {
	p.pushes = append(p.pushes, push{id: id, floats: []float32{value}})
}

func (p *fakeProgram) SetVector(id PropertyID, value mgl32.Vec4) {
	p.pushes = append(p.pushes, push{id: id, floats: value[:]})
}

type fakeKernel struct {
	size        [3]uint32
	buffers     map[PropertyID]Buffer
	dispatches  []ThreadGroupCounts
	dispatchErr error
}

func (k *fakeKernel) ThreadGroupSize() [3]uint32 { return k.size }

func (k *fakeKernel) SetBuffer(id PropertyID, buf Buffer) { k.buffers[id] = buf }

func (k *fakeKernel) Dispatch(groups ThreadGroupCounts) error {
	if k.dispatchErr != nil {
		return k.dispatchErr
	}
	k.dispatches = append(k.dispatches, groups)
	return nil
}

type fakeMaterial struct {
	buffers map[PropertyID]Buffer
	vectors map[PropertyID]mgl32.Vec4
}

func newFakeMaterial() *fakeMaterial {
	return &fakeMaterial{buffers: map[PropertyID]Buffer{}, vectors: map[PropertyID]mgl32.Vec4{}}
}

func (m *fakeMaterial) SetBuffer(id PropertyID, buf Buffer)       { m.buffers[id] = buf }
func (m *fakeMaterial) SetVector(id PropertyID, value mgl32.Vec4) { m.vectors[id] = value }
