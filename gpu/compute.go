package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridfx/grid"
)

// computeParamsFields mirrors `struct Params` in grid_compute.wgsl.
var computeParamsFields = []UniformField{
	{Name: grid.PropDimensions, Kind: FieldInt3},
	{Name: grid.PropTime, Kind: FieldFloat},
	{Name: grid.PropConverge, Kind: FieldVec4},
	{Name: grid.PropSpeed, Kind: FieldFloat},
	{Name: grid.PropMaxOffset, Kind: FieldFloat},
	{Name: grid.PropConvergeRadius, Kind: FieldFloat},
	{Name: grid.PropConvergeStrength, Kind: FieldFloat},
	{Name: grid.PropConvergeSpeed, Kind: FieldFloat},
}

// @group(0) bindings of grid_compute.wgsl
var computeBufferBindings = map[string]uint32{
	grid.PropPositions: 0,
	grid.PropPreOffset: 1,
}

const computeParamsBinding = 2

// ComputeProgram is a WGSL compute shader with one uniform block shared by its entry
// points. It implements grid.ComputeProgram.
type ComputeProgram struct {
	Label string

	device    *Device
	module    *wgpu.ShaderModule
	sizes     map[string][3]uint32
	params    *UniformBlock
	paramsBuf *wgpu.Buffer
	kernels   map[string]*ComputeKernel
}

func NewComputeProgram(device *Device, label, source string) (*ComputeProgram, error) {
	sizes, err := ParseWorkgroupSizes(source)
	if err != nil {
		return nil, err
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("gpu: %s declares no compute entry point", label)
	}

	module, err := device.newShaderModule(label, source)
	if err != nil {
		return nil, err
	}

	params := NewUniformBlock(computeParamsFields...)
	paramsBuf, err := device.newUniformBuffer(label+"/params", params.Size())
	if err != nil {
		module.Release()
		return nil, err
	}

	return &ComputeProgram{
		Label:     label,
		device:    device,
		module:    module,
		sizes:     sizes,
		params:    params,
		paramsBuf: paramsBuf,
		kernels:   make(map[string]*ComputeKernel),
	}, nil
}

func (p *ComputeProgram) FindKernel(entryPoint string) (grid.Kernel, error) {
	if k, ok := p.kernels[entryPoint]; ok {
		return k, nil
	}
	size, ok := p.sizes[entryPoint]
	if !ok {
		return nil, fmt.Errorf("gpu: %s has no compute entry point %q", p.Label, entryPoint)
	}

	pipeline, err := p.device.Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: p.Label + "/" + entryPoint,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     p.module,
			EntryPoint: entryPoint,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create compute pipeline %q: %w", entryPoint, err)
	}

	bindings := make(map[grid.PropertyID]uint32, len(computeBufferBindings))
	for name, binding := range computeBufferBindings {
		bindings[grid.PropertyToID(name)] = binding
	}

	k := &ComputeKernel{
		EntryPoint: entryPoint,
		program:    p,
		size:       size,
		pipeline:   pipeline,
		bindings:   bindings,
		buffers:    make(map[grid.PropertyID]*StructuredBuffer),
	}
	p.kernels[entryPoint] = k
	return k, nil
}

func (p *ComputeProgram) SetInts(id grid.PropertyID, values ...int32) {
	p.params.SetInts(id, values...)
}

func (p *ComputeProgram) SetFloat(id grid.PropertyID, value float32) {
	p.params.SetFloat(id, value)
}

func (p *ComputeProgram) SetVector(id grid.PropertyID, value mgl32.Vec4) {
	p.params.SetVector(id, value)
}

func (p *ComputeProgram) Release() {
	for _, k := range p.kernels {
		k.release()
	}
	p.kernels = map[string]*ComputeKernel{}
	if p.paramsBuf != nil {
		p.paramsBuf.Release()
		p.paramsBuf = nil
	}
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
}

// ComputeKernel is one entry point of a ComputeProgram. It implements grid.Kernel.
type ComputeKernel struct {
	EntryPoint string

	program   *ComputeProgram
	size      [3]uint32
	pipeline  *wgpu.ComputePipeline
	bindings  map[grid.PropertyID]uint32
	buffers   map[grid.PropertyID]*StructuredBuffer
	bindGroup *wgpu.BindGroup
}

func (k *ComputeKernel) ThreadGroupSize() [3]uint32 {
	return k.size
}

func (k *ComputeKernel) SetBuffer(id grid.PropertyID, buf grid.Buffer) {
	if _, ok := k.bindings[id]; !ok {
		panic(fmt.Sprintf("gpu: kernel %s has no buffer input %s", k.EntryPoint, id.Name()))
	}
	k.buffers[id] = asStructuredBuffer(buf)
	k.invalidateBindGroup()
}

func (k *ComputeKernel) invalidateBindGroup() {
	if k.bindGroup != nil {
		k.bindGroup.Release()
		k.bindGroup = nil
	}
}

func (k *ComputeKernel) ensureBindGroup() error {
	if k.bindGroup != nil {
		return nil
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(k.bindings)+1)
	for id, binding := range k.bindings {
		buf, ok := k.buffers[id]
		if !ok {
			return fmt.Errorf("gpu: kernel %s input %s is not bound", k.EntryPoint, id.Name())
		}
		entries = append(entries, wgpu.BindGroupEntry{Binding: binding, Buffer: buf.Raw(), Size: wgpu.WholeSize})
	}
	entries = append(entries, wgpu.BindGroupEntry{Binding: computeParamsBinding, Buffer: k.program.paramsBuf, Size: wgpu.WholeSize})

	layout := k.pipeline.GetBindGroupLayout(0)
	defer layout.Release()

	bindGroup, err := k.program.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   k.program.Label + "/" + k.EntryPoint,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create bind group for %s: %w", k.EntryPoint, err)
	}
	k.bindGroup = bindGroup
	return nil
}

// Dispatch uploads pending parameters and submits one compute pass. The render pass
// that reads the same buffers is submitted later on the same queue, which orders it
// after this dispatch.
func (k *ComputeKernel) Dispatch(groups grid.ThreadGroupCounts) error {
	// Raw panics if a bound buffer was released.
	for _, buf := range k.buffers {
		buf.Raw()
	}
	if err := k.ensureBindGroup(); err != nil {
		return err
	}

	device := k.program.device
	if data := k.program.params.Flush(); data != nil {
		if err := device.Queue.WriteBuffer(k.program.paramsBuf, 0, data); err != nil {
			return err
		}
	}

	encoder, err := device.Device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(k.pipeline)
	pass.SetBindGroup(0, k.bindGroup, nil)
	pass.DispatchWorkgroups(groups.X(), groups.Y(), groups.Z())
	if err := pass.End(); err != nil {
		return err
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	device.Queue.Submit(cmdBuffer)
	return nil
}

func (k *ComputeKernel) release() {
	k.invalidateBindGroup()
	if k.pipeline != nil {
		k.pipeline.Release()
		k.pipeline = nil
	}
	k.buffers = map[grid.PropertyID]*StructuredBuffer{}
}
