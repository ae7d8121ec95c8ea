package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/gridfx/grid"
)

// StructuredBuffer is a storage buffer of fixed-stride elements. It implements grid.Buffer.
type StructuredBuffer struct {
	Label  string
	buffer *wgpu.Buffer
	count  int
	stride int
}

func (b *StructuredBuffer) Count() int  { return b.count }
func (b *StructuredBuffer) Stride() int { return b.stride }

// Raw returns the underlying buffer. It panics after Release.
func (b *StructuredBuffer) Raw() *wgpu.Buffer {
	if b.buffer == nil {
		panic(fmt.Sprintf("gpu: buffer %q used after release", b.Label))
	}
	return b.buffer
}

func (b *StructuredBuffer) Release() {
	if b.buffer == nil {
		return
	}
	b.buffer.Release()
	b.buffer = nil
}

func asStructuredBuffer(buf grid.Buffer) *StructuredBuffer {
	sb, ok := buf.(*StructuredBuffer)
	if !ok {
		panic(fmt.Sprintf("gpu: expected *gpu.StructuredBuffer, got %T", buf))
	}
	return sb
}

// Device wraps the wgpu device and queue shared by every GPU object of the grid.
type Device struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
}

func NewDevice(device *wgpu.Device, queue *wgpu.Queue) *Device {
	return &Device{Device: device, Queue: queue}
}

// NewStructuredBuffer allocates a zeroed storage buffer. It is also usable as a vertex
// buffer so render stages can read it without a copy.
func (d *Device) NewStructuredBuffer(label string, count, stride int) (grid.Buffer, error) {
	size := uint64(count * stride)
	// wgpu rejects zero-sized bindings
	if size == 0 {
		size = uint64(stride)
	}
	if size%4 != 0 {
		size += 4 - (size % 4)
	}
	buf, err := d.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create buffer %q: %w", label, err)
	}
	return &StructuredBuffer{Label: label, buffer: buf, count: count, stride: stride}, nil
}

func (d *Device) newUniformBuffer(label string, size int) (*wgpu.Buffer, error) {
	buf, err := d.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create uniform buffer %q: %w", label, err)
	}
	return buf, nil
}

func (d *Device) newShaderModule(label, code string) (*wgpu.ShaderModule, error) {
	module, err := d.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create shader module %q: %w", label, err)
	}
	return module, nil
}
