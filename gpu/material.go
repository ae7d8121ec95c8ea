package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridfx/grid"
)

const (
	PropViewProj = "_ViewProj"
	PropTint     = "_Tint"
)

// materialFields mirrors `struct Material` in grid_points.wgsl.
var materialFields = []UniformField{
	{Name: PropViewProj, Kind: FieldMat4},
	{Name: grid.PropDimensions, Kind: FieldVec4},
	{Name: grid.PropConverge, Kind: FieldVec4},
	{Name: PropTint, Kind: FieldVec4},
}

const (
	materialPositionsBinding = 0
	materialUniformBinding   = 1
)

// PointMaterial draws a grid mesh as points, reading each point's animated position
// from the `_Positions` buffer written by the compute kernel. It implements grid.Material.
type PointMaterial struct {
	Label string

	device     *Device
	pipeline   *wgpu.RenderPipeline
	uniforms   *UniformBlock
	uniformBuf *wgpu.Buffer
	positions  *StructuredBuffer
	bindGroup  *wgpu.BindGroup
}

func NewPointMaterial(device *Device, label, source string, colorFormat, depthFormat wgpu.TextureFormat) (*PointMaterial, error) {
	module, err := device.newShaderModule(label, source)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	pipeline, err := device.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: label,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: grid.CellStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{{
					Format:         wgpu.VertexFormatFloat32x3,
					Offset:         0,
					ShaderLocation: 0,
				}},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    colorFormat,
				Blend:     nil,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyPointList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to create render pipeline %q: %w", label, err)
	}

	uniforms := NewUniformBlock(materialFields...)
	uniformBuf, err := device.newUniformBuffer(label+"/material", uniforms.Size())
	if err != nil {
		pipeline.Release()
		return nil, err
	}
	uniforms.SetVector(grid.PropertyToID(PropTint), mgl32.Vec4{1, 1, 1, 1})

	return &PointMaterial{
		Label:      label,
		device:     device,
		pipeline:   pipeline,
		uniforms:   uniforms,
		uniformBuf: uniformBuf,
	}, nil
}

func (m *PointMaterial) SetBuffer(id grid.PropertyID, buf grid.Buffer) {
	if id != grid.PropertyToID(grid.PropPositions) {
		panic(fmt.Sprintf("gpu: material %s has no buffer input %s", m.Label, id.Name()))
	}
	m.positions = asStructuredBuffer(buf)
	if m.bindGroup != nil {
		m.bindGroup.Release()
		m.bindGroup = nil
	}
}

func (m *PointMaterial) SetVector(id grid.PropertyID, value mgl32.Vec4) {
	m.uniforms.SetVector(id, value)
}

func (m *PointMaterial) SetMatrix(id grid.PropertyID, value mgl32.Mat4) {
	m.uniforms.SetMatrix(id, value)
}

func (m *PointMaterial) ensureBindGroup() error {
	if m.bindGroup != nil {
		return nil
	}
	if m.positions == nil {
		return fmt.Errorf("gpu: material %s has no positions buffer", m.Label)
	}

	layout := m.pipeline.GetBindGroupLayout(0)
	defer layout.Release()

	bindGroup, err := m.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  m.Label,
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: materialPositionsBinding, Buffer: m.positions.Raw(), Size: wgpu.WholeSize},
			{Binding: materialUniformBinding, Buffer: m.uniformBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create bind group for %s: %w", m.Label, err)
	}
	m.bindGroup = bindGroup
	return nil
}

// Draw records the point draw into pass.
func (m *PointMaterial) Draw(pass *wgpu.RenderPassEncoder, mesh *MeshBuffers) error {
	if mesh.IndexCount == 0 {
		return nil
	}
	m.positions.Raw()
	if err := m.ensureBindGroup(); err != nil {
		return err
	}
	if data := m.uniforms.Flush(); data != nil {
		if err := m.device.Queue.WriteBuffer(m.uniformBuf, 0, data); err != nil {
			return err
		}
	}

	pass.SetPipeline(m.pipeline)
	pass.SetBindGroup(0, m.bindGroup, nil)
	pass.SetVertexBuffer(0, mesh.Vertices, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(mesh.Indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(mesh.IndexCount, 1, 0, 0, 0)
	return nil
}

func (m *PointMaterial) Release() {
	if m.bindGroup != nil {
		m.bindGroup.Release()
		m.bindGroup = nil
	}
	if m.uniformBuf != nil {
		m.uniformBuf.Release()
		m.uniformBuf = nil
	}
	if m.pipeline != nil {
		m.pipeline.Release()
		m.pipeline = nil
	}
	m.positions = nil
}

// MeshBuffers holds a grid.Mesh uploaded to the GPU.
type MeshBuffers struct {
	Vertices   *wgpu.Buffer
	Indices    *wgpu.Buffer
	IndexCount uint32
	Bounds     grid.AABB
}

func (d *Device) UploadMesh(mesh *grid.Mesh) (*MeshBuffers, error) {
	out := &MeshBuffers{Bounds: mesh.Bounds}
	if mesh.IndexCount() == 0 {
		return out, nil
	}

	vertices, err := d.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    mesh.Name + " Vertex Buffer",
		Contents: wgpu.ToBytes(mesh.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: failed to upload %s vertices: %w", mesh.Name, err)
	}
	indices, err := d.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    mesh.Name + " Index Buffer",
		Contents: wgpu.ToBytes(mesh.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertices.Release()
		return nil, fmt.Errorf("gpu: failed to upload %s indices: %w", mesh.Name, err)
	}

	out.Vertices = vertices
	out.Indices = indices
	out.IndexCount = uint32(mesh.IndexCount())
	return out, nil
}

func (b *MeshBuffers) Release() {
	if b.Vertices != nil {
		b.Vertices.Release()
		b.Vertices = nil
	}
	if b.Indices != nil {
		b.Indices.Release()
		b.Indices = nil
	}
	b.IndexCount = 0
}
