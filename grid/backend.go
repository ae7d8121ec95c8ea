package grid

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Buffer is a fixed-stride GPU array.
type Buffer interface {
	Count() int
	Stride() int
	Release()
}

// BufferAllocator creates structured buffers usable by both compute and render stages.
type BufferAllocator interface {
	NewStructuredBuffer(label string, count, stride int) (Buffer, error)
}

// ComputeProgram is a compiled compute shader. Scalar and vector inputs are program-wide.
type ComputeProgram interface {
	FindKernel(entryPoint string) (Kernel, error)
	SetInts(id PropertyID, values ...int32)
	SetFloat(id PropertyID, value float32)
	SetVector(id PropertyID, value mgl32.Vec4)
}

// Kernel is one entry point of a ComputeProgram.
type Kernel interface {
	// ThreadGroupSize is the @workgroup_size the entry point was compiled with.
	ThreadGroupSize() [3]uint32
	SetBuffer(id PropertyID, buf Buffer)
	Dispatch(groups ThreadGroupCounts) error
}

// Material renders the grid mesh and reads the positions written by the kernel.
type Material interface {
	SetBuffer(id PropertyID, buf Buffer)
	SetVector(id PropertyID, value mgl32.Vec4)
}

// Target provides the convergence point, sampled every frame.
type Target interface {
	LocalPosition() mgl32.Vec3
}

// StaticTarget is a Target that never moves.
type StaticTarget mgl32.Vec3

func (t StaticTarget) LocalPosition() mgl32.Vec3 {
	return mgl32.Vec3(t)
}
