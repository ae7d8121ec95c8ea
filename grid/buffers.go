package grid

import (
	"fmt"
)

// CellStride is the size of one buffer element: 3 float32.
const CellStride = 3 * 4

// BufferSet owns the positions and pre-offset buffers of one grid.
type BufferSet struct {
	Positions Buffer
	PreOffset Buffer
	released  bool
}

func NewBufferSet(alloc BufferAllocator, label string, count int) (*BufferSet, error) {
	positions, err := alloc.NewStructuredBuffer(label+"/positions", count, CellStride)
	if err != nil {
		return nil, fmt.Errorf("grid: failed to create positions buffer: %w", err)
	}
	preOffset, err := alloc.NewStructuredBuffer(label+"/pre_offset", count, CellStride)
	if err != nil {
		positions.Release()
		return nil, fmt.Errorf("grid: failed to create pre-offset buffer: %w", err)
	}
	return &BufferSet{Positions: positions, PreOffset: preOffset}, nil
}

// Bind hands the same buffer instances to the kernel and the material, so the render
// stage reads what the compute stage wrote without a copy.
func (s *BufferSet) Bind(kernel Kernel, material Material, positions, preOffset PropertyID) {
	if s.released {
		panic("grid: binding released buffers")
	}
	kernel.SetBuffer(positions, s.Positions)
	kernel.SetBuffer(preOffset, s.PreOffset)
	material.SetBuffer(positions, s.Positions)
}

func (s *BufferSet) Released() bool {
	return s.released
}

// Release frees both buffers. Only the first call has an effect.
func (s *BufferSet) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.Positions.Release()
	s.PreOffset.Release()
}
