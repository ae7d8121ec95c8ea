package grid

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var (
	ErrKernelNotFound = errors.New("grid: compute kernel not found")
	ErrDisposed       = errors.New("grid: animator is disposed")
)

type State int

const (
	Uninitialized State = iota
	Ready
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type AnimatorConfig struct {
	Dimensions Dimensions
	Parameters ShaderParameters
	Program    ComputeProgram
	Material   Material
	Allocator  BufferAllocator
	Target     Target
}

// Animator drives the grid: it owns the GPU buffers, binds them to the compute program
// and the material, and dispatches the compute kernel once per frame.
type Animator struct {
	ID         string
	Parameters ShaderParameters

	dims      Dimensions
	program   ComputeProgram
	material  Material
	allocator BufferAllocator
	target    Target

	state   State
	props   propertyHandles
	kernel  Kernel
	buffers *BufferSet
	mesh    *Mesh
	groups  ThreadGroupCounts
}

func NewAnimator(cfg AnimatorConfig) *Animator {
	target := cfg.Target
	if target == nil {
		target = StaticTarget{}
	}
	return &Animator{
		ID:         uuid.NewString(),
		Parameters: cfg.Parameters,
		dims:       cfg.Dimensions,
		program:    cfg.Program,
		material:   cfg.Material,
		allocator:  cfg.Allocator,
		target:     target,
		state:      Uninitialized,
	}
}

func (a *Animator) State() State                    { return a.state }
func (a *Animator) Dimensions() Dimensions          { return a.dims }
func (a *Animator) Mesh() *Mesh                     { return a.mesh }
func (a *Animator) ThreadGroups() ThreadGroupCounts { return a.groups }
func (a *Animator) Buffers() *BufferSet             { return a.buffers }

// Setup moves the animator from Uninitialized to Ready. A failed setup releases
// whatever was allocated and leaves the animator Disposed.
func (a *Animator) Setup() error {
	switch a.state {
	case Ready:
		return nil
	case Disposed:
		return ErrDisposed
	}

	if err := a.setup(); err != nil {
		a.Dispose()
		return err
	}
	a.state = Ready
	return nil
}

func (a *Animator) setup() error {
	if err := a.dims.Validate(); err != nil {
		return err
	}

	a.props = resolvePropertyHandles()

	kernel, err := a.program.FindKernel(KernelName)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrKernelNotFound, KernelName, err)
	}
	a.kernel = kernel

	// Planned before any allocation so an invalid grid leaves nothing behind.
	groups, err := PlanThreadGroups(a.dims, kernel.ThreadGroupSize())
	if err != nil {
		return err
	}
	a.groups = groups

	buffers, err := NewBufferSet(a.allocator, "grid-"+a.ID, a.dims.CellCount())
	if err != nil {
		return err
	}
	a.buffers = buffers
	a.buffers.Bind(a.kernel, a.material, a.props.positions, a.props.preOffset)

	a.program.SetInts(a.props.dimensions, int32(a.dims.Width), int32(a.dims.Height), int32(a.dims.Depth))
	a.material.SetVector(a.props.dimensions, mgl32.Vec4{float32(a.dims.Width), float32(a.dims.Height), float32(a.dims.Depth), 0})

	a.mesh = BuildMesh(a.dims)
	return nil
}

// Update pushes this frame's parameters and dispatches the kernel. elapsed is the time
// in seconds since the host started. Calling Update outside of Ready is a programming
// error and panics.
func (a *Animator) Update(elapsed float32) error {
	if a.state != Ready {
		panic(fmt.Sprintf("grid: Update called on %s animator %s", a.state, a.ID))
	}

	p := a.Parameters
	converge := a.target.LocalPosition().Vec4(0)

	a.program.SetFloat(a.props.time, elapsed)
	a.program.SetFloat(a.props.speed, p.Speed)
	a.program.SetFloat(a.props.maxOffset, p.MaxOffset)
	a.program.SetFloat(a.props.convergeRadius, p.ConvergeRadius)
	a.program.SetFloat(a.props.convergeSpeed, p.ConvergeSpeed)
	a.program.SetFloat(a.props.convergeStrength, p.ConvergeStrength)
	a.program.SetVector(a.props.converge, converge)

	a.material.SetVector(a.props.converge, converge)

	if err := a.kernel.Dispatch(a.groups); err != nil {
		return fmt.Errorf("grid: dispatch %v failed: %w", a.groups, err)
	}
	return nil
}

// Dispose releases the GPU buffers. It is safe to call more than once and from any state.
func (a *Animator) Dispose() {
	if a.state == Disposed {
		return
	}
	a.buffers.Release()
	a.kernel = nil
	a.state = Disposed
}
