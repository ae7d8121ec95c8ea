package gridfx

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridfx/gpu"
	"github.com/gekko3d/gridfx/grid"
	"github.com/gekko3d/gridfx/shaders"
)

// clipDepthFix remaps the OpenGL style [-w, w] depth produced by mgl32.Perspective to
// the [0, w] range WebGPU clips against.
var clipDepthFix = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// GridModule animates and draws the point grid while the app is in StateRunning.
type GridModule struct {
	Dimensions grid.Dimensions
	Parameters grid.ShaderParameters
	Tint       mgl32.Vec4
}

// GridState is the running grid. Animator is nil until StateRunning is entered.
type GridState struct {
	Dimensions grid.Dimensions
	Parameters grid.ShaderParameters
	Tint       mgl32.Vec4

	Animator *grid.Animator
	Culled   bool

	program  *gpu.ComputeProgram
	material *gpu.PointMaterial
	mesh     *gpu.MeshBuffers
	viewProj grid.PropertyID
	tint     grid.PropertyID
}

func (m GridModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&GridState{
		Dimensions: m.Dimensions,
		Parameters: m.Parameters,
		Tint:       m.Tint,
	})

	app.UseSystem(
		System(gridSetupSystem).
			InStage(Update).
			InState(OnEnter(StateRunning)),
	)
	app.UseSystem(
		System(gridUpdateSystem).
			InStage(PostUpdate).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(gridRenderSystem).
			InStage(Render).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(gridDisposeSystem).
			InStage(Finale).
			InState(OnExit(StateRunning)),
	)
}

func gridSetupSystem(s *GridState, gpuState *GpuState, target *ConvergeTarget, cmd *Commands) {
	logger := cmd.Logger()
	device := gpuState.Device

	program, err := gpu.NewComputeProgram(device, "grid compute", shaders.GridComputeWGSL)
	if err != nil {
		logger.Errorf("Grid compute program: %v", err)
		panic(err)
	}
	material, err := gpu.NewPointMaterial(device, "grid points", shaders.GridPointsWGSL, gpuState.ColorFormat(), DepthFormat)
	if err != nil {
		program.Release()
		logger.Errorf("Grid material: %v", err)
		panic(err)
	}

	animator := grid.NewAnimator(grid.AnimatorConfig{
		Dimensions: s.Dimensions,
		Parameters: s.Parameters,
		Program:    program,
		Material:   material,
		Allocator:  device,
		Target:     target,
	})
	if err := animator.Setup(); err != nil {
		material.Release()
		program.Release()
		logger.Errorf("Grid %s setup failed: %v", animator.ID, err)
		panic(err)
	}

	mesh, err := device.UploadMesh(animator.Mesh())
	if err != nil {
		animator.Dispose()
		material.Release()
		program.Release()
		logger.Errorf("Grid %s mesh upload failed: %v", animator.ID, err)
		panic(err)
	}

	s.viewProj = grid.PropertyToID(gpu.PropViewProj)
	s.tint = grid.PropertyToID(gpu.PropTint)
	material.SetVector(s.tint, s.Tint)

	s.Animator = animator
	s.program = program
	s.material = material
	s.mesh = mesh

	buffers := animator.Buffers()
	logger.Infof("Grid %s ready: %s cells, %v thread groups", animator.ID, animator.Dimensions(), animator.ThreadGroups())
	logger.Debugf("Grid %s buffers %d x %dB, bounds %v..%v", animator.ID,
		buffers.Positions.Count(), buffers.Positions.Stride(), mesh.Bounds.Min, mesh.Bounds.Max)
}

func gridUpdateSystem(s *GridState, t *Time, cmd *Commands) {
	if err := s.Animator.Update(t.Elapsed()); err != nil {
		cmd.Logger().Errorf("Grid %s update failed: %v", s.Animator.ID, err)
		panic(err)
	}
}

func gridRenderSystem(s *GridState, frame *RenderFrame, gpuState *GpuState, camera *ViewportCamera, cmd *Commands) {
	if !frame.Active() {
		return
	}

	camera.Aspect = gpuState.AspectRatio()

	viewProj := camera.ViewProjection()
	s.Culled = !s.mesh.Bounds.IntersectsClip(viewProj)
	if s.Culled {
		return
	}

	s.material.SetMatrix(s.viewProj, clipDepthFix.Mul4(viewProj))
	if err := s.material.Draw(frame.Pass, s.mesh); err != nil {
		cmd.Logger().Errorf("Grid %s draw failed: %v", s.Animator.ID, err)
	}
}

func gridDisposeSystem(s *GridState, cmd *Commands) {
	if s.Animator == nil {
		return
	}
	s.Animator.Dispose()
	s.mesh.Release()
	s.material.Release()
	s.program.Release()
	cmd.Logger().Infof("Grid %s disposed", s.Animator.ID)
}
