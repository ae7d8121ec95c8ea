package gridfx

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClipDepthFix_MapsToWebGPUDepthRange(t *testing.T) {
	near, far := float32(0.5), float32(50)
	proj := clipDepthFix.Mul4(mgl32.Perspective(mgl32.DegToRad(60), 1, near, far))

	onNear := proj.Mul4x1(mgl32.Vec4{0, 0, -near, 1})
	onFar := proj.Mul4x1(mgl32.Vec4{0, 0, -far, 1})

	assert.InDelta(t, 0, onNear.Z()/onNear.W(), 1e-5)
	assert.InDelta(t, 1, onFar.Z()/onFar.W(), 1e-4)
}

func TestGpuState_AspectRatio(t *testing.T) {
	s := &GpuState{surfaceConfig: &wgpu.SurfaceConfiguration{Width: 1920, Height: 1080}}
	assert.InDelta(t, 16.0/9.0, s.AspectRatio(), 1e-6)

	s.surfaceConfig.Height = 0
	assert.Equal(t, float32(1), s.AspectRatio())
}
