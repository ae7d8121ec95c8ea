package gridfx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestViewportCamera_MovesInLocalSpace(t *testing.T) {
	c := NewViewportCamera(mgl32.Vec3{0, 0, 10}, 0, 0)
	c.MoveSpeed = 2

	c.Step(mgl32.Vec3{0, 0, 1}, mgl32.Vec2{}, false)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 8}, c.Transform.Position)

	c.Step(mgl32.Vec3{1, 1, 0}, mgl32.Vec2{}, false)
	assertVec3InDelta(t, mgl32.Vec3{2, 2, 8}, c.Transform.Position)
}

func TestViewportCamera_RotatesOnlyWhileHeld(t *testing.T) {
	c := NewViewportCamera(mgl32.Vec3{}, 0, 0)
	c.RotateSpeed = 90

	c.Step(mgl32.Vec3{}, mgl32.Vec2{1, 0}, false)
	assert.Equal(t, float32(0), c.Yaw)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, c.Transform.Forward())

	// moving the mouse right turns the camera right
	c.Step(mgl32.Vec3{}, mgl32.Vec2{1, 0}, true)
	assert.Equal(t, float32(-90), c.Yaw)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, c.Transform.Forward())

	// forward movement follows the new heading
	c.MoveSpeed = 1
	c.Step(mgl32.Vec3{0, 0, 1}, mgl32.Vec2{}, false)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, c.Transform.Position)
}

func TestViewportCamera_PitchIsClamped(t *testing.T) {
	c := NewViewportCamera(mgl32.Vec3{}, 0, 0)

	// cursor moving up reads as a negative delta and looks up
	c.Step(mgl32.Vec3{}, mgl32.Vec2{0, -1000}, true)
	assert.Equal(t, float32(89), c.Pitch)
	assert.Greater(t, c.Transform.Forward().Y(), float32(0.99))

	c.Step(mgl32.Vec3{}, mgl32.Vec2{0, 5000}, true)
	assert.Equal(t, float32(-89), c.Pitch)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, c.Transform.Right())
}

func TestViewportCamera_ViewProjection(t *testing.T) {
	c := NewViewportCamera(mgl32.Vec3{0, 0, 10}, 0, 0)

	clip := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Greater(t, clip.W(), float32(0))
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)

	behind := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 20, 1})
	assert.Less(t, behind.W(), float32(0))
}
