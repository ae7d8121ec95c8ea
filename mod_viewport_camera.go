package gridfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ViewportCamera is a free-fly camera. Movement is applied per frame in camera-local
// space; while the right mouse button is held the mouse turns it.
type ViewportCamera struct {
	Transform Transform

	// Yaw and Pitch in degrees. Roll is always 0.
	Yaw   float32
	Pitch float32

	MoveSpeed   float32
	RotateSpeed float32

	Fov    float32
	Near   float32
	Far    float32
	Aspect float32
}

func NewViewportCamera(position mgl32.Vec3, yaw, pitch float32) *ViewportCamera {
	c := &ViewportCamera{
		Transform:   NewTransform(),
		Yaw:         yaw,
		Pitch:       pitch,
		MoveSpeed:   1,
		RotateSpeed: 1,
		Fov:         60,
		Near:        0.1,
		Far:         500,
		Aspect:      16.0 / 9.0,
	}
	c.Transform.Position = position
	c.applyRotation()
	return c
}

// Step moves the camera by axes (Horizontal, Dolly, Vertical) and, when rotating is
// set, turns it by the mouse axes.
func (c *ViewportCamera) Step(axes mgl32.Vec3, mouse mgl32.Vec2, rotating bool) {
	local := mgl32.Vec3{axes[0], axes[1], -axes[2]}.Mul(c.MoveSpeed)
	c.Transform.Translate(local)

	if rotating {
		c.Yaw -= mouse[0] * c.RotateSpeed
		c.Pitch -= mouse[1] * c.RotateSpeed
		c.Pitch = mgl32.Clamp(c.Pitch, -89, 89)
		c.applyRotation()
	}
}

func (c *ViewportCamera) applyRotation() {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(c.Yaw), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(c.Pitch), mgl32.Vec3{1, 0, 0})
	c.Transform.Rotation = yaw.Mul(pitch).Normalize()
}

func (c *ViewportCamera) View() mgl32.Mat4 {
	return c.Transform.WorldToObject()
}

func (c *ViewportCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *ViewportCamera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// ViewportCameraModule installs Camera as a resource and drives it from Input.
type ViewportCameraModule struct {
	Camera *ViewportCamera
}

func (m ViewportCameraModule) Install(app *App, cmd *Commands) {
	camera := m.Camera
	if camera == nil {
		camera = NewViewportCamera(mgl32.Vec3{0, 0, 10}, 0, 0)
	}
	cmd.AddResources(camera)
	app.UseSystem(
		System(viewportCameraSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
}

func viewportCameraSystem(camera *ViewportCamera, input *Input) {
	camera.Step(input.MoveAxes(), input.MouseAxes(), input.Pressed[MouseButtonRight])
}
