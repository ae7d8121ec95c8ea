package gridfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit moves a ConvergeTarget on a horizontal circle around Center. Speed is in
// radians per second.
type Orbit struct {
	Center mgl32.Vec3
	Radius float32
	Speed  float32
}

func (o Orbit) PositionAt(seconds float32) mgl32.Vec3 {
	angle := float64(seconds * o.Speed)
	return o.Center.Add(mgl32.Vec3{
		o.Radius * float32(math.Cos(angle)),
		0,
		o.Radius * float32(math.Sin(angle)),
	})
}

// ConvergeTarget is the point the grid is pulled towards. Without an Orbit it stays
// wherever its Transform is put.
type ConvergeTarget struct {
	Transform Transform
	Orbit     *Orbit
}

func NewConvergeTarget(position mgl32.Vec3) *ConvergeTarget {
	target := &ConvergeTarget{Transform: NewTransform()}
	target.Transform.Position = position
	return target
}

func (t *ConvergeTarget) LocalPosition() mgl32.Vec3 {
	return t.Transform.LocalPosition()
}

type ConvergeModule struct {
	Target *ConvergeTarget
}

func (m ConvergeModule) Install(app *App, cmd *Commands) {
	target := m.Target
	if target == nil {
		target = NewConvergeTarget(mgl32.Vec3{})
	}
	cmd.AddResources(target)
	app.UseSystem(
		System(convergeOrbitSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
}

func convergeOrbitSystem(target *ConvergeTarget, t *Time) {
	if target.Orbit == nil {
		return
	}
	target.Transform.Position = target.Orbit.PositionAt(t.Elapsed())
}
