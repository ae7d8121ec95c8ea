package gridfx

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/gridfx/grid"
)

func TestOrbit_PositionAt(t *testing.T) {
	o := Orbit{Center: mgl32.Vec3{1, 2, 3}, Radius: 4, Speed: math.Pi / 2}

	assertVec3InDelta(t, mgl32.Vec3{5, 2, 3}, o.PositionAt(0))
	assertVec3InDelta(t, mgl32.Vec3{1, 2, 7}, o.PositionAt(1))
	assertVec3InDelta(t, mgl32.Vec3{-3, 2, 3}, o.PositionAt(2))
}

func TestConvergeModule_OrbitFollowsTime(t *testing.T) {
	target := NewConvergeTarget(mgl32.Vec3{9, 9, 9})
	target.Orbit = &Orbit{Radius: 2, Speed: 1}

	app := NewAppBuilder().
		UseStates(StateRunning, StateExiting).
		UseModule(ConvergeModule{Target: target}).
		Build()

	start := time.Now()
	app.addResources(&Time{Start: start, Time: start.Add(time.Second)})
	app.Step()

	var sampled grid.Target = target
	assertVec3InDelta(t, mgl32.Vec3{2 * float32(math.Cos(1)), 0, 2 * float32(math.Sin(1))}, sampled.LocalPosition())
}

func TestConvergeModule_StaticWithoutOrbit(t *testing.T) {
	target := NewConvergeTarget(mgl32.Vec3{1, 2, 3})
	app := NewAppBuilder().
		UseStates(StateRunning, StateExiting).
		UseModule(ConvergeModule{Target: target}).
		Build()
	app.addResources(&Time{Start: time.Now(), Time: time.Now()})

	app.Step()
	app.Step()

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, target.LocalPosition())
}
