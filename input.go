package gridfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	KeyA int = iota
	KeyD
	KeyE
	KeyQ
	KeyS
	KeyW
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyEscape
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
	inputCount
)

// Axis names understood by Input.Axis.
const (
	AxisHorizontal = "Horizontal"
	AxisVertical   = "Vertical"
	AxisDolly      = "Dolly"
)

type axisBinding struct {
	positive []int
	negative []int
}

var axisBindings = map[string]axisBinding{
	AxisHorizontal: {positive: []int{KeyD, KeyRight}, negative: []int{KeyA, KeyLeft}},
	AxisVertical:   {positive: []int{KeyW, KeyUp}, negative: []int{KeyS, KeyDown}},
	AxisDolly:      {positive: []int{KeyE, KeyPageUp}, negative: []int{KeyQ, KeyPageDown}},
}

// MouseSensitivity scales raw cursor pixels into mouse axis units.
const MouseSensitivity = 0.1

type Input struct {
	Pressed      [inputCount]bool
	JustPressed  [inputCount]bool
	JustReleased [inputCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	cursorSeen bool
}

// Axis returns -1, 0 or 1 for a named key axis. Unknown names read as 0.
func (input *Input) Axis(name string) float32 {
	binding, ok := axisBindings[name]
	if !ok {
		return 0
	}
	var v float32
	for _, key := range binding.positive {
		if input.Pressed[key] {
			v += 1
			break
		}
	}
	for _, key := range binding.negative {
		if input.Pressed[key] {
			v -= 1
			break
		}
	}
	return v
}

// MoveAxes packs Horizontal, Dolly and Vertical into one vector.
func (input *Input) MoveAxes() mgl32.Vec3 {
	return mgl32.Vec3{input.Axis(AxisHorizontal), input.Axis(AxisDolly), input.Axis(AxisVertical)}
}

// MouseAxes is the cursor delta scaled by MouseSensitivity. Y grows downwards.
func (input *Input) MouseAxes() mgl32.Vec2 {
	return mgl32.Vec2{float32(input.MouseDeltaX * MouseSensitivity), float32(input.MouseDeltaY * MouseSensitivity)}
}

func (input *Input) setPressed(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

func (input *Input) setCursor(x, y float64) {
	if input.cursorSeen {
		input.MouseDeltaX = x - input.MouseX
		input.MouseDeltaY = y - input.MouseY
	}
	input.cursorSeen = true
	input.MouseX = x
	input.MouseY = y
}
