package gridfx

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.setPressed(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.setPressed(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.setCursor(s.windowGlfw.GetCursorPos())
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:        glfw.KeyA,
	KeyD:        glfw.KeyD,
	KeyE:        glfw.KeyE,
	KeyQ:        glfw.KeyQ,
	KeyS:        glfw.KeyS,
	KeyW:        glfw.KeyW,
	KeyUp:       glfw.KeyUp,
	KeyDown:     glfw.KeyDown,
	KeyLeft:     glfw.KeyLeft,
	KeyRight:    glfw.KeyRight,
	KeyPageUp:   glfw.KeyPageUp,
	KeyPageDown: glfw.KeyPageDown,
	KeyEscape:   glfw.KeyEscape,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
