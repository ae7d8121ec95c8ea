package gridfx

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var windowDestroyStage = Finale

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

// FramebufferSize is the drawable size in pixels, which differs from the window
// size on high-DPI displays.
func (s *WindowState) FramebufferSize() (int, int) {
	return s.windowGlfw.GetFramebufferSize()
}

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw.ShouldClose()
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

func (s *WindowState) destroy() {
	if s.windowGlfw == nil {
		return
	}
	s.windowGlfw.Destroy()
	s.windowGlfw = nil
	glfw.Terminate()
}

// PlatformWindowModule provides the shared WindowState resource. A close request or
// Escape moves the app to StateExiting.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "gridfx"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	cmd.AddResources(ws)
	cmd.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)

	app.UseSystem(
		System(windowCloseSystem).
			InStage(PostUpdate).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(windowDestroySystem).
			InStage(windowDestroyStage).
			InState(OnExit(StateExiting)),
	)
}

func windowCloseSystem(s *WindowState, input *Input, cmd *Commands) {
	if exitRequested(s.ShouldClose(), input) {
		cmd.Logger().Infof("Exit requested")
		cmd.ChangeState(StateExiting)
	}
}

func exitRequested(closeRequested bool, input *Input) bool {
	return closeRequested || input.JustPressed[KeyEscape]
}

func windowDestroySystem(s *WindowState) {
	s.destroy()
}
