package gridfx

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gridfx/gpu"
)

const DepthFormat = wgpu.TextureFormatDepth24Plus

// The surface must be released while its window still exists.
var gpuReleaseStage = PostRender

type GpuState struct {
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration
	depthTexture  *wgpu.Texture
	depthView     *wgpu.TextureView

	// Device wraps device and queue for the gpu package.
	Device *gpu.Device
}

func (s *GpuState) ColorFormat() wgpu.TextureFormat {
	return s.surfaceConfig.Format
}

// AspectRatio of the configured surface, 1 when it has no area.
func (s *GpuState) AspectRatio() float32 {
	if s.surfaceConfig.Height == 0 {
		return 1
	}
	return float32(s.surfaceConfig.Width) / float32(s.surfaceConfig.Height)
}

func createGpuState(s *WindowState) *GpuState {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(s.windowGlfw))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "gridfx device",
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	width, height := s.FramebufferSize()
	caps := surface.GetCapabilities(adapter)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	state := &GpuState{
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         queue,
		surfaceConfig: &surfaceConfig,
		Device:        gpu.NewDevice(device, queue),
	}
	if err := state.createDepthTarget(); err != nil {
		panic(err)
	}
	return state
}

func (s *GpuState) createDepthTarget() error {
	texture, err := s.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "gridfx depth",
		Size: wgpu.Extent3D{
			Width:              s.surfaceConfig.Width,
			Height:             s.surfaceConfig.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("depth texture: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("depth view: %w", err)
	}
	s.depthTexture = texture
	s.depthView = view
	return nil
}

func (s *GpuState) releaseDepthTarget() {
	if s.depthView != nil {
		s.depthView.Release()
		s.depthView = nil
	}
	if s.depthTexture != nil {
		s.depthTexture.Release()
		s.depthTexture = nil
	}
}

// resize reconfigures the surface and depth target. It reports false while the
// framebuffer has no area, e.g. when the window is minimized.
func (s *GpuState) resize(width, height int) (bool, error) {
	if width <= 0 || height <= 0 {
		return false, nil
	}
	if uint32(width) == s.surfaceConfig.Width && uint32(height) == s.surfaceConfig.Height {
		return true, nil
	}
	s.surfaceConfig.Width = uint32(width)
	s.surfaceConfig.Height = uint32(height)
	s.surface.Configure(s.adapter, s.device, s.surfaceConfig)
	s.releaseDepthTarget()
	return true, s.createDepthTarget()
}

func (s *GpuState) release() {
	s.releaseDepthTarget()
	s.queue.Release()
	s.device.Release()
	s.adapter.Release()
	s.surface.Release()
}

// RenderFrame is the frame being recorded. Pass is nil when no frame is in flight,
// systems in the Render stage draw into it when it is set.
type RenderFrame struct {
	Pass *wgpu.RenderPassEncoder

	texture *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
}

func (f *RenderFrame) Active() bool {
	return f.Pass != nil
}

// RendererModule acquires a surface texture every frame, clears it with ClearColor and
// presents it after the Render stage.
type RendererModule struct {
	ClearColor mgl32.Vec4
}

func (m RendererModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[GpuState](app); ok {
		return
	}
	window, ok := Resource[WindowState](app)
	if !ok {
		cmd.Logger().Errorf("RendererModule requires a window, install PlatformWindowModule first")
		panic("RendererModule: missing WindowState")
	}

	state := createGpuState(window)
	cmd.AddResources(state, &RenderFrame{}, &frameSettings{clear: m.ClearColor})
	cmd.Logger().Infof("Renderer ready (%v, %dx%d)", state.surfaceConfig.Format, state.surfaceConfig.Width, state.surfaceConfig.Height)

	app.UseSystem(
		System(beginFrameSystem).
			InStage(PreRender).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(endFrameSystem).
			InStage(PostRender).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(releaseGpuSystem).
			InStage(gpuReleaseStage).
			InState(OnExit(StateExiting)),
	)
}

type frameSettings struct {
	clear mgl32.Vec4
}

func beginFrameSystem(s *GpuState, w *WindowState, frame *RenderFrame, settings *frameSettings, cmd *Commands) {
	visible, err := s.resize(w.FramebufferSize())
	if err != nil {
		cmd.Logger().Errorf("Resize failed: %v", err)
		panic(err)
	}
	if !visible {
		return
	}

	texture, err := s.surface.GetCurrentTexture()
	if err != nil {
		cmd.Logger().Warnf("GetCurrentTexture failed: %v", err)
		return
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		cmd.Logger().Warnf("CreateView failed: %v", err)
		return
	}
	encoder, err := s.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		texture.Release()
		cmd.Logger().Warnf("CreateCommandEncoder failed: %v", err)
		return
	}

	c := settings.clear
	frame.texture = texture
	frame.view = view
	frame.encoder = encoder
	frame.Pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            s.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
}

func endFrameSystem(s *GpuState, frame *RenderFrame, cmd *Commands) {
	if !frame.Active() {
		return
	}
	defer frame.reset()

	if err := frame.Pass.End(); err != nil {
		cmd.Logger().Errorf("Render pass End failed: %v", err)
		return
	}
	buffer, err := frame.encoder.Finish(nil)
	if err != nil {
		cmd.Logger().Errorf("Encoder Finish failed: %v", err)
		return
	}
	defer buffer.Release()

	s.queue.Submit(buffer)
	s.surface.Present()
}

func (f *RenderFrame) reset() {
	f.Pass.Release()
	f.encoder.Release()
	f.view.Release()
	f.texture.Release()
	*f = RenderFrame{}
}

func releaseGpuSystem(s *GpuState) {
	s.release()
}
