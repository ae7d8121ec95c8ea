package gridfx

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"

	"github.com/gekko3d/gridfx/grid"
)

var ErrUnknownColor = errors.New("unknown color name")

type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

type CameraConfig struct {
	Position    mgl32.Vec3 `json:"position"`
	Yaw         float32    `json:"yaw"`
	Pitch       float32    `json:"pitch"`
	MoveSpeed   float32    `json:"moveSpeed"`
	RotateSpeed float32    `json:"rotateSpeed"`
	Fov         float32    `json:"fov"`
}

// OrbitConfig drives the convergence target. A nil Center orbits the middle of the
// grid; a zero Radius keeps the target still.
type OrbitConfig struct {
	Center *mgl32.Vec3 `json:"center,omitempty"`
	Radius float32     `json:"radius"`
	Speed  float32     `json:"speed"`
}

type Config struct {
	Dimensions grid.Dimensions       `json:"dimensions"`
	Parameters grid.ShaderParameters `json:"parameters"`
	Orbit      OrbitConfig           `json:"orbit"`
	Camera     CameraConfig          `json:"camera"`
	Tint       string                `json:"tint"`
	Background string                `json:"background"`
	Window     WindowConfig          `json:"window"`
	Debug      bool                  `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Dimensions: grid.NewDimensions(32, 16, 32),
		Parameters: grid.DefaultShaderParameters(),
		Orbit: OrbitConfig{
			Radius: 10,
			Speed:  0.5,
		},
		Camera: CameraConfig{
			Position:    mgl32.Vec3{15.5, 20, 55},
			Pitch:       -15,
			MoveSpeed:   0.1,
			RotateSpeed: 1,
			Fov:         60,
		},
		Tint:       "lightskyblue",
		Background: "black",
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "gridfx",
		},
	}
}

// LoadConfig reads a JSON config. Fields missing from the file keep their defaults.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

func SaveConfig(cfg Config, filename string) error {
	bytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, bytes, 0644)
}

func (c Config) Validate() error {
	if err := c.Dimensions.Validate(); err != nil {
		return err
	}
	if _, err := ColorByName(c.Tint); err != nil {
		return fmt.Errorf("tint: %w", err)
	}
	if _, err := ColorByName(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("camera fov %v out of range (0, 180)", c.Camera.Fov)
	}
	return nil
}

// ColorByName resolves an SVG 1.1 color keyword to linear RGBA in [0, 1].
func ColorByName(name string) (mgl32.Vec4, error) {
	c, ok := colornames.Map[name]
	if !ok {
		return mgl32.Vec4{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return mgl32.Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}, nil
}

// OrbitCenter is the configured center, or the middle of the grid.
func (c Config) OrbitCenter() mgl32.Vec3 {
	if c.Orbit.Center != nil {
		return *c.Orbit.Center
	}
	return c.Dimensions.Center()
}

func (c Config) NewCamera() *ViewportCamera {
	camera := NewViewportCamera(c.Camera.Position, c.Camera.Yaw, c.Camera.Pitch)
	camera.MoveSpeed = c.Camera.MoveSpeed
	camera.RotateSpeed = c.Camera.RotateSpeed
	camera.Fov = c.Camera.Fov
	if c.Window.Height > 0 {
		camera.Aspect = float32(c.Window.Width) / float32(c.Window.Height)
	}
	return camera
}

func (c Config) NewConvergeTarget() *ConvergeTarget {
	center := c.OrbitCenter()
	target := NewConvergeTarget(center)
	if c.Orbit.Radius != 0 {
		target.Orbit = &Orbit{Center: center, Radius: c.Orbit.Radius, Speed: c.Orbit.Speed}
		target.Transform.Position = target.Orbit.PositionAt(0)
	}
	return target
}
