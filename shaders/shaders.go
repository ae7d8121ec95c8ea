package shaders

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed grid_compute.wgsl
var GridComputeWGSL string

//go:embed grid_points.wgsl
var GridPointsWGSL string

// Sources maps a display name to each embedded shader.
var Sources = map[string]string{
	"grid_compute.wgsl": GridComputeWGSL,
	"grid_points.wgsl":  GridPointsWGSL,
}

// Check compiles every embedded shader offline, without a GPU device.
func Check() error {
	for name, source := range Sources {
		if _, err := naga.Compile(source); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
