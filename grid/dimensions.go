package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrZeroDimension         = errors.New("grid: dimensions must be positive on every axis")
	ErrIndivisibleDimensions = errors.New("grid: dimensions must be divisible by the compute shader thread group size")
	ErrDimensionTooLarge     = errors.New("grid: dimension exceeds the int32 range of the shader")
)

// Dimensions is the immutable cell extent of the grid.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth"`
}

func NewDimensions(width, height, depth int) Dimensions {
	return Dimensions{Width: width, Height: height, Depth: depth}
}

func (d Dimensions) CellCount() int {
	return d.Width * d.Height * d.Depth
}

// Index is the flat cell index shared by the mesh vertex order and the GPU buffer layout.
// z varies fastest.
func (d Dimensions) Index(x, y, z int) int {
	return x*d.Depth*d.Height + y*d.Depth + z
}

func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Depth <= 0 {
		return fmt.Errorf("%w: got %s", ErrZeroDimension, d)
	}
	if d.Width > math.MaxInt32 || d.Height > math.MaxInt32 || d.Depth > math.MaxInt32 {
		return fmt.Errorf("%w: got %s", ErrDimensionTooLarge, d)
	}
	return nil
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Depth)
}
