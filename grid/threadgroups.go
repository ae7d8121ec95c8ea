package grid

import (
	"fmt"
)

// ThreadGroupCounts is the number of workgroups dispatched per axis.
type ThreadGroupCounts [3]uint32

func (g ThreadGroupCounts) X() uint32 { return g[0] }
func (g ThreadGroupCounts) Y() uint32 { return g[1] }
func (g ThreadGroupCounts) Z() uint32 { return g[2] }

// PlanThreadGroups derives dispatch counts for a kernel compiled with the given
// per-axis thread group size. Every axis of d must be an exact multiple of size,
// otherwise the kernel would run threads outside of the grid.
func PlanThreadGroups(d Dimensions, size [3]uint32) (ThreadGroupCounts, error) {
	if err := d.Validate(); err != nil {
		return ThreadGroupCounts{}, err
	}

	axes := [3]int{d.Width, d.Height, d.Depth}
	names := [3]string{"x", "y", "z"}

	var groups ThreadGroupCounts
	for i, extent := range axes {
		if size[i] == 0 {
			return ThreadGroupCounts{}, fmt.Errorf("%w: thread group size on %s is zero", ErrIndivisibleDimensions, names[i])
		}
		if uint32(extent)%size[i] != 0 {
			return ThreadGroupCounts{}, fmt.Errorf("%w: %s=%d is not a multiple of %d (dimensions %s, thread group %dx%dx%d)",
				ErrIndivisibleDimensions, names[i], extent, size[i], d, size[0], size[1], size[2])
		}
		groups[i] = uint32(extent) / size[i]
	}
	return groups, nil
}
