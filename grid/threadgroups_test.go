package grid

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanThreadGroups(t *testing.T) {
	tests := []struct {
		name string
		dims Dimensions
		size [3]uint32
		want ThreadGroupCounts
	}{
		{"cube", NewDimensions(4, 4, 4), [3]uint32{2, 2, 2}, ThreadGroupCounts{2, 2, 2}},
		{"single group", NewDimensions(8, 8, 8), [3]uint32{8, 8, 8}, ThreadGroupCounts{1, 1, 1}},
		{"mixed", NewDimensions(64, 16, 12), [3]uint32{8, 4, 1}, ThreadGroupCounts{8, 4, 12}},
		{"unit size", NewDimensions(3, 5, 7), [3]uint32{1, 1, 1}, ThreadGroupCounts{3, 5, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanThreadGroups(tt.dims, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanThreadGroups_Indivisible(t *testing.T) {
	groups, err := PlanThreadGroups(NewDimensions(5, 4, 4), [3]uint32{2, 2, 2})
	require.ErrorIs(t, err, ErrIndivisibleDimensions)
	assert.Equal(t, ThreadGroupCounts{}, groups)
	assert.Contains(t, err.Error(), "x=5")

	_, err = PlanThreadGroups(NewDimensions(4, 4, 6), [3]uint32{2, 2, 4})
	require.ErrorIs(t, err, ErrIndivisibleDimensions)
	assert.Contains(t, err.Error(), "z=6")
}

func TestPlanThreadGroups_InvalidInput(t *testing.T) {
	_, err := PlanThreadGroups(NewDimensions(0, 4, 4), [3]uint32{2, 2, 2})
	assert.ErrorIs(t, err, ErrZeroDimension)

	_, err = PlanThreadGroups(NewDimensions(4, 4, 4), [3]uint32{2, 0, 2})
	assert.ErrorIs(t, err, ErrIndivisibleDimensions)
}

func TestPlanThreadGroups_AxisBeyondInt32(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("needs 64-bit int")
	}
	huge := int64(1)<<32 + 2

	_, err := PlanThreadGroups(NewDimensions(int(huge), 2, 2), [3]uint32{2, 2, 2})
	assert.ErrorIs(t, err, ErrDimensionTooLarge)

	_, err = PlanThreadGroups(NewDimensions(2, int(huge), 2), [3]uint32{2, 2, 2})
	assert.ErrorIs(t, err, ErrDimensionTooLarge)

	groups, err := PlanThreadGroups(NewDimensions(math.MaxInt32-1, 2, 2), [3]uint32{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, ThreadGroupCounts{(math.MaxInt32 - 1) / 2, 1, 1}, groups)
}
