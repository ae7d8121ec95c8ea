package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyToID(t *testing.T) {
	a := PropertyToID("_TestPropertyA")
	b := PropertyToID("_TestPropertyB")

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, PropertyToID("_TestPropertyA"))
	assert.Equal(t, "_TestPropertyA", a.Name())
	assert.Equal(t, "", InvalidProperty.Name())
}

func TestResolvePropertyHandles_Distinct(t *testing.T) {
	h := resolvePropertyHandles()
	ids := []PropertyID{
		h.time, h.speed, h.maxOffset, h.converge, h.convergeRadius,
		h.convergeStrength, h.convergeSpeed, h.positions, h.preOffset, h.dimensions,
	}
	seen := map[PropertyID]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate handle for %s", id.Name())
		seen[id] = true
	}
	assert.Equal(t, h, resolvePropertyHandles())
}
