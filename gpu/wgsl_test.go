package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gridfx/shaders"
)

func TestParseWorkgroupSizes(t *testing.T) {
	src := `
@group(0) @binding(0) var<storage, read_write> data: array<f32>;

@compute @workgroup_size(4, 2, 1)
fn Main(@builtin(global_invocation_id) id: vec3<u32>) {
    data[id.x] = 1.0;
}

@compute @workgroup_size(64)
fn Flat(@builtin(global_invocation_id) id: vec3<u32>) {
    data[id.x] = 2.0;
}

@compute @workgroup_size(8, 8)
fn Plane(@builtin(global_invocation_id) id: vec3<u32>) {
    data[id.y] = 3.0;
}
`
	sizes, err := ParseWorkgroupSizes(src)
	require.NoError(t, err)
	assert.Equal(t, map[string][3]uint32{
		"Main":  {4, 2, 1},
		"Flat":  {64, 1, 1},
		"Plane": {8, 8, 1},
	}, sizes)
}

func TestParseWorkgroupSizes_SkipsRenderStages(t *testing.T) {
	sizes, err := ParseWorkgroupSizes(shaders.GridPointsWGSL)
	require.NoError(t, err)
	assert.Empty(t, sizes)
}

func TestParseWorkgroupSizes_InvalidSource(t *testing.T) {
	_, err := ParseWorkgroupSizes("@compute @workgroup_size(4) fn Main( {")
	assert.Error(t, err)
}

func TestParseWorkgroupSizes_GridShader(t *testing.T) {
	sizes, err := ParseWorkgroupSizes(shaders.GridComputeWGSL)
	require.NoError(t, err)
	require.Contains(t, sizes, "Main")
	assert.Equal(t, [3]uint32{4, 4, 4}, sizes["Main"])
}
