package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// ParseWorkgroupSizes returns the @workgroup_size of every compute entry point in a WGSL
// source, keyed by function name. Omitted axes are 1.
func ParseWorkgroupSizes(source string) (map[string][3]uint32, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("gpu: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("gpu: %w", err)
	}

	sizes := make(map[string][3]uint32)
	for _, ep := range module.EntryPoints {
		if ep.Stage != ir.StageCompute {
			continue
		}
		sizes[ep.Name] = ep.Workgroup
	}
	return sizes, nil
}
