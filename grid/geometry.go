package grid

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Scaled grows (or shrinks) the box around its center by factor.
func (b AABB) Scaled(factor float32) AABB {
	c := b.Center()
	half := b.Size().Mul(0.5 * factor)
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// IntersectsClip reports whether any part of the box may be visible through viewProj.
// A box is rejected only when all 8 corners lie outside the same clip plane.
func (b AABB) IntersectsClip(viewProj mgl32.Mat4) bool {
	var clip [8]mgl32.Vec4
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec4{b.Min.X(), b.Min.Y(), b.Min.Z(), 1}
		if i&1 != 0 {
			corner[0] = b.Max.X()
		}
		if i&2 != 0 {
			corner[1] = b.Max.Y()
		}
		if i&4 != 0 {
			corner[2] = b.Max.Z()
		}
		clip[i] = viewProj.Mul4x1(corner)
	}

	// left, right, bottom, top, near, far
	outside := [6]func(p mgl32.Vec4) bool{
		func(p mgl32.Vec4) bool { return p[0] < -p[3] },
		func(p mgl32.Vec4) bool { return p[0] > p[3] },
		func(p mgl32.Vec4) bool { return p[1] < -p[3] },
		func(p mgl32.Vec4) bool { return p[1] > p[3] },
		func(p mgl32.Vec4) bool { return p[2] < -p[3] },
		func(p mgl32.Vec4) bool { return p[2] > p[3] },
	}
	for _, isOutside := range outside {
		allOutside := true
		for i := range clip {
			if !isOutside(clip[i]) {
				allOutside = false
				break
			}
		}
		if allOutside {
			return false
		}
	}
	return true
}

// BoundsScale is how much the static mesh bounds are grown. The compute pass moves points
// away from their cell, so the tight box would cull points that are still on screen.
const BoundsScale = 2

// Mesh is a point cloud with one vertex per grid cell.
type Mesh struct {
	Name     string
	Vertices []mgl32.Vec3
	Indices  []uint32
	Bounds   AABB
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// BuildMesh generates the grid point cloud in flat index order.
func BuildMesh(d Dimensions) *Mesh {
	count := d.CellCount()
	if count < 0 {
		count = 0
	}
	mesh := &Mesh{
		Name:     "Grid",
		Vertices: make([]mgl32.Vec3, count),
		Indices:  make([]uint32, count),
	}

	for x := 0; x < d.Width; x++ {
		for y := 0; y < d.Height; y++ {
			for z := 0; z < d.Depth; z++ {
				index := d.Index(x, y, z)
				mesh.Vertices[index] = mgl32.Vec3{float32(x), float32(y), float32(z)}
				mesh.Indices[index] = uint32(index)
			}
		}
	}

	mesh.Bounds = TightBounds(mesh.Vertices).Scaled(BoundsScale)
	return mesh
}

// TightBounds is the smallest box enclosing points. No points gives the zero box.
func TightBounds(points []mgl32.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < box.Min[axis] {
				box.Min[axis] = p[axis]
			}
			if p[axis] > box.Max[axis] {
				box.Max[axis] = p[axis]
			}
		}
	}
	return box
}

// Center is the middle of the point cloud BuildMesh generates for d.
func (d Dimensions) Center() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(d.Width-1) / 2,
		float32(d.Height-1) / 2,
		float32(d.Depth-1) / 2,
	}
}
