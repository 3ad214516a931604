package sandbox

import (
	"github.com/chewxy/math32"

	"physics-sandbox/internal/collider"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/sim"
)

// Per-category mass defaults. These are adapter policy, not entity
// attributes: a different physics backend is free to pick its own.
func categoryMass(c sim.Category) float32 {
	switch c {
	case sim.CategorySphere:
		return 1
	case sim.CategoryBox:
		return 1.5
	case sim.CategoryImportedModel:
		return 2
	default:
		return 1
	}
}

// bodyExtents turns a collision descriptor into box extents for the
// embedded plugin. The plugin is AABB-only, so ConvexApprox descriptors are
// downgraded to the scaled bounding box of their point cloud here; the
// deriver itself stays hull-capable for other backends.
func bodyExtents(desc *collider.Descriptor, scale [3]float32) [3]float32 {
	switch desc.Kind {
	case collider.KindConvexApprox:
		return pointCloudExtents(desc.Points, scale)
	default:
		return desc.Dimensions
	}
}

// pointCloudExtents is the axis-aligned extent of a flat point cloud,
// scaled per axis and clamped like the deriver's box dimensions.
func pointCloudExtents(points []float32, scale [3]float32) [3]float32 {
	lo := [3]float32{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	hi := [3]float32{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32}
	for i := 0; i+2 < len(points); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := points[i+axis]
			lo[axis] = math32.Min(lo[axis], v)
			hi[axis] = math32.Max(hi[axis], v)
		}
	}
	var out [3]float32
	for axis := 0; axis < 3; axis++ {
		out[axis] = (hi[axis] - lo[axis]) * scale[axis]
		if math32.IsNaN(out[axis]) || math32.IsInf(out[axis], 0) || out[axis] < collider.MinDimension {
			out[axis] = collider.MinDimension
		}
	}
	return out
}

// addBody creates the dynamic body for a freshly admitted entity.
func (s *Sandbox) addBody(e sim.Entity, extents [3]float32) {
	body := physics.NewBody(e.Position, extents, categoryMass(e.Category), false)
	s.world.Add(body)
	s.bodies[e.ID] = body
}

// removeBodies drops the bodies of evicted entities from the simulation.
func (s *Sandbox) removeBodies(ids []string) {
	for _, id := range ids {
		if body, ok := s.bodies[id]; ok {
			s.world.Remove(body)
			delete(s.bodies, id)
		}
	}
}

// addFloor seeds the static ground slab; its top face is the grid plane.
func (s *Sandbox) addFloor() {
	floor := physics.NewBody([3]float32{0, -floorExtents[1] / 2, 0}, floorExtents, 1, true)
	s.world.Add(floor)
}

// resetPhysics runs as a store reset hook: clear every body, then re-seed
// the floor so the next spawn lands on solid ground.
func (s *Sandbox) resetPhysics() {
	s.world.Clear()
	s.addFloor()
}
