// Package physics is the embedded rigid-body plugin: gravity integration
// and axis-aligned-box collision resolution. The sandbox core treats it as
// an external engine; entity bookkeeping never happens here.
package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// World holds the simulated bodies and steps them: apply gravity,
// integrate, resolve AABB overlaps along the minimum penetration axis.
type World struct {
	Gravity [3]float32
	bodies  []*Body
}

// NewWorld returns a world with standard downward gravity (Y-up scene).
func NewWorld() *World {
	return &World{Gravity: [3]float32{0, -9.8, 0}}
}

// Add inserts a body into the simulation.
func (w *World) Add(b *Body) {
	w.bodies = append(w.bodies, b)
}

// Remove drops the body from the simulation. Unknown bodies are ignored.
func (w *World) Remove(b *Body) {
	for i, existing := range w.bodies {
		if existing == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Clear drops every body. Used on scene reset.
func (w *World) Clear() {
	w.bodies = nil
}

// Len returns the number of simulated bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// aabb returns the body's world-space bounding box from its extents.
func aabb(b *Body) rl.BoundingBox {
	hx, hy, hz := b.Extents[0]*0.5, b.Extents[1]*0.5, b.Extents[2]*0.5
	return rl.NewBoundingBox(
		rl.NewVector3(b.Position[0]-hx, b.Position[1]-hy, b.Position[2]-hz),
		rl.NewVector3(b.Position[0]+hx, b.Position[1]+hy, b.Position[2]+hz),
	)
}

// penetration returns the overlap depth and axis (0=X, 1=Y, 2=Z) of the
// minimum penetration between two boxes, or (0, -1) when they don't overlap.
func penetration(a, b rl.BoundingBox) (depth float32, axis int) {
	overlapX := min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X)
	overlapY := min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y)
	overlapZ := min(a.Max.Z, b.Max.Z) - max(a.Min.Z, b.Min.Z)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth, axis = overlapX, 0
	if overlapY < depth {
		depth, axis = overlapY, 1
	}
	if overlapZ < depth {
		depth, axis = overlapZ, 2
	}
	return depth, axis
}

// Step advances the simulation by dt seconds. Overlapping pairs are pushed
// apart along the minimum penetration axis, split by mass; velocity on the
// resolved axis is zeroed (fully inelastic contact).
func (w *World) Step(dt float32) {
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		for i := 0; i < 3; i++ {
			b.Velocity[i] += w.Gravity[i] * dt
			b.Position[i] += b.Velocity[i] * dt
		}
	}

	for i := 0; i < len(w.bodies); i++ {
		bi := w.bodies[i]
		boxI := aabb(bi)
		for j := i + 1; j < len(w.bodies); j++ {
			bj := w.bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			boxJ := aabb(bj)
			if !rl.CheckCollisionBoxes(boxI, boxJ) {
				continue
			}
			depth, axis := penetration(boxI, boxJ)
			if axis < 0 {
				continue
			}
			if bj.Position[axis] < bi.Position[axis] {
				depth = -depth
			}
			moveI, moveJ := split(bi, bj, depth)
			bi.Position[axis] += moveI
			bj.Position[axis] += moveJ
			if !bi.Static {
				bi.Velocity[axis] = 0
			}
			if !bj.Static {
				bj.Velocity[axis] = 0
			}
			boxI = aabb(bi)
		}
	}
}

// split distributes the signed separation distance between two bodies by
// inverse mass share; a static body absorbs nothing. depth is positive when
// bj sits on the positive side of bi along the resolved axis.
func split(bi, bj *Body, depth float32) (moveI, moveJ float32) {
	switch {
	case bi.Static:
		return 0, depth
	case bj.Static:
		return -depth, 0
	default:
		total := bi.Mass + bj.Mass
		return -depth * (bj.Mass / total), depth * (bi.Mass / total)
	}
}
