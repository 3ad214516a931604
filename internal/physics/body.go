package physics

// Body is a rigid body in the embedded AABB world. Extents are the full box
// dimensions of the collision volume; spheres and convex descriptors are
// downgraded to their bounding box by the adapter before reaching here.
// Static bodies ignore gravity and never move.
type Body struct {
	Position [3]float32
	Velocity [3]float32
	Extents  [3]float32
	Mass     float32
	Static   bool
}

// NewBody returns a body at rest with the given collision extents.
// Non-positive mass or extents are clamped to safe values.
func NewBody(position, extents [3]float32, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	for i := range extents {
		if extents[i] <= 0 {
			extents[i] = 1
		}
	}
	return &Body{
		Position: position,
		Extents:  extents,
		Mass:     mass,
		Static:   static,
	}
}
