// Package collider approximates collision volumes from imported mesh
// hierarchies: a world-space bounding box, or a decimated point cloud for
// convex-hull-capable physics backends.
package collider

import (
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// MinDimension is the floor for any derived box dimension, so a flat or
	// empty model never produces a zero-size collision volume.
	MinDimension = 0.1
	// MaxHullPoints caps the point count handed to a convex-hull backend.
	MaxHullPoints = 50
	// collinearEps is the squared cross-product threshold below which three
	// points count as collinear.
	collinearEps = 1e-10
)

// Kind selects the collision approximation to derive.
type Kind int

const (
	// KindBox is a world-space axis-aligned bounding box.
	KindBox Kind = iota
	// KindConvexApprox is a reduced point cloud of the model's vertices.
	KindConvexApprox
)

func (k Kind) String() string {
	switch k {
	case KindConvexApprox:
		return "convex"
	default:
		return "box"
	}
}

// Descriptor is an approximate collision volume consumable by a physics
// adapter. Dimensions is set for KindBox; Points (flat x,y,z triples, world
// space) is set for KindConvexApprox.
type Descriptor struct {
	Kind       Kind
	Dimensions [3]float32
	Points     []float32
}

// Result is the outcome of a derivation. Degraded means a fallback was
// taken (e.g. empty model downgraded to a box); the caller decides how to
// surface it. Descriptor is nil only on an unrecoverable traversal failure,
// in which case the caller should use DefaultBox.
type Result struct {
	Descriptor *Descriptor
	Degraded   bool
	Reason     string
}

// DefaultBox returns the unit-box descriptor callers fall back to when
// derivation fails outright.
func DefaultBox() *Descriptor {
	return &Descriptor{Kind: KindBox, Dimensions: [3]float32{1, 1, 1}}
}

// ComputeBoundingDimensions traverses the hierarchy, unions every mesh's
// vertices into a world-space AABB, multiplies the extents by the per-axis
// scale, and clamps each dimension to MinDimension.
func ComputeBoundingDimensions(root *Node, scale [3]float32) [3]float32 {
	lo := [3]float32{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	hi := [3]float32{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32}
	found := false
	walk(root, Identity(), func(m *Mesh, world Mat4) {
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			x, y, z := world.TransformPoint(m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2])
			lo[0] = math32.Min(lo[0], x)
			lo[1] = math32.Min(lo[1], y)
			lo[2] = math32.Min(lo[2], z)
			hi[0] = math32.Max(hi[0], x)
			hi[1] = math32.Max(hi[1], y)
			hi[2] = math32.Max(hi[2], z)
			found = true
		}
	})
	var dims [3]float32
	for i := 0; i < 3; i++ {
		if found {
			dims[i] = (hi[i] - lo[i]) * scale[i]
		}
		if !isFinite(dims[i]) || dims[i] < MinDimension {
			dims[i] = MinDimension
		}
	}
	return dims
}

// ExtractPointCloud transforms every vertex of every mesh into world space
// and appends it to a flat (x,y,z) list. Each *Mesh is visited once even if
// instanced under several nodes, so repeated geometry is not double-counted.
// Returns an empty slice when the hierarchy holds no geometry.
func ExtractPointCloud(root *Node) []float32 {
	var out []float32
	seen := make(map[*Mesh]bool)
	walk(root, Identity(), func(m *Mesh, world Mat4) {
		if seen[m] {
			return
		}
		seen[m] = true
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			x, y, z := world.TransformPoint(m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2])
			out = append(out, x, y, z)
		}
	})
	if out == nil {
		return []float32{}
	}
	return out
}

// Simplify reduces a point cloud to at most maxPoints vertices by uniform
// decimation: every Nth point, N = ceil(count/maxPoints), triples kept
// intact. Input at or under the cap is returned unchanged. This is a fast
// approximation, not a quality-preserving hull simplification.
func Simplify(points []float32, maxPoints int) []float32 {
	count := len(points) / 3
	if maxPoints <= 0 || count <= maxPoints {
		return points
	}
	stride := (count + maxPoints - 1) / maxPoints
	out := make([]float32, 0, (count/stride+1)*3)
	for i := 0; i < count; i += stride {
		out = append(out, points[i*3], points[i*3+1], points[i*3+2])
	}
	return out
}

// Derive produces a collision descriptor for the hierarchy. KindBox uses the
// scaled bounding dimensions. KindConvexApprox extracts and decimates the
// point cloud, falling back to the box (flagged Degraded, not an error) when
// the model has no geometry or the cloud is degenerate. A panic during
// traversal is recovered and reported as a nil-Descriptor Result.
func Derive(root *Node, kind Kind, scale [3]float32) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Degraded: true, Reason: fmt.Sprintf("traversal failed: %v", r)}
		}
	}()
	if kind == KindConvexApprox {
		points := ExtractPointCloud(root)
		if len(points) == 0 {
			return Result{
				Descriptor: &Descriptor{Kind: KindBox, Dimensions: ComputeBoundingDimensions(root, scale)},
				Degraded:   true,
				Reason:     "no mesh geometry; using bounding box",
			}
		}
		d := &Descriptor{Kind: KindConvexApprox, Points: Simplify(points, MaxHullPoints)}
		if !Validate(d) {
			return Result{
				Descriptor: &Descriptor{Kind: KindBox, Dimensions: ComputeBoundingDimensions(root, scale)},
				Degraded:   true,
				Reason:     "degenerate point cloud; using bounding box",
			}
		}
		return Result{Descriptor: d}
	}
	return Result{Descriptor: &Descriptor{Kind: KindBox, Dimensions: ComputeBoundingDimensions(root, scale)}}
}

// Validate reports whether a descriptor is consumable by a physics adapter.
// Boxes need three finite, positive dimensions. Point clouds need complete
// triples and at least 4 non-collinear points (the minimum for a
// non-degenerate hull).
func Validate(d *Descriptor) bool {
	if d == nil {
		return false
	}
	switch d.Kind {
	case KindBox:
		for _, v := range d.Dimensions {
			if !isFinite(v) || v <= 0 {
				return false
			}
		}
		return true
	case KindConvexApprox:
		if len(d.Points)%3 != 0 || len(d.Points)/3 < 4 {
			return false
		}
		return !allCollinear(d.Points)
	default:
		return false
	}
}

// walk visits node and its children depth-first, accumulating world
// transforms, and calls fn for every mesh encountered.
func walk(node *Node, parent Mat4, fn func(*Mesh, Mat4)) {
	if node == nil {
		return
	}
	world := parent.Mul(node.Transform)
	for _, m := range node.Meshes {
		if m != nil {
			fn(m, world)
		}
	}
	for _, c := range node.Children {
		walk(c, world, fn)
	}
}

// allCollinear reports whether every point of the flat cloud lies on one
// line. Picks the first pair of distinct points as the line, then checks the
// cross product of each remaining point against it.
func allCollinear(points []float32) bool {
	count := len(points) / 3
	ax, ay, az := points[0], points[1], points[2]
	// First point distinct from a spans the candidate line.
	bi := -1
	for i := 1; i < count; i++ {
		if points[i*3] != ax || points[i*3+1] != ay || points[i*3+2] != az {
			bi = i
			break
		}
	}
	if bi < 0 {
		return true
	}
	ux, uy, uz := points[bi*3]-ax, points[bi*3+1]-ay, points[bi*3+2]-az
	for i := 1; i < count; i++ {
		vx, vy, vz := points[i*3]-ax, points[i*3+1]-ay, points[i*3+2]-az
		cx := uy*vz - uz*vy
		cy := uz*vx - ux*vz
		cz := ux*vy - uy*vx
		if cx*cx+cy*cy+cz*cz > collinearEps {
			return false
		}
	}
	return true
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
