package collider

// Mesh is one piece of imported geometry: a flat vertex array with 3 floats
// per vertex (x, y, z). Only positions are kept; indices, normals, and UVs
// are irrelevant for bounding volumes.
type Mesh struct {
	Vertices []float32
}

// VertexCount returns the number of (x,y,z) vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) < 3
}

// Node is one node of an imported model's hierarchy. Transform is the node's
// local transform; world transforms accumulate parent-to-child during
// traversal. The same *Mesh may appear under several nodes (instancing).
type Node struct {
	Name      string
	Transform Mat4
	Meshes    []*Mesh
	Children  []*Node
}

// Mat4 is a row-major 4x4 transform matrix.
type Mat4 [16]float32

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a transform that moves points by (x, y, z).
func Translation(x, y, z float32) Mat4 {
	m := Identity()
	m[3], m[7], m[11] = x, y, z
	return m
}

// Scaling returns a transform that scales points by (x, y, z).
func Scaling(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Mul returns m * n, the transform that applies n first and then m.
// Accumulating a hierarchy is parentWorld.Mul(local).
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * n[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// TransformPoint applies m to the point (x, y, z) with w = 1.
func (m Mat4) TransformPoint(x, y, z float32) (float32, float32, float32) {
	return m[0]*x + m[1]*y + m[2]*z + m[3],
		m[4]*x + m[5]*y + m[6]*z + m[7],
		m[8]*x + m[9]*y + m[10]*z + m[11]
}
