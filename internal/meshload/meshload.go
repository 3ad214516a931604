// Package meshload imports model files through raylib and exposes their
// geometry as a collider mesh hierarchy, so the shape deriver never touches
// renderer-owned memory.
package meshload

import (
	"fmt"
	"os"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/collider"
)

// LoadedModel couples the drawable raylib handle with the collider-side
// hierarchy built from the same vertex data. It lives in the resource cache
// keyed by source path, so repeated imports share one GPU allocation.
type LoadedModel struct {
	Model     rl.Model
	Hierarchy *collider.Node
}

// Release unloads the GPU-side model. Called from the cache on DisposeAll.
func (m *LoadedModel) Release() {
	rl.UnloadModel(m.Model)
}

// Load imports the model at path. The file must exist and contain at least
// one mesh; anything else is an error for the caller to surface.
func Load(path string) (*LoadedModel, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		rl.UnloadModel(model)
		return nil, fmt.Errorf("model %s: no meshes", path)
	}
	return &LoadedModel{Model: model, Hierarchy: buildHierarchy(model)}, nil
}

// buildHierarchy copies the model's vertex data into collider meshes.
// Raylib flattens imported node trees into a mesh list under one model
// transform, so the hierarchy is a root carrying that transform with one
// child node per mesh. Vertices are copied out of C memory so the deriver
// holds no pointer into renderer-owned allocations.
func buildHierarchy(model rl.Model) *collider.Node {
	root := &collider.Node{
		Name:      "model",
		Transform: fromRaylibMatrix(model.Transform),
	}
	meshes := unsafe.Slice(model.Meshes, int(model.MeshCount))
	for i := range meshes {
		count := int(meshes[i].VertexCount)
		if count <= 0 || meshes[i].Vertices == nil {
			continue
		}
		src := unsafe.Slice(meshes[i].Vertices, count*3)
		verts := make([]float32, len(src))
		copy(verts, src)
		root.Children = append(root.Children, &collider.Node{
			Name:      fmt.Sprintf("mesh%d", i),
			Transform: collider.Identity(),
			Meshes:    []*collider.Mesh{{Vertices: verts}},
		})
	}
	return root
}

// fromRaylibMatrix converts raylib's column-major matrix into the
// collider's row-major Mat4.
func fromRaylibMatrix(m rl.Matrix) collider.Mat4 {
	return collider.Mat4{
		m.M0, m.M4, m.M8, m.M12,
		m.M1, m.M5, m.M9, m.M13,
		m.M2, m.M6, m.M10, m.M14,
		m.M3, m.M7, m.M11, m.M15,
	}
}
