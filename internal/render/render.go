// Package render is the rendering adapter: it draws the store's entity
// snapshot, sharing meshes and materials through the resource cache so
// visually identical objects reuse one GPU allocation.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/meshload"
	"physics-sandbox/internal/rescache"
	"physics-sandbox/internal/sim"
)

// Category albedo tints. Imported models keep their own materials.
var (
	sphereColor = rl.NewColor(106, 156, 205, 255)
	boxColor    = rl.NewColor(205, 133, 85, 255)
)

// meshResource wraps a raylib mesh for the cache.
type meshResource struct {
	mesh rl.Mesh
}

func (r *meshResource) Release() {
	rl.UnloadMesh(&r.mesh)
}

// materialResource wraps a raylib material for the cache.
type materialResource struct {
	mtl rl.Material
}

func (r *materialResource) Release() {
	rl.UnloadMaterial(r.mtl)
}

// Renderer draws entities between BeginMode3D and EndMode3D. Meshes and
// materials are created lazily through the cache on first use, after the
// window/GL context exists.
type Renderer struct {
	cache    *rescache.Cache
	lightDir [3]float32

	shader       rl.Shader
	shaderLoaded bool
}

// New returns a renderer backed by the given cache.
func New(cache *rescache.Cache) *Renderer {
	return &Renderer{
		cache:    cache,
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// Draw renders one entity snapshot. Call inside 3D mode, once per frame.
func (r *Renderer) Draw(entities []sim.Entity) {
	for _, e := range entities {
		switch e.Category {
		case sim.CategorySphere:
			r.drawSphere(e)
		case sim.CategoryBox:
			r.drawBox(e)
		case sim.CategoryImportedModel:
			r.drawModel(e)
		}
	}
}

// Dispose releases the renderer-owned shader. Cached meshes and materials
// belong to the cache and are released by its DisposeAll.
func (r *Renderer) Dispose() {
	if r.shaderLoaded {
		rl.UnloadShader(r.shader)
		r.shaderLoaded = false
	}
}

func (r *Renderer) drawSphere(e sim.Entity) {
	radius := float32(0.5)
	if e.Sphere != nil {
		radius = e.Sphere.Radius
	}
	mesh := r.mesh(rescache.SphereKey(radius), func() rl.Mesh {
		return rl.GenMeshSphere(radius, 16, 16)
	})
	mtl := r.material(sphereColor)
	rl.DrawMesh(mesh, mtl, rl.MatrixTranslate(e.Position[0], e.Position[1], e.Position[2]))
}

func (r *Renderer) drawBox(e sim.Entity) {
	w, h, d := float32(1), float32(1), float32(1)
	if e.Box != nil {
		w, h, d = e.Box.Width, e.Box.Height, e.Box.Depth
	}
	mesh := r.mesh(rescache.BoxKey(w, h, d), func() rl.Mesh {
		return rl.GenMeshCube(w, h, d)
	})
	mtl := r.material(boxColor)
	rl.DrawMesh(mesh, mtl, rl.MatrixTranslate(e.Position[0], e.Position[1], e.Position[2]))
}

func (r *Renderer) drawModel(e sim.Entity) {
	if e.Model == nil {
		return
	}
	res := r.cache.GetOrCreate(rescache.ModelKey(e.Model.Source), func() rescache.Resource {
		// The model is loaded at spawn time; a miss here means the load
		// failed and there is nothing to draw.
		return nil
	})
	lm, ok := res.(*meshload.LoadedModel)
	if !ok {
		return
	}
	pos := rl.NewVector3(e.Position[0], e.Position[1], e.Position[2])
	scale := rl.NewVector3(e.Model.Scale[0], e.Model.Scale[1], e.Model.Scale[2])
	rl.DrawModelEx(lm.Model, pos, rl.NewVector3(0, 1, 0), 0, scale, rl.White)
}

// mesh fetches or creates a shared mesh under the given key.
func (r *Renderer) mesh(key string, gen func() rl.Mesh) rl.Mesh {
	res := r.cache.GetOrCreate(key, func() rescache.Resource {
		return &meshResource{mesh: gen()}
	})
	return res.(*meshResource).mesh
}

// material fetches or creates the shared lit material for a color.
func (r *Renderer) material(color rl.Color) rl.Material {
	key := rescache.MaterialKey("mat", color.R, color.G, color.B, color.A)
	res := r.cache.GetOrCreate(key, func() rescache.Resource {
		mtl := rl.LoadMaterialDefault()
		if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = color
		}
		if shader := r.litShader(); rl.IsShaderValid(shader) {
			mtl.Shader = shader
		}
		return &materialResource{mtl: mtl}
	})
	return res.(*materialResource).mtl
}

// litShader loads the shared directional-light shader on first use.
func (r *Renderer) litShader() rl.Shader {
	if !r.shaderLoaded {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
		r.shaderLoaded = true
	}
	r.setLightUniforms()
	return r.shader
}

// setLightUniforms refreshes the light direction on the shared shader.
func (r *Renderer) setLightUniforms() {
	if !rl.IsShaderValid(r.shader) {
		return
	}
	dir := []float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	if loc := rl.GetShaderLocation(r.shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(r.shader, loc, dir, rl.ShaderUniformVec3, 1)
	}
}

// Minimal directional light + ambient. Vertex attributes match raylib
// meshes (vertexPosition, vertexNormal).
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragNormal;
void main() {
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * matModel * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 lightDir;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 ambient = 0.25 * colDiffuse.rgb;
  finalColor = vec4(ambient + colDiffuse.rgb * NdotL * 0.8, colDiffuse.a);
}
`
)
