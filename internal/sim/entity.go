// Package sim holds the entity model and the authoritative store of
// spawned objects, the single source of truth consumed by the rendering
// and physics adapters.
package sim

import (
	"time"

	"physics-sandbox/internal/collider"
)

// Category is the closed set of spawnable object kinds. Fixed at creation.
type Category int

const (
	CategorySphere Category = iota
	CategoryBox
	CategoryImportedModel
)

func (c Category) String() string {
	switch c {
	case CategorySphere:
		return "sphere"
	case CategoryBox:
		return "box"
	case CategoryImportedModel:
		return "model"
	default:
		return "unknown"
	}
}

// Categories lists every category, in display order.
func Categories() []Category {
	return []Category{CategorySphere, CategoryBox, CategoryImportedModel}
}

// ParseCategory normalizes an external category tag. This is the only place
// external strings become categories; everywhere else uses the enum.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "sphere":
		return CategorySphere, true
	case "box":
		return CategoryBox, true
	case "model":
		return CategoryImportedModel, true
	default:
		return 0, false
	}
}

// SphereAttrs are the creation-time attributes of a sphere entity.
type SphereAttrs struct {
	Radius float32
}

// BoxAttrs are the creation-time attributes of a box entity.
type BoxAttrs struct {
	Width, Height, Depth float32
}

// ModelAttrs are the attributes of an imported-model entity. Scale and
// Collision are set once when the model is loaded and not changed after.
type ModelAttrs struct {
	Source    string
	Scale     [3]float32
	Collision collider.Kind
}

// Entity is one spawned simulation object. Position is assigned at creation
// (randomized within the spawn volume) and afterwards written only by the
// physics adapter. CreatedAt orders eviction (oldest first).
type Entity struct {
	ID        string
	Category  Category
	Position  [3]float32
	CreatedAt time.Time

	// Exactly one of these is set, matching Category.
	Sphere *SphereAttrs
	Box    *BoxAttrs
	Model  *ModelAttrs
}
