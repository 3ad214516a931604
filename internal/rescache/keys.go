package rescache

import "fmt"

// Key builders. Identical semantic parameters must always produce the
// identical string, so dimensions are formatted with fixed precision
// (three decimals is finer than any user-visible size step).

// SphereKey is the geometry key for a sphere of the given radius.
func SphereKey(radius float32) string {
	return fmt.Sprintf("sphere-r%.3f", radius)
}

// BoxKey is the geometry key for a box of the given dimensions.
func BoxKey(w, h, d float32) string {
	return fmt.Sprintf("box-%.3fx%.3fx%.3f", w, h, d)
}

// MaterialKey is the material key for a lit material of the given RGBA
// color. kind distinguishes material families (e.g. "mat", "matlit").
func MaterialKey(kind string, r, g, b, a uint8) string {
	return fmt.Sprintf("%s-%02x%02x%02x%02x", kind, r, g, b, a)
}

// ModelKey is the geometry key for an imported model, keyed by its source
// path so repeated imports of the same file share one drawable.
func ModelKey(path string) string {
	return "model-" + path
}
