package sim

// Observer is an optional diagnostics sink for lifecycle events. The core
// calls it when present instead of logging from inside derivation and
// admission code, so the diagnostics implementation stays pluggable.
type Observer interface {
	// EntityAdmitted fires after an entity passed admission and was inserted.
	EntityAdmitted(e Entity)
	// EntitiesEvicted fires after a population-pressure eviction sweep.
	EntitiesEvicted(ids []string)
	// ShapeDerived fires after a collision shape was derived for a model.
	// degraded marks fallback results; reason says why.
	ShapeDerived(source string, degraded bool, reason string)
}
