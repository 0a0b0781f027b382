package kumitate

// SystemFactory rebuilds a system from its serialized kwargs. Factories are
// looked up by class name in the Assembly's known-systems registry when a
// World is loaded.
type SystemFactory func(kwargs map[string]any) (System, error)

// Assembly is the application-defined aggregate of all component containers
// plus the mask and view logic over them. A World owns exactly one Assembly
// and routes every cascade through it.
//
// Implementations must keep MatchMask consistent with their containers'
// Contains results, and must build registries as explicit tables rather than
// ambient global state.
type Assembly interface {
	// MatchMask reports whether the entity satisfies the mask. The bit
	// layout is the assembly's own; it only has to agree with the masks its
	// systems report.
	MatchMask(e Entity, mask Mask) bool

	// Remove cascades removal of the entity's components to every owned
	// container. Containers without the entity are skipped harmlessly.
	Remove(e Entity)

	// View aggregates the entity's components from every owned container,
	// present or not, into one projection. Mask filtering happens in the
	// World, not here.
	View(e Entity) View

	// ToStructured emits every owned container keyed by component name.
	ToStructured() map[string]any

	// ApplyStructured is the inverse of ToStructured, populating a fresh
	// assembly from a structured document. A malformed document aborts the
	// load; the assembly is not usable afterwards.
	ApplyStructured(obj map[string]any) error

	// KnownSystems maps system class names to factories. The table must
	// cover every system that was ever serialized with a World of this
	// assembly, or loading such a save fails.
	KnownSystems() map[string]SystemFactory
}
