// Package kumitate provides a small, serializable Entity-Component-System
// runtime: generational entity handles, densely packed per-type component
// containers, mask-filtered system dispatch over three loop stages, and a
// structured-document round trip for whole-world persistence.
package kumitate

// Entity is a lightweight value handle identifying a conceptual object. It
// carries no component data itself; it only indexes into the containers
// owned by a World. Two entities are equal iff all three fields match.
// Copying an Entity does not create a new identity.
type Entity struct {
	// Name is a non-unique, diagnostic label.
	Name string
	// Generation distinguishes successive entities that reuse the same
	// slot. Valid entities have Generation >= 1; zero marks a sparse-index
	// entry that was never allocated.
	Generation uint32
	// Slot is the index into the sparse arrays. Slots are recycled after
	// entity removal.
	Slot int
}

// entityDataIndex maps a slot to its current position in a container's dense
// array. The mapping is only valid for an entity whose generation equals the
// stored generation; the zero value is the "unset" sentinel.
type entityDataIndex struct {
	generation uint32
	dataIdx    int
}
