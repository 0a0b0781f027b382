package kumitate

// Container stores one component type for any number of entities. Component
// values live in a gap-free dense array for cache-friendly iteration; a
// sparse index keyed by entity slot redirects to the dense offset, and the
// generation stored alongside validates the mapping against stale handles.
//
// Invariants, preserved by every operation:
//   - len(data) == len(entities), index-aligned
//   - for every slot s whose sparse entry is non-sentinel,
//     entities[indices[s].dataIdx].Slot == s and data[indices[s].dataIdx]
//     holds that entity's component
type Container[C any] struct {
	data     []C
	entities []Entity
	indices  []entityDataIndex
	codec    Codec[C]
}

// NewContainer creates an empty container using the given codec for the
// structured round trip of its component values.
func NewContainer[C any](codec Codec[C]) *Container[C] {
	return &Container[C]{codec: codec}
}

// Contains reports whether the entity currently owns a component in this
// container. Panics if the entity's generation is zero: such a handle was
// never produced by World.Make, and silently accepting it would let the
// sparse sentinel alias a live entry.
func (c *Container[C]) Contains(e Entity) bool {
	if e.Generation == 0 {
		panic("ecs: entity with zero generation")
	}
	return e.Slot < len(c.indices) && c.indices[e.Slot].generation == e.Generation
}

// Add stores a component for the entity. If the entity already has one, the
// dense slot is overwritten in place; otherwise the sparse index grows as
// needed (new entries are sentinels) and the component is appended.
func (c *Container[C]) Add(e Entity, component C) {
	if c.Contains(e) {
		c.data[c.indices[e.Slot].dataIdx] = component
		return
	}
	c.growIndices(e.Slot)
	c.data = append(c.data, component)
	c.entities = append(c.entities, e)
	c.indices[e.Slot] = entityDataIndex{
		generation: e.Generation,
		dataIdx:    len(c.data) - 1,
	}
}

// AddValue is the dynamically typed form of Add, used where the component
// type is not known statically (scene loading, generic assembly plumbing).
// A value that is not of the container's component type fails with
// ErrTypeMismatch and leaves the container unchanged.
func (c *Container[C]) AddValue(e Entity, value any) error {
	component, ok := value.(C)
	if !ok {
		return ErrTypeMismatch
	}
	c.Add(e, component)
	return nil
}

// Remove deletes the entity's component in O(1). The last dense element is
// moved into the vacated offset and its sparse entry is redirected; the
// removed slot's entry is reset to the sentinel. Removing an entity that has
// no component here is a no-op.
func (c *Container[C]) Remove(e Entity) {
	if !c.Contains(e) {
		return
	}
	removed := c.indices[e.Slot]
	c.indices[e.Slot] = entityDataIndex{}

	last := len(c.entities) - 1
	if removed.dataIdx != last {
		moved := c.entities[last]
		c.data[removed.dataIdx] = c.data[last]
		c.entities[removed.dataIdx] = moved
		c.indices[moved.Slot] = entityDataIndex{
			generation: moved.Generation,
			dataIdx:    removed.dataIdx,
		}
	}
	c.data = c.data[:last]
	c.entities = c.entities[:last]
}

// Get returns a copy of the entity's component, or the zero value and false
// if the entity has none.
func (c *Container[C]) Get(e Entity) (C, bool) {
	if !c.Contains(e) {
		var zero C
		return zero, false
	}
	return c.data[c.indices[e.Slot].dataIdx], true
}

// Ref returns a pointer to the entity's component inside the dense array,
// or nil if the entity has none. The pointer stays valid only until the next
// Add or Remove on this container; views built from it must not outlive the
// stage call they were produced for.
func (c *Container[C]) Ref(e Entity) *C {
	if !c.Contains(e) {
		return nil
	}
	return &c.data[c.indices[e.Slot].dataIdx]
}

// Len returns the number of stored components.
func (c *Container[C]) Len() int {
	return len(c.data)
}

// Entities returns the owning entities in current dense order. The order is
// affected by swap-and-pop removal; callers must not assume insertion order
// survives a Remove. The returned slice is the container's own backing
// array and must not be mutated.
func (c *Container[C]) Entities() []Entity {
	return c.entities
}

// Data returns the dense component values, index-aligned with Entities.
func (c *Container[C]) Data() []C {
	return c.data
}

// growIndices extends the sparse index with sentinel entries up to and
// including slot.
func (c *Container[C]) growIndices(slot int) {
	for len(c.indices) <= slot {
		c.indices = append(c.indices, entityDataIndex{})
	}
}

// ToStructured emits the container as a {"data", "entities", "indices"}
// document. Component values go through the container's codec.
func (c *Container[C]) ToStructured() map[string]any {
	data := make([]any, len(c.data))
	for i, component := range c.data {
		data[i] = c.codec.Encode(component)
	}
	entities := make([]any, len(c.entities))
	for i, e := range c.entities {
		entities[i] = entityToStructured(e)
	}
	indices := make([]any, len(c.indices))
	for i, idx := range c.indices {
		indices[i] = indexToStructured(idx)
	}
	return map[string]any{
		"data":     data,
		"entities": entities,
		"indices":  indices,
	}
}

// ContainerFromStructured is the exact inverse of ToStructured. Any element
// that fails to decode aborts the whole load.
func ContainerFromStructured[C any](codec Codec[C], v any) (*Container[C], error) {
	obj, err := AsMap(v)
	if err != nil {
		return nil, err
	}
	rawData, err := AsSlice(obj["data"])
	if err != nil {
		return nil, err
	}
	rawEntities, err := AsSlice(obj["entities"])
	if err != nil {
		return nil, err
	}
	rawIndices, err := AsSlice(obj["indices"])
	if err != nil {
		return nil, err
	}

	c := NewContainer(codec)
	c.data = make([]C, len(rawData))
	for i, rv := range rawData {
		component, err := codec.Decode(rv)
		if err != nil {
			return nil, err
		}
		c.data[i] = component
	}
	c.entities = make([]Entity, len(rawEntities))
	for i, rv := range rawEntities {
		e, err := entityFromStructured(rv)
		if err != nil {
			return nil, err
		}
		c.entities[i] = e
	}
	c.indices = make([]entityDataIndex, len(rawIndices))
	for i, rv := range rawIndices {
		idx, err := indexFromStructured(rv)
		if err != nil {
			return nil, err
		}
		c.indices[i] = idx
	}
	return c, nil
}
