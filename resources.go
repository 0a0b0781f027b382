package kumitate

import "reflect"

// Resources is a type-keyed store for shared dependencies that live outside
// the serialized world state: a render surface, a config object, a logger.
// At most one value per concrete type may be present. System factories use
// it to pick their ambient dependencies back up when a world is loaded from
// a save.
type Resources struct {
	items map[reflect.Type]any
}

// Put stores a resource, replacing any previous value of the same type.
// Panics on nil: a nil resource is indistinguishable from an absent one.
func (r *Resources) Put(res any) {
	if res == nil {
		panic("ecs: nil resource")
	}
	if r.items == nil {
		r.items = make(map[reflect.Type]any)
	}
	r.items[reflect.TypeOf(res)] = res
}

// Remove drops the resource of type T, if present.
func Remove[T any](r *Resources) {
	delete(r.items, reflect.TypeOf((*T)(nil)).Elem())
}

// Get retrieves the resource of type T.
//
// Returns:
//   - The stored value and true, or the zero value and false if absent.
func Get[T any](r *Resources) (T, bool) {
	v, ok := r.items[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustGet retrieves the resource of type T and panics if it is absent. Used
// where the application has already guaranteed the resource is wired.
func MustGet[T any](r *Resources) T {
	v, ok := Get[T](r)
	if !ok {
		panic("ecs: missing resource " + reflect.TypeOf((*T)(nil)).Elem().String())
	}
	return v
}
