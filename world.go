package kumitate

import (
	"fmt"
)

// World owns the entity identity lifecycle, the Assembly, the ordered system
// list and the event queue, and drives the three processing stages. All
// operations are synchronous and single-threaded; nothing here blocks or
// retries.
type World struct {
	// nextEntity is the template for the next allocation. Its generation
	// and slot counters advance together on every Make, so generations are
	// globally unique and monotonic across the whole World, not per slot.
	nextEntity Entity
	// freeSlots is a FIFO queue of slot numbers released by Remove.
	freeSlots []int
	// presence tracks which slots are alive; its dense entity order is the
	// iteration order for every stage.
	presence *Container[bool]
	assembly Assembly
	// systems run in registration order, shared across stages; each system
	// only fires in its own stage.
	systems    []System
	eventQueue []Event
}

// NewWorld creates an empty world around the given assembly.
func NewWorld(assembly Assembly) *World {
	return &World{
		nextEntity: Entity{Name: "", Generation: 1, Slot: 0},
		presence:   NewContainer(BoolCodec),
		assembly:   assembly,
	}
}

// Make creates a new entity with the given diagnostic name. A previously
// freed slot is reused in FIFO order when available; the generation is fresh
// either way, so handles to the slot's former occupant stay invalid.
func (w *World) Make(name string) Entity {
	slot := w.nextEntity.Slot
	if len(w.freeSlots) > 0 {
		slot = w.freeSlots[0]
		w.freeSlots = w.freeSlots[1:]
	}
	e := Entity{Name: name, Generation: w.nextEntity.Generation, Slot: slot}
	w.nextEntity.Generation++
	w.nextEntity.Slot++
	w.presence.Add(e, true)
	return e
}

// Remove destroys the entity: its slot is queued for reuse, its presence is
// cleared and its component data is purged from the assembly. Removing an
// entity that is already gone does not corrupt state; the underlying
// container removals are no-ops for absent entities.
func (w *World) Remove(e Entity) {
	w.freeSlots = append(w.freeSlots, e.Slot)
	w.presence.Remove(e)
	w.assembly.Remove(e)
}

// Alive reports whether the entity handle is still current.
func (w *World) Alive(e Entity) bool {
	return w.presence.Contains(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.presence.Len()
}

// Assembly returns the world's component assembly.
func (w *World) Assembly() Assembly {
	return w.assembly
}

// AddSystem registers a system. Registration order is execution order within
// a stage. A system whose name is already registered is rejected with
// ErrDuplicateSystem and the system list is left unchanged.
func (w *World) AddSystem(s System) error {
	for _, existing := range w.systems {
		if existing.Name() == s.Name() {
			return fmt.Errorf("%w: %s", ErrDuplicateSystem, s.Name())
		}
	}
	w.systems = append(w.systems, s)
	return nil
}

// RemoveSystem unregisters the system with the given name, or returns
// ErrSystemNotFound.
func (w *World) RemoveSystem(name string) error {
	for i, s := range w.systems {
		if s.Name() == name {
			w.systems = append(w.systems[:i], w.systems[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSystemNotFound, name)
}

// Systems returns the registered systems in registration order. The slice is
// a copy; the registration itself can only change through AddSystem and
// RemoveSystem.
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Queue appends an event to the FIFO event queue without side effects.
func (w *World) Queue(event Event) {
	w.eventQueue = append(w.eventQueue, event)
}

// ProcessEvents pops and dispatches queued events one at a time, in FIFO
// order, running the full dispatch stage for each.
func (w *World) ProcessEvents() {
	for len(w.eventQueue) > 0 {
		event := w.eventQueue[0]
		w.eventQueue = w.eventQueue[1:]
		w.Dispatch(event)
	}
}

// Dispatch runs the dispatch stage for one event immediately, without
// touching the queue.
func (w *World) Dispatch(event Event) {
	w.runStage(StageDispatch, func(s System, views []View) {
		s.OnEvent(views, event)
	})
}

// Update runs the update stage with the current simulation time and the
// fixed delta.
func (w *World) Update(time, deltaTime float64) {
	w.runStage(StageUpdate, func(s System, views []View) {
		s.Update(views, time, deltaTime)
	})
}

// Render runs the render stage.
func (w *World) Render() {
	w.runStage(StageRender, func(s System, views []View) {
		s.Render(views)
	})
}

// runStage is the per-stage dispatch algorithm. For each registered system
// of the target stage, in registration order: filter the live entities by
// the system's mask, build one view per match, and fire the stage callback.
// A system with zero matching entities is skipped entirely for this tick.
//
// The live entity snapshot is the presence container's dense array, taken
// once per system; callers must not mutate entity presence while a stage is
// running.
func (w *World) runStage(stage LoopStage, fire func(s System, views []View)) {
	for _, s := range w.systems {
		if s.Stage() != stage {
			continue
		}
		mask := s.Mask()
		var views []View
		for _, e := range w.presence.Entities() {
			if w.assembly.MatchMask(e, mask) {
				views = append(views, w.assembly.View(e))
			}
		}
		if len(views) > 0 {
			fire(s, views)
		}
	}
}

// ToStructured emits the whole world as a structured document: allocation
// state, presence, assembly and systems. The event queue is deliberately
// absent; in-flight events are not a durable part of state.
func (w *World) ToStructured() map[string]any {
	freeSlots := make([]any, len(w.freeSlots))
	for i, slot := range w.freeSlots {
		freeSlots[i] = slot
	}
	systems := make([]any, len(w.systems))
	for i, s := range w.systems {
		systems[i] = map[string]any{
			"class":  s.Name(),
			"kwargs": s.ToStructured(),
		}
	}
	return map[string]any{
		"next_entity":  entityToStructured(w.nextEntity),
		"free_indices": freeSlots,
		"entities":     w.presence.ToStructured(),
		"components":   w.assembly.ToStructured(),
		"systems":      systems,
	}
}

// WorldFromStructured reconstructs a world from a structured document. The
// given assembly must be fresh; it is populated in place and becomes the
// world's assembly. Systems are rebuilt by class name through the assembly's
// known-systems registry. Any unknown class or malformed field aborts the
// load and no world is returned. The event queue always starts empty.
func WorldFromStructured(assembly Assembly, obj map[string]any) (*World, error) {
	rawNext, err := Field(obj, "next_entity")
	if err != nil {
		return nil, err
	}
	nextEntity, err := entityFromStructured(rawNext)
	if err != nil {
		return nil, err
	}

	rawFree, err := Field(obj, "free_indices")
	if err != nil {
		return nil, err
	}
	freeList, err := AsSlice(rawFree)
	if err != nil {
		return nil, err
	}
	freeSlots := make([]int, len(freeList))
	for i, rv := range freeList {
		slot, err := AsInt(rv)
		if err != nil {
			return nil, err
		}
		freeSlots[i] = slot
	}

	rawPresence, err := Field(obj, "entities")
	if err != nil {
		return nil, err
	}
	presence, err := ContainerFromStructured(BoolCodec, rawPresence)
	if err != nil {
		return nil, err
	}

	rawComponents, err := Field(obj, "components")
	if err != nil {
		return nil, err
	}
	components, err := AsMap(rawComponents)
	if err != nil {
		return nil, err
	}
	if err := assembly.ApplyStructured(components); err != nil {
		return nil, err
	}

	rawSystems, err := Field(obj, "systems")
	if err != nil {
		return nil, err
	}
	systemList, err := AsSlice(rawSystems)
	if err != nil {
		return nil, err
	}
	known := assembly.KnownSystems()
	systems := make([]System, 0, len(systemList))
	for _, rv := range systemList {
		entry, err := AsMap(rv)
		if err != nil {
			return nil, err
		}
		class, err := AsString(entry["class"])
		if err != nil {
			return nil, err
		}
		factory, ok := known[class]
		if !ok {
			return nil, fmt.Errorf("%w: unknown system class %q", ErrDeserialize, class)
		}
		kwargs, err := AsMap(entry["kwargs"])
		if err != nil {
			return nil, err
		}
		s, err := factory(kwargs)
		if err != nil {
			return nil, err
		}
		systems = append(systems, s)
	}

	return &World{
		nextEntity: nextEntity,
		freeSlots:  freeSlots,
		presence:   presence,
		assembly:   assembly,
		systems:    systems,
	}, nil
}

// SaveJSON persists the world to a JSON file.
func (w *World) SaveJSON(path string) error {
	return SaveJSON(path, w.ToStructured())
}

// LoadWorldJSON reconstructs a world from a JSON save file through a fresh
// assembly.
func LoadWorldJSON(assembly Assembly, path string) (*World, error) {
	doc, err := LoadJSON(path)
	if err != nil {
		return nil, err
	}
	return WorldFromStructured(assembly, doc)
}
