package kumitate

import "fmt"

// ComponentFactory rebuilds a component value from its scene kwargs.
// Factories are looked up by class name in a Catalog's known-components
// registry.
type ComponentFactory func(kwargs map[string]any) (any, error)

// Catalog is an Assembly that can also build itself from scene documents:
// it knows how to construct components by class name and how to file a
// constructed component under its container.
type Catalog interface {
	Assembly

	// KnownComponents maps component class names to factories.
	KnownComponents() map[string]ComponentFactory

	// Insert files a component under the container registered for the
	// class name. A class the catalog does not own, or a value of the
	// wrong type for its container, fails without a partial write.
	Insert(e Entity, class string, component any) error
}

// ClassRef names a constructor plus its kwargs, the scene-side form of both
// systems and components.
type ClassRef struct {
	Class  string
	Kwargs map[string]any
}

// A Scene is a declarative description of an initial world: which systems
// to register, which entities to create, and which components each entity
// gets. Scenes are data; Build turns one into a live World.
type Scene struct {
	// Systems lists the systems to register, in order.
	Systems []ClassRef
	// Entities maps entity names to the component keys they own.
	Entities map[string][]string
	// Components maps component keys to their constructors.
	Components map[string]ClassRef
}

// Build constructs a fresh world from the scene: every listed system is
// built through the catalog's known-systems registry and registered in
// order, then every entity is created and its components are constructed
// and inserted. Any unknown class, bad kwargs or mistyped component aborts
// the whole build.
func (s *Scene) Build(catalog Catalog) (*World, error) {
	world := NewWorld(catalog)

	knownSystems := catalog.KnownSystems()
	for _, ref := range s.Systems {
		factory, ok := knownSystems[ref.Class]
		if !ok {
			return nil, fmt.Errorf("%w: unknown system class %q", ErrDeserialize, ref.Class)
		}
		system, err := factory(ref.Kwargs)
		if err != nil {
			return nil, err
		}
		if err := world.AddSystem(system); err != nil {
			return nil, err
		}
	}

	knownComponents := catalog.KnownComponents()
	for name, keys := range s.Entities {
		e := world.Make(name)
		for _, key := range keys {
			ref, ok := s.Components[key]
			if !ok {
				return nil, fmt.Errorf("%w: entity %q references unknown component key %q", ErrDeserialize, name, key)
			}
			factory, ok := knownComponents[ref.Class]
			if !ok {
				return nil, fmt.Errorf("%w: unknown component class %q", ErrDeserialize, ref.Class)
			}
			component, err := factory(ref.Kwargs)
			if err != nil {
				return nil, err
			}
			if err := catalog.Insert(e, ref.Class, component); err != nil {
				return nil, err
			}
		}
	}
	return world, nil
}

// ToStructured emits the scene as a structured document.
func (s *Scene) ToStructured() map[string]any {
	systems := make([]any, len(s.Systems))
	for i, ref := range s.Systems {
		systems[i] = map[string]any{"class": ref.Class, "kwargs": ref.Kwargs}
	}
	entities := make(map[string]any, len(s.Entities))
	for name, keys := range s.Entities {
		list := make([]any, len(keys))
		for i, key := range keys {
			list[i] = key
		}
		entities[name] = list
	}
	components := make(map[string]any, len(s.Components))
	for key, ref := range s.Components {
		components[key] = map[string]any{"class": ref.Class, "kwargs": ref.Kwargs}
	}
	return map[string]any{
		"systems":    systems,
		"entities":   entities,
		"components": components,
	}
}

// SceneFromStructured is the inverse of ToStructured.
func SceneFromStructured(obj map[string]any) (*Scene, error) {
	rawSystems, err := Field(obj, "systems")
	if err != nil {
		return nil, err
	}
	systemList, err := AsSlice(rawSystems)
	if err != nil {
		return nil, err
	}
	scene := &Scene{
		Systems:    make([]ClassRef, 0, len(systemList)),
		Entities:   make(map[string][]string),
		Components: make(map[string]ClassRef),
	}
	for _, rv := range systemList {
		ref, err := classRefFromStructured(rv)
		if err != nil {
			return nil, err
		}
		scene.Systems = append(scene.Systems, ref)
	}

	rawEntities, err := Field(obj, "entities")
	if err != nil {
		return nil, err
	}
	entities, err := AsMap(rawEntities)
	if err != nil {
		return nil, err
	}
	for name, rv := range entities {
		list, err := AsSlice(rv)
		if err != nil {
			return nil, err
		}
		keys := make([]string, len(list))
		for i, kv := range list {
			key, err := AsString(kv)
			if err != nil {
				return nil, err
			}
			keys[i] = key
		}
		scene.Entities[name] = keys
	}

	rawComponents, err := Field(obj, "components")
	if err != nil {
		return nil, err
	}
	components, err := AsMap(rawComponents)
	if err != nil {
		return nil, err
	}
	for key, rv := range components {
		ref, err := classRefFromStructured(rv)
		if err != nil {
			return nil, err
		}
		scene.Components[key] = ref
	}
	return scene, nil
}

func classRefFromStructured(v any) (ClassRef, error) {
	obj, err := AsMap(v)
	if err != nil {
		return ClassRef{}, err
	}
	class, err := AsString(obj["class"])
	if err != nil {
		return ClassRef{}, err
	}
	kwargs, err := AsMap(obj["kwargs"])
	if err != nil {
		return ClassRef{}, err
	}
	return ClassRef{Class: class, Kwargs: kwargs}, nil
}

// SaveJSON writes the scene to a JSON file.
func (s *Scene) SaveJSON(path string) error {
	return SaveJSON(path, s.ToStructured())
}

// LoadSceneJSON reads a scene from a JSON file.
func LoadSceneJSON(path string) (*Scene, error) {
	doc, err := LoadJSON(path)
	if err != nil {
		return nil, err
	}
	return SceneFromStructured(doc)
}
