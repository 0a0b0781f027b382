package kumitate_test

import (
	"fmt"

	"github.com/edwinsyarief/kumitate"
)

// --- Test Components ---

// ExampleComponent is a struct-valued component with its own structured form.
type ExampleComponent struct {
	Value float64
}

var exampleCodec = kumitate.Codec[ExampleComponent]{
	Encode: func(c ExampleComponent) any {
		return map[string]any{"value": c.Value}
	},
	Decode: func(v any) (ExampleComponent, error) {
		obj, err := kumitate.AsMap(v)
		if err != nil {
			return ExampleComponent{}, err
		}
		value, err := kumitate.AsFloat(obj["value"])
		if err != nil {
			return ExampleComponent{}, err
		}
		return ExampleComponent{Value: value}, nil
	},
}

// --- Test Assembly ---

// Bit layout of the test assembly: bit 0 is the int container "a", bit 1 is
// the ExampleComponent container "b". Matching is require-all: an entity
// matches a mask when every masked container holds it.
const (
	maskA = kumitate.Mask(1) << 0
	maskB = kumitate.Mask(1) << 1
)

type testView struct {
	entity kumitate.Entity
	a      *int
	b      *ExampleComponent
}

type testAssembly struct {
	a *kumitate.Container[int]
	b *kumitate.Container[ExampleComponent]
}

func newTestAssembly() *testAssembly {
	return &testAssembly{
		a: kumitate.NewContainer(kumitate.IntCodec),
		b: kumitate.NewContainer(exampleCodec),
	}
}

func (t *testAssembly) MatchMask(e kumitate.Entity, mask kumitate.Mask) bool {
	if mask.HasBit(0) && !t.a.Contains(e) {
		return false
	}
	if mask.HasBit(1) && !t.b.Contains(e) {
		return false
	}
	return true
}

func (t *testAssembly) Remove(e kumitate.Entity) {
	t.a.Remove(e)
	t.b.Remove(e)
}

func (t *testAssembly) View(e kumitate.Entity) kumitate.View {
	return &testView{
		entity: e,
		a:      t.a.Ref(e),
		b:      t.b.Ref(e),
	}
}

func (t *testAssembly) ToStructured() map[string]any {
	return map[string]any{
		"a": t.a.ToStructured(),
		"b": t.b.ToStructured(),
	}
}

func (t *testAssembly) ApplyStructured(obj map[string]any) error {
	a, err := kumitate.ContainerFromStructured(kumitate.IntCodec, obj["a"])
	if err != nil {
		return err
	}
	b, err := kumitate.ContainerFromStructured(exampleCodec, obj["b"])
	if err != nil {
		return err
	}
	t.a = a
	t.b = b
	return nil
}

func (t *testAssembly) KnownSystems() map[string]kumitate.SystemFactory {
	return map[string]kumitate.SystemFactory{
		"gravity_system": func(kwargs map[string]any) (kumitate.System, error) {
			g, err := kumitate.AsFloat(kwargs["g"])
			if err != nil {
				return nil, err
			}
			return &gravitySystem{g: g}, nil
		},
		"counting_system": func(kwargs map[string]any) (kumitate.System, error) {
			return &countingSystem{}, nil
		},
	}
}

func (t *testAssembly) KnownComponents() map[string]kumitate.ComponentFactory {
	return map[string]kumitate.ComponentFactory{
		"a": func(kwargs map[string]any) (any, error) {
			value, err := kumitate.AsInt(kwargs["value"])
			if err != nil {
				return nil, err
			}
			return value, nil
		},
		"b": func(kwargs map[string]any) (any, error) {
			value, err := kumitate.AsFloat(kwargs["value"])
			if err != nil {
				return nil, err
			}
			return ExampleComponent{Value: value}, nil
		},
	}
}

func (t *testAssembly) Insert(e kumitate.Entity, class string, component any) error {
	switch class {
	case "a":
		return t.a.AddValue(e, component)
	case "b":
		return t.b.AddValue(e, component)
	default:
		return fmt.Errorf("%w: no container for class %q", kumitate.ErrDeserialize, class)
	}
}

// --- Test Systems ---

// countingSystem records every stage invocation it receives. Its stage and
// mask are configurable so one type covers all three stages.
type countingSystem struct {
	kumitate.BaseSystem
	name  string
	mask  kumitate.Mask
	stage kumitate.LoopStage

	calls  int
	views  [][]kumitate.View
	events []kumitate.Event
}

func (s *countingSystem) Name() string {
	if s.name == "" {
		return "counting_system"
	}
	return s.name
}

func (s *countingSystem) Mask() kumitate.Mask { return s.mask }

func (s *countingSystem) Stage() kumitate.LoopStage { return s.stage }

func (s *countingSystem) OnEvent(views []kumitate.View, event kumitate.Event) {
	s.calls++
	s.views = append(s.views, views)
	s.events = append(s.events, event)
}

func (s *countingSystem) Update(views []kumitate.View, time, deltaTime float64) {
	s.calls++
	s.views = append(s.views, views)
}

func (s *countingSystem) Render(views []kumitate.View) {
	s.calls++
	s.views = append(s.views, views)
}

// gravitySystem carries a constructor kwarg so serialization tests can
// verify the kwargs round trip.
type gravitySystem struct {
	kumitate.BaseSystem
	g float64
}

func (s *gravitySystem) Name() string              { return "gravity_system" }
func (s *gravitySystem) Mask() kumitate.Mask       { return maskB }
func (s *gravitySystem) Stage() kumitate.LoopStage { return kumitate.StageUpdate }

func (s *gravitySystem) Update(views []kumitate.View, time, deltaTime float64) {
	for _, v := range views {
		view := v.(*testView)
		if view.b != nil {
			view.b.Value += s.g * deltaTime
		}
	}
}

func (s *gravitySystem) ToStructured() map[string]any {
	return map[string]any{"g": s.g}
}
