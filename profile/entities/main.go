// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/edwinsyarief/kumitate"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

var comp1Codec = kumitate.Codec[comp1]{
	Encode: func(c comp1) any { return map[string]any{"v": c.V, "w": c.W} },
	Decode: func(v any) (comp1, error) { return comp1{}, nil },
}

var comp2Codec = kumitate.Codec[comp2]{
	Encode: func(c comp2) any { return map[string]any{"v": c.V, "w": c.W} },
	Decode: func(v any) (comp2, error) { return comp2{}, nil },
}

type assembly struct {
	c1 *kumitate.Container[comp1]
	c2 *kumitate.Container[comp2]
}

func newAssembly() *assembly {
	return &assembly{
		c1: kumitate.NewContainer(comp1Codec),
		c2: kumitate.NewContainer(comp2Codec),
	}
}

func (a *assembly) MatchMask(e kumitate.Entity, mask kumitate.Mask) bool {
	if mask.HasBit(0) && !a.c1.Contains(e) {
		return false
	}
	if mask.HasBit(1) && !a.c2.Contains(e) {
		return false
	}
	return true
}

func (a *assembly) Remove(e kumitate.Entity) {
	a.c1.Remove(e)
	a.c2.Remove(e)
}

func (a *assembly) View(e kumitate.Entity) kumitate.View {
	return e
}

func (a *assembly) ToStructured() map[string]any { return nil }

func (a *assembly) ApplyStructured(map[string]any) error { return nil }

func (a *assembly) KnownSystems() map[string]kumitate.SystemFactory { return nil }

func main() {
	count := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for r := 0; r < rounds; r++ {
		a := newAssembly()
		w := kumitate.NewWorld(a)

		for it := 0; it < iters; it++ {
			made := make([]kumitate.Entity, 0, numEntities)
			for i := 0; i < numEntities; i++ {
				e := w.Make("")
				a.c1.Add(e, comp1{V: int64(i)})
				a.c2.Add(e, comp2{V: int64(i)})
				made = append(made, e)
			}
			for _, e := range made {
				c1, _ := a.c1.Get(e)
				c2, _ := a.c2.Get(e)
				c1.V += c2.V
				c1.W += c2.W
				a.c1.Add(e, c1)
			}
			for _, e := range made {
				w.Remove(e)
			}
		}
	}
}
