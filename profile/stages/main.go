// Profiling:
// go build ./profile/stages
// go tool pprof -http=":8000" -nodefraction=0.001 ./stages cpu.prof

package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/edwinsyarief/kumitate"
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

type view struct {
	c1 *comp1
	c2 *comp2
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
	return &view{c1: a.c1.Ref(e), c2: a.c2.Ref(e)}
}

func (a *assembly) ToStructured() map[string]any { return nil }

func (a *assembly) ApplyStructured(map[string]any) error { return nil }

func (a *assembly) KnownSystems() map[string]kumitate.SystemFactory { return nil }

type sumSystem struct {
	kumitate.BaseSystem
}

func (s *sumSystem) Name() string              { return "sum_system" }
func (s *sumSystem) Mask() kumitate.Mask       { return kumitate.Bit(0).With(kumitate.Bit(1)) }
func (s *sumSystem) Stage() kumitate.LoopStage { return kumitate.StageUpdate }

func (s *sumSystem) Update(views []kumitate.View, time, deltaTime float64) {
	for _, v := range views {
		view := v.(*view)
		view.c1.V += view.c2.V
		view.c1.W += view.c2.W
	}
}

func main() {
	// CPU Profiling
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	count := 50
	iters := 10000
	entities := 10000
	run(count, iters, entities)

	// Memory Profiling
	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC()
	_ = pprof.WriteHeapProfile(memFile)
}

func run(rounds, iters, numEntities int) {
	for r := 0; r < rounds; r++ {
		a := newAssembly()
		w := kumitate.NewWorld(a)
		_ = w.AddSystem(&sumSystem{})

		for i := 0; i < numEntities; i++ {
			e := w.Make("")
			a.c1.Add(e, comp1{V: int64(i)})
			a.c2.Add(e, comp2{V: int64(i)})
		}

		step := 1.0 / 60.0
		for i := 0; i < iters; i++ {
			w.Update(float64(i)*step, step)
		}
	}
}
