package kumitate

// LoopStage is the phase of the tick during which a system is eligible to
// run. Each system belongs to exactly one stage.
type LoopStage uint8

const (
	// StageDispatch systems react to externally fed events.
	StageDispatch LoopStage = iota
	// StageUpdate systems advance simulation state by a fixed time step.
	StageUpdate
	// StageRender systems draw the current state.
	StageRender
)

// String returns the stage name for logs and diagnostics.
func (s LoopStage) String() string {
	switch s {
	case StageDispatch:
		return "dispatch"
	case StageUpdate:
		return "update"
	case StageRender:
		return "render"
	default:
		return "unknown"
	}
}

// Event is an externally produced occurrence fed into the World's dispatch
// stage. Any value can be an event; dispatch systems type-switch on it.
type Event interface{}

// View is a read/write projection of one entity's components, produced by an
// Assembly for a single stage call. The concrete type is application-defined;
// systems down-cast the views they receive.
type View interface{}

// System is a unit of per-stage logic. Systems are identified by name: two
// systems with the same name are the same system as far as World
// registration is concerned. Mask and Stage are fixed for the lifetime of
// the system; only the method matching the system's stage is ever invoked,
// and never with an empty view sequence.
type System interface {
	// Name returns the unique registration and serialization key.
	Name() string
	// Mask describes which components the system requires, in the bit
	// layout of the application's Assembly.
	Mask() Mask
	// Stage returns the loop stage this system fires in.
	Stage() LoopStage

	// OnEvent handles one event during the dispatch stage.
	OnEvent(views []View, event Event)
	// Update advances state during the update stage.
	Update(views []View, time, deltaTime float64)
	// Render draws state during the render stage.
	Render(views []View)

	// ToStructured returns the constructor kwargs needed to rebuild this
	// system through its Assembly's known-systems registry.
	ToStructured() map[string]any
}

// BaseSystem provides no-op stage methods and empty kwargs so concrete
// systems only implement the method of their own stage.
type BaseSystem struct{}

func (BaseSystem) OnEvent(views []View, event Event)            {}
func (BaseSystem) Update(views []View, time, deltaTime float64) {}
func (BaseSystem) Render(views []View)                          {}
func (BaseSystem) ToStructured() map[string]any                 { return map[string]any{} }
