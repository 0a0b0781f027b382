package kumitate

import "errors"

var (
	// ErrTypeMismatch is returned when a value handed to a container does
	// not match the container's component type. The offending write is
	// discarded; the container is left unchanged.
	ErrTypeMismatch = errors.New("component type mismatch")

	// ErrDuplicateSystem is returned by World.AddSystem when a system with
	// the same name is already registered.
	ErrDuplicateSystem = errors.New("system already registered")

	// ErrSystemNotFound is returned by World.RemoveSystem when no system
	// with the given name is registered.
	ErrSystemNotFound = errors.New("system not registered")

	// ErrDeserialize is wrapped by every failure while reconstructing state
	// from a structured document. A load that fails returns no partial
	// result.
	ErrDeserialize = errors.New("deserialization failed")
)
