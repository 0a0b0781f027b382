package kumitate

import "reflect"

// EventBus is a typed publish/subscribe channel for out-of-band
// notifications between the application layers, separate from the World's
// dispatch-stage event queue: bus subscribers are plain functions, not
// systems, and publishing is immediate.
//
// Handlers for one event type run synchronously in subscription order.
type EventBus struct {
	handlers map[reflect.Type][]any
}

// SubscribeBus registers a handler for events of type T.
func SubscribeBus[T any](bus *EventBus, handler func(T)) {
	if bus.handlers == nil {
		bus.handlers = make(map[reflect.Type][]any)
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// PublishBus delivers an event of type T to every registered handler, in
// subscription order. Publishing a type nobody subscribed to is a no-op.
func PublishBus[T any](bus *EventBus, event T) {
	for _, h := range bus.handlers[reflect.TypeOf((*T)(nil)).Elem()] {
		h.(func(T))(event)
	}
}
