package kumitate_test

import (
	"testing"

	"github.com/edwinsyarief/kumitate"
)

type goalScored struct {
	Side string
}

type matchOver struct{}

// go test -run ^TestEventBusDelivery$ . -count 1
func TestEventBusDelivery(t *testing.T) {
	bus := &kumitate.EventBus{}

	var order []string
	kumitate.SubscribeBus(bus, func(ev goalScored) {
		order = append(order, "first:"+ev.Side)
	})
	kumitate.SubscribeBus(bus, func(ev goalScored) {
		order = append(order, "second:"+ev.Side)
	})
	kumitate.SubscribeBus(bus, func(matchOver) {
		t.Error("Handler for a different event type was invoked")
	})

	kumitate.PublishBus(bus, goalScored{Side: "left"})

	if len(order) != 2 {
		t.Fatalf("Expected 2 deliveries, got %d", len(order))
	}
	if order[0] != "first:left" || order[1] != "second:left" {
		t.Errorf("Handlers ran out of subscription order: %v", order)
	}

	// Publishing a type nobody subscribed to is a no-op.
	kumitate.PublishBus(bus, 42)
}

// go test -run ^TestResources$ . -count 1
func TestResources(t *testing.T) {
	r := &kumitate.Resources{}

	if _, ok := kumitate.Get[string](r); ok {
		t.Error("Empty store reported a resource")
	}

	r.Put("savefile.json")
	v, ok := kumitate.Get[string](r)
	if !ok || v != "savefile.json" {
		t.Errorf("Expected stored string back, got %q (ok=%v)", v, ok)
	}

	// Same type replaces.
	r.Put("other.json")
	if v := kumitate.MustGet[string](r); v != "other.json" {
		t.Errorf("Expected replacement value, got %q", v)
	}

	kumitate.Remove[string](r)
	if _, ok := kumitate.Get[string](r); ok {
		t.Error("Resource still present after Remove")
	}
}

// go test -run ^TestMask$ . -count 1
func TestMask(t *testing.T) {
	m := kumitate.Bit(0).With(kumitate.Bit(3))

	if !m.HasBit(0) || !m.HasBit(3) || m.HasBit(1) {
		t.Errorf("Wrong bits set in %b", m)
	}
	if !m.Has(kumitate.Bit(3)) {
		t.Error("Superset check failed for a contained bit")
	}
	if m.Has(kumitate.Bit(3).With(kumitate.Bit(5))) {
		t.Error("Superset check passed for a missing bit")
	}
}
