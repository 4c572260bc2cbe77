package elements

import (
	"testing"

	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/stretchr/testify/assert"
)

func newTestVehicle(h *testHost, id string, at *Location) *Vehicle {
	v := NewVehicle(id)
	v.SetHost(h)
	v.CurrentVisit = NewVisit(at)
	now := h.Now()
	v.CurrentVisit.ArrivalTime = &now
	v.CurrentVisit.ServiceStartTime = &now
	v.CurrentVisit.ServiceFinishTime = &now
	return v
}

func TestVehicle_RunWithNoNextVisitIsANoOp(t *testing.T) {
	h := newTestHost()
	depot := NewLocation("depot")
	v := newTestVehicle(h, "v1", depot)

	v.Run()
	assert.True(t, v.IsIdle())
}

func TestVehicle_TravelsDeliversAndReturnsIdle(t *testing.T) {
	h := newTestHost()
	depot := NewLocation("depot")
	customer := NewLocation("customer")
	v := newTestVehicle(h, "v1", depot)
	v.Callbacks = &VehicleCallbacks{
		TravelTime: func(origin, destination *Location) engine.Time { return 10 },
	}

	order := newTestOrder(h, "ord1")
	order.PickupLocation = depot
	order.DeliveryLocation = customer
	order.PickupDuration = 2
	order.DeliveryDuration = 3
	v.CarryingOrders = []*Order{order}
	now := h.Now()
	order.PickupTime = &now

	visit := NewVisit(customer)
	visit.DeliveryList = []*Order{order}
	v.NextVisits = []*Visit{visit}

	v.Run()
	h.e.Run(nil)

	assert.True(t, v.IsIdle())
	assert.Equal(t, customer, v.CurrentLocation())
	assert.Empty(t, v.CarryingOrders)
	assert.True(t, order.IsDelivered())
	// travel (10) + delivery service (3)
	assert.Equal(t, engine.Time(13), h.e.Now())
}

func TestVehicle_PickupRespectsCapacity(t *testing.T) {
	h := newTestHost()
	depot := NewLocation("depot")
	v := newTestVehicle(h, "v1", depot)
	capacity := 5.0
	v.Capacity = &capacity

	order := newTestOrder(h, "ord1")
	order.PickupLocation = depot
	order.Quantity = 10

	assert.Panics(t, func() {
		v.pickupOrder(h.e, order, func(*engine.Engine) {})
	})
}

func TestVehicle_DeliverViolatingFIFOPanics(t *testing.T) {
	h := newTestHost()
	depot := NewLocation("depot")
	v := newTestVehicle(h, "v1", depot)
	v.LoadingRule = LoadingFIFO

	first := newTestOrder(h, "first")
	first.DeliveryLocation = depot
	second := newTestOrder(h, "second")
	second.DeliveryLocation = depot
	now := h.Now()
	first.PickupTime = &now
	second.PickupTime = &now
	v.CarryingOrders = []*Order{first, second}

	assert.Panics(t, func() {
		v.deliverOrder(h.e, second, func(*engine.Engine) {})
	})
}

func TestVehicle_DeliverViolatingLIFOPanics(t *testing.T) {
	h := newTestHost()
	depot := NewLocation("depot")
	v := newTestVehicle(h, "v1", depot)
	v.LoadingRule = LoadingLIFO

	first := newTestOrder(h, "first")
	first.DeliveryLocation = depot
	second := newTestOrder(h, "second")
	second.DeliveryLocation = depot
	now := h.Now()
	first.PickupTime = &now
	second.PickupTime = &now
	v.CarryingOrders = []*Order{first, second}

	assert.Panics(t, func() {
		v.deliverOrder(h.e, first, func(*engine.Engine) {})
	})
}

func TestVehicle_PreDepartureWaitsForEarliestStartTime(t *testing.T) {
	h := newTestHost()
	depot := NewLocation("depot")
	customer := NewLocation("customer")
	v := newTestVehicle(h, "v1", depot)

	visit := NewVisit(customer)
	earliest := engine.Time(20)
	visit.EarliestStartTime = &earliest
	v.NextVisits = []*Visit{visit}

	v.Run()
	h.e.Run(nil)

	assert.Equal(t, engine.Time(20), h.e.Now())
}

func TestVehicle_PredepartureInterruptionAbortsRun(t *testing.T) {
	h := newTestHost()
	depot := NewLocation("depot")
	customer := NewLocation("customer")
	v := newTestVehicle(h, "v1", depot)

	visit := NewVisit(customer)
	earliest := engine.Time(100)
	visit.EarliestStartTime = &earliest
	v.NextVisits = []*Visit{visit}

	interrupted := false
	v.Callbacks = &VehicleCallbacks{OnPredepartureInterruption: func() { interrupted = true }}

	v.Run()
	v.InterruptPredeparture()
	h.e.Run(nil)

	assert.True(t, interrupted)
	assert.True(t, v.IsIdle())
	assert.True(t, v.HasNextVisit())
}
