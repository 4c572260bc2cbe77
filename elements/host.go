// Package elements holds the simulation's domain types — Location,
// Order, Vehicle, Visit — and the capability interfaces they use to
// reach back into the owning model. None of these types import the root
// dvrpsim package; Host is the explicit capability interface that
// replaces the original's duck-typed "self.model.log..."/"self.model.on_..."
// access, implemented by dvrpsim.Model.
package elements

import "github.com/sztaki-hu/dvrpsim/engine"

// Host is implemented by the owning model. Vehicles and orders only see
// this narrow interface, never the concrete Model type, which is what
// keeps this package free of a circular import on the root package.
type Host interface {
	Engine() *engine.Engine
	Now() engine.Time
	Log() LoggingCallback
	Callbacks() *ModelCallbacks
	// RequestForRouting imposes a routing decision point, coalescing
	// concurrent requests into a single pending cycle.
	RequestForRouting()
}

// LoggingCallback mirrors dvrpsim.utils.logging.LoggingCallback: every
// method is purely observational, called at a fixed point in the
// simulation's lifecycle. Implementations must not mutate simulation
// state from within a log call.
type LoggingCallback interface {
	Warning(format string, args ...any)
	Custom(msg string, v *Vehicle)

	OnSimulationStart()
	OnSimulationFinish()

	OnOrderRequest(o *Order)
	OnOrderAcceptance(o *Order)
	OnOrderRejection(o *Order)
	OnOrderUpdate(o *Order)
	OnOrderCancellation(o *Order)
	OnOrderPickup(o *Order)
	OnOrderDelivery(o *Order)
	OnOrderPostponement(o *Order, until engine.Time)
	OnOrderPostponementInterruption(o *Order)
	OnOrderPostponementExpiration(o *Order)

	OnDeparturePostponement(v *Vehicle, until engine.Time)
	OnPredepartureInterruption(v *Vehicle)
	OnDeparture(v *Vehicle)
	OnTravelInterruption(v *Vehicle)
	OnArrival(v *Vehicle)
	OnPreserviceInterruption(v *Vehicle)
	OnServiceRequest(v *Vehicle)
	OnServiceStart(v *Vehicle)
	OnServiceInterruption(v *Vehicle)
	OnServiceFinish(v *Vehicle)

	OnRoutingStart()
	OnRoutingFinish()
}

// ModelCallbacks mirrors dvrpsim.model.Model's on_* override points, one
// struct field per hook rather than one subclassed method per hook (see
// spec's design note on explicit capability structs replacing
// subclassing). A nil field is a no-op, except where noted.
type ModelCallbacks struct {
	OnOrderRequest                  func(o *Order)
	OnOrderAcceptance               func(o *Order)
	OnOrderRejection                func(o *Order)
	OnOrderUpdate                   func(o *Order) // default: request routing
	OnOrderCancellation             func(o *Order) // default: request routing
	OnOrderPostponement             func(o *Order, until engine.Time)
	OnOrderPostponementInterruption func(o *Order)
	OnOrderPostponementExpiration   func(o *Order) // default: request routing
	OnOrderPickup                   func(o *Order)
	OnOrderDelivery                 func(o *Order)

	OnVehiclePredepartureInterruption func(v *Vehicle)
	OnVehicleDeparture                func(v *Vehicle)
	OnVehicleTravelInterruption       func(v *Vehicle)
	OnVehicleArrival                  func(v *Vehicle)
	OnVehiclePreserviceInterruption   func(v *Vehicle)
	// OnVehicleServiceStart default: mark the current visit's pickup-list
	// orders non-cancelable, ported from Model.on_vehicle_service_start.
	OnVehicleServiceStart    func(v *Vehicle)
	OnVehicleServiceFinish   func(v *Vehicle)
	OnVehicleServiceInterrupt func(v *Vehicle)

	// OnRoutingStart default: interrupts every order's postponement wait
	// and every vehicle's pre-departure wait, ported from
	// Model.on_routing_start.
	OnRoutingStart func()
	OnRoutingFinish func(decision any)
}

func callOrderHook(fn func(*Order), o *Order) {
	if fn != nil {
		fn(o)
	}
}

func callVehicleHook(fn func(*Vehicle), v *Vehicle) {
	if fn != nil {
		fn(v)
	}
}
