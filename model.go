// Package dvrpsim is a discrete-event simulation engine for dynamic
// vehicle routing problems: a cooperative scheduler, a vehicle
// execution state machine, shared-resource contention, and a
// decision-point coordinator that hands a JSON snapshot to an external
// routing callback and applies its validated decision back.
package dvrpsim

import (
	"fmt"

	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/sztaki-hu/dvrpsim/errs"
)

// Model owns every location, vehicle, and order in one simulation run.
// Multiple Models may run sequentially or (each on its own goroutine)
// in parallel without sharing any state, since all simulation state is
// confined to the Model instance rather than package-level globals.
type Model struct {
	PrivateData any
	PublicData  any
	Aux         map[string]any

	eng  *engine.Engine
	log  elements.LoggingCallback
	cb   ModelCallbacks

	locations map[string]*elements.Location
	vehicles  map[string]*elements.Vehicle
	orders    map[string]*elements.Order

	locationOrder []string
	vehicleOrder  []string
	orderOrder    []string

	epoch int

	allOrdersRequested *engine.Signal

	routingInProgress       bool
	requestedRoutingFinished *engine.Signal
}

// ModelCallbacks collects every model-level hook override and the
// routing callback itself as a struct of function fields rather than
// subclassed methods, so a caller can override exactly the hooks it
// needs. A nil field falls back to the default behavior noted per field.
type ModelCallbacks struct {
	OnSimulationStart  func(m *Model)
	OnSimulationFinish func(m *Model)

	OnOrderRequest      func(m *Model, o *elements.Order)
	OnOrderAcceptance   func(m *Model, o *elements.Order)
	OnOrderRejection    func(m *Model, o *elements.Order)
	// OnOrderUpdate default: RequestForRouting.
	OnOrderUpdate       func(m *Model, o *elements.Order)
	// OnOrderCancellation default: RequestForRouting.
	OnOrderCancellation func(m *Model, o *elements.Order)
	OnOrderPostponement func(m *Model, o *elements.Order, until engine.Time)
	OnOrderPostponementInterruption func(m *Model, o *elements.Order)
	// OnOrderPostponementExpiration default: RequestForRouting.
	OnOrderPostponementExpiration func(m *Model, o *elements.Order)
	OnOrderPickup   func(m *Model, o *elements.Order)
	OnOrderDelivery func(m *Model, o *elements.Order)

	OnVehiclePredepartureInterruption func(m *Model, v *elements.Vehicle)
	OnVehicleDeparture                func(m *Model, v *elements.Vehicle)
	OnVehicleTravelInterruption       func(m *Model, v *elements.Vehicle)
	OnVehicleArrival                  func(m *Model, v *elements.Vehicle)
	OnVehiclePreserviceInterruption   func(m *Model, v *elements.Vehicle)
	// OnVehicleServiceStart default: marks the current visit's
	// pickup-list orders non-cancelable.
	OnVehicleServiceStart   func(m *Model, v *elements.Vehicle)
	OnVehicleServiceFinish  func(m *Model, v *elements.Vehicle)
	OnVehicleServiceInterrupt func(m *Model, v *elements.Vehicle)

	// OnRoutingStart default: interrupts every order's postponement and
	// every vehicle's pre-departure wait.
	OnRoutingStart  func(m *Model)
	OnRoutingFinish func(m *Model, decision *RawDecisionResult)

	// RoutingCallback default: logs a warning and rejects every open
	// order, matching dvrpsim.model.Model.routing_callback's default.
	RoutingCallback func(m *Model, state State) RawDecision

	// SimulateElapsedRoutingTime default: instantaneous (zero delay).
	SimulateElapsedRoutingTime func(m *Model, elapsed engine.Time) engine.Time
}

// RawDecisionResult is passed to OnRoutingFinish; Err is non-nil if the
// decision was rejected wholesale (DecisionError) rather than applied.
type RawDecisionResult struct {
	Decision RawDecision
	Err      error
}

// NewModel returns a Model with its own engine, ready for locations,
// vehicles, and orders to be registered.
func NewModel() *Model {
	m := &Model{
		Aux:                map[string]any{},
		eng:                engine.New(),
		locations:          map[string]*elements.Location{},
		vehicles:           map[string]*elements.Vehicle{},
		orders:             map[string]*elements.Order{},
		allOrdersRequested: engine.NewSignal(),
	}
	m.log = NewDefaultLoggingCallback(m)
	return m
}

func (m *Model) Engine() *engine.Engine            { return m.eng }
func (m *Model) Now() engine.Time                  { return m.eng.Now() }
func (m *Model) Log() elements.LoggingCallback      { return m.log }
func (m *Model) Epoch() int                         { return m.epoch }

// SetLoggingCallback overrides the default logrus-based logger.
func (m *Model) SetLoggingCallback(log elements.LoggingCallback) { m.log = log }

// SetCallbacks installs the model-level hook overrides (including the
// routing callback itself); call it once before Run.
func (m *Model) SetCallbacks(cb ModelCallbacks) { m.cb = cb }

// Callbacks returns the model-level hook struct as the narrow
// elements.ModelCallbacks view domain types call through; Model itself
// keeps the richer ModelCallbacks (with *Model as a parameter) in m.cb.
func (m *Model) Callbacks() *elements.ModelCallbacks {
	return &elements.ModelCallbacks{
		OnOrderRequest:      m.wrapOrderHook(m.cb.OnOrderRequest),
		OnOrderAcceptance:   m.wrapOrderHook(m.cb.OnOrderAcceptance),
		OnOrderRejection:    m.wrapOrderHook(m.cb.OnOrderRejection),
		OnOrderUpdate:       m.orderUpdateHook(),
		OnOrderCancellation: m.orderCancellationHook(),
		OnOrderPostponement: func(o *elements.Order, until engine.Time) {
			if m.cb.OnOrderPostponement != nil {
				m.cb.OnOrderPostponement(m, o, until)
			}
		},
		OnOrderPostponementInterruption: m.wrapOrderHook(m.cb.OnOrderPostponementInterruption),
		OnOrderPostponementExpiration:   m.orderPostponementExpirationHook(),
		OnOrderPickup:                   m.wrapOrderHook(m.cb.OnOrderPickup),
		OnOrderDelivery:                 m.wrapOrderHook(m.cb.OnOrderDelivery),

		OnVehiclePredepartureInterruption: m.wrapVehicleHook(m.cb.OnVehiclePredepartureInterruption),
		OnVehicleDeparture:                m.wrapVehicleHook(m.cb.OnVehicleDeparture),
		OnVehicleTravelInterruption:       m.wrapVehicleHook(m.cb.OnVehicleTravelInterruption),
		OnVehicleArrival:                  m.wrapVehicleHook(m.cb.OnVehicleArrival),
		OnVehiclePreserviceInterruption:   m.wrapVehicleHook(m.cb.OnVehiclePreserviceInterruption),
		OnVehicleServiceStart:             m.vehicleServiceStartHook(),
		OnVehicleServiceFinish:            m.wrapVehicleHook(m.cb.OnVehicleServiceFinish),
		OnVehicleServiceInterrupt:         m.wrapVehicleHook(m.cb.OnVehicleServiceInterrupt),

		OnRoutingStart: func() { m.onRoutingStart() },
		OnRoutingFinish: func(decision any) {
			if m.cb.OnRoutingFinish != nil {
				if res, ok := decision.(*RawDecisionResult); ok {
					m.cb.OnRoutingFinish(m, res)
				}
			}
		},
	}
}

func (m *Model) wrapOrderHook(fn func(*Model, *elements.Order)) func(*elements.Order) {
	if fn == nil {
		return nil
	}
	return func(o *elements.Order) { fn(m, o) }
}

func (m *Model) wrapVehicleHook(fn func(*Model, *elements.Vehicle)) func(*elements.Vehicle) {
	if fn == nil {
		return nil
	}
	return func(v *elements.Vehicle) { fn(m, v) }
}

// orderUpdateHook defaults to RequestForRouting, ported from
// Model.on_order_update.
func (m *Model) orderUpdateHook() func(*elements.Order) {
	return func(o *elements.Order) {
		if m.cb.OnOrderUpdate != nil {
			m.cb.OnOrderUpdate(m, o)
			return
		}
		m.RequestForRouting()
	}
}

// orderCancellationHook defaults to RequestForRouting, ported from
// Model.on_order_cancellation.
func (m *Model) orderCancellationHook() func(*elements.Order) {
	return func(o *elements.Order) {
		if m.cb.OnOrderCancellation != nil {
			m.cb.OnOrderCancellation(m, o)
			return
		}
		m.RequestForRouting()
	}
}

// orderPostponementExpirationHook defaults to RequestForRouting, ported
// from Model.on_order_postponement_expiration.
func (m *Model) orderPostponementExpirationHook() func(*elements.Order) {
	return func(o *elements.Order) {
		if m.cb.OnOrderPostponementExpiration != nil {
			m.cb.OnOrderPostponementExpiration(m, o)
			return
		}
		m.RequestForRouting()
	}
}

// vehicleServiceStartHook defaults to marking the current visit's
// pickup-list orders non-cancelable, ported from
// Model.on_vehicle_service_start.
func (m *Model) vehicleServiceStartHook() func(*elements.Vehicle) {
	return func(v *elements.Vehicle) {
		if m.cb.OnVehicleServiceStart != nil {
			m.cb.OnVehicleServiceStart(m, v)
			return
		}
		if v.CurrentVisit == nil {
			return
		}
		for _, o := range v.CurrentVisit.PickupList {
			o.CanBeRejectedOrCanceled = false
		}
	}
}

// onRoutingStart defaults to interrupting every order's postponement and
// every vehicle's pre-departure wait — NOT pre-service waits — ported
// from Model.on_routing_start.
func (m *Model) onRoutingStart() {
	if m.cb.OnRoutingStart != nil {
		m.cb.OnRoutingStart(m)
		return
	}
	for _, id := range m.orderOrder {
		m.orders[id].InterruptPostponement()
	}
	for _, id := range m.vehicleOrder {
		m.vehicles[id].InterruptPredeparture()
	}
}

// AddLocation registers a location, at most once per id.
func (m *Model) AddLocation(loc *elements.Location) error {
	if _, exists := m.locations[loc.ID]; exists {
		return errs.NewModelError("a location with id %s is already registered", loc.ID)
	}
	m.locations[loc.ID] = loc
	m.locationOrder = append(m.locationOrder, loc.ID)
	return nil
}

// AddVehicle registers a vehicle, at most once per id.
func (m *Model) AddVehicle(v *elements.Vehicle) error {
	if _, exists := m.vehicles[v.ID]; exists {
		return errs.NewModelError("a vehicle with id %s is already registered", v.ID)
	}
	v.SetHost(m)
	m.vehicles[v.ID] = v
	m.vehicleOrder = append(m.vehicleOrder, v.ID)
	return nil
}

func (m *Model) GetLocationByID(id string) *elements.Location { return m.locations[id] }
func (m *Model) GetVehicleByID(id string) *elements.Vehicle   { return m.vehicles[id] }
func (m *Model) GetOrderByID(id string) *elements.Order       { return m.orders[id] }

// Locations/Vehicles/Orders return every registered entity, in
// registration order.
func (m *Model) Locations() []*elements.Location {
	out := make([]*elements.Location, 0, len(m.locationOrder))
	for _, id := range m.locationOrder {
		out = append(out, m.locations[id])
	}
	return out
}

func (m *Model) Vehicles() []*elements.Vehicle {
	out := make([]*elements.Vehicle, 0, len(m.vehicleOrder))
	for _, id := range m.vehicleOrder {
		out = append(out, m.vehicles[id])
	}
	return out
}

func (m *Model) Orders() []*elements.Order {
	out := make([]*elements.Order, 0, len(m.orderOrder))
	for _, id := range m.orderOrder {
		out = append(out, m.orders[id])
	}
	return out
}

// OpenOrders returns every order still open for routing decisions.
func (m *Model) OpenOrders() []*elements.Order {
	var out []*elements.Order
	for _, o := range m.Orders() {
		if o.IsOpen() {
			out = append(out, o)
		}
	}
	return out
}

// OrdersUnderDelivery returns every order currently picked up but not
// yet delivered.
func (m *Model) OrdersUnderDelivery() []*elements.Order {
	var out []*elements.Order
	for _, o := range m.Orders() {
		if o.IsUnderDelivery() {
			out = append(out, o)
		}
	}
	return out
}

// DeliveredOrders returns every delivered order.
func (m *Model) DeliveredOrders() []*elements.Order {
	var out []*elements.Order
	for _, o := range m.Orders() {
		if o.IsDelivered() {
			out = append(out, o)
		}
	}
	return out
}

// CanceledOrders returns every canceled order.
func (m *Model) CanceledOrders() []*elements.Order {
	var out []*elements.Order
	for _, o := range m.Orders() {
		if o.IsCanceled() {
			out = append(out, o)
		}
	}
	return out
}

// CreateResource returns a new counted semaphore, for use as a
// Location's Resource; capacity <= 0 means unlimited.
func (m *Model) CreateResource(capacity int) *engine.Resource {
	return engine.NewResource(capacity)
}

// AllOrdersRequested is succeeded once every order supplied to an
// OrderProvider has been released into the model, ported from
// dvrpsim.model.Model.all_orders_are_requested.
func (m *Model) AllOrdersRequested() *engine.Signal { return m.allOrdersRequested }

// RequestOrder schedules the order's release at its ReleaseDate (now,
// if zero or in the past); if decisionPointOnRequest, a routing cycle
// is requested as soon as the order is added.
func (m *Model) RequestOrder(o *elements.Order, decisionPointOnRequest bool) {
	if o.ReleaseDate < m.Now() {
		o.ReleaseDate = m.Now()
	}
	delay := o.ReleaseDate - m.Now()
	release := func(eng *engine.Engine) {
		if err := m.addOrder(o); err != nil {
			panic(err)
		}
		m.log.OnOrderRequest(o)
		if cb := m.Callbacks().OnOrderRequest; cb != nil {
			cb(o)
		}
		if decisionPointOnRequest {
			m.RequestForRouting()
		}
	}
	if delay > 0 {
		m.eng.After(delay, release)
		return
	}
	release(m.eng)
}

func (m *Model) addOrder(o *elements.Order) error {
	if _, exists := m.orders[o.ID]; exists {
		return errs.NewModelError("an order with id %s is already registered", o.ID)
	}
	o.SetHost(m)
	m.orders[o.ID] = o
	m.orderOrder = append(m.orderOrder, o.ID)
	return nil
}

// Run executes the simulation until no events remain or the horizon is
// reached, calling OnSimulationStart/OnSimulationFinish around it. A
// ModelError or ConfigError raised by a callback during setup is
// returned; a panic from a SimulationError (an internal contradiction,
// not a caller-setup mistake) is caught and returned as-is, matching
// the original's catch-all Model.run.
func (m *Model) Run(horizon engine.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	m.onSimulationStart()
	m.eng.Run(&horizon)
	m.onSimulationFinish()
	return nil
}

// onSimulationStart gives every vehicle a synthetic visit at its
// initial location so the state machine always starts "at a location",
// ported from Model.on_simulation_start.
func (m *Model) onSimulationStart() {
	m.log.OnSimulationStart()

	for _, v := range m.Vehicles() {
		if v.InitialLocation == nil {
			m.log.Warning("vehicle %s has no initial location", v.ID)
			continue
		}
		if _, ok := m.locations[v.InitialLocation.ID]; !ok {
			panic(errs.NewModelError("vehicle %s's initial location %s is not registered with this model", v.ID, v.InitialLocation.ID))
		}
		visit := elements.NewVisit(v.InitialLocation)
		now := m.Now()
		visit.ArrivalTime = &now
		visit.ServiceStartTime = &now
		visit.ServiceFinishTime = &now
		v.CurrentVisit = visit
	}

	if m.cb.OnSimulationStart != nil {
		m.cb.OnSimulationStart(m)
	}
}

// onSimulationFinish requires every vehicle to have returned to idle,
// and warns about orders left in an indeterminate state, ported from
// Model.on_simulation_finish.
func (m *Model) onSimulationFinish() {
	m.log.OnSimulationFinish()

	for _, v := range m.Vehicles() {
		if !v.IsIdle() {
			panic(errs.NewSimulationError("vehicle %s did not return to idle by the end of the simulation", v.ID))
		}
		if v.CurrentVisit != nil {
			now := m.Now()
			v.CurrentVisit.DepartureTime = &now
			v.PreviousVisits = append(v.PreviousVisits, v.CurrentVisit)
			v.CurrentVisit = nil
		}
	}

	for _, o := range m.Orders() {
		if o.IsWithoutDecision() {
			m.log.Warning("order %s was never decided on", o.ID)
		}
		if o.IsAccepted() && !o.IsDelivered() {
			m.log.Warning("order %s was accepted but never delivered", o.ID)
		}
	}

	if m.cb.OnSimulationFinish != nil {
		m.cb.OnSimulationFinish(m)
	}
}

