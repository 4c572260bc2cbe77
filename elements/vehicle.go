package elements

import (
	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/sztaki-hu/dvrpsim/errs"
)

// VehicleStatus is the vehicle's current execution phase.
type VehicleStatus int

const (
	Idle VehicleStatus = iota
	EnRoute
	WaitingForService
	UnderService
)

func (s VehicleStatus) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case EnRoute:
		return "EN_ROUTE"
	case WaitingForService:
		return "WAITING_FOR_SERVICE"
	case UnderService:
		return "UNDER_SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Loading is a vehicle's loading-rule constraint on the order in which
// carried orders may be delivered.
type Loading int

const (
	LoadingNone Loading = iota
	LoadingFIFO
	LoadingLIFO
)

// VehicleCallbacks holds optional per-vehicle hook overrides, mirroring
// dvrpsim.elements.vehicle.Vehicle's overridable methods.
type VehicleCallbacks struct {
	// TravelTime/TravelDistance default to 0, matching the original base
	// class — a real scenario always supplies both.
	TravelTime     func(origin, destination *Location) engine.Time
	TravelDistance func(origin, destination *Location) float64

	OnPredepartureInterruption func()
	OnDeparture                func()
	// OnTravelInterruption is never called: travel is scheduled as an
	// uninterruptible wait, so it cannot be interrupted.
	OnTravelInterruption func()
	OnArrival            func()
	// OnPreserviceInterruption is called when the pre-service wait is
	// interrupted; the vehicle then panics with a SimulationError whatever
	// the hook does, since pre-service is not interruptible.
	OnPreserviceInterruption func()
	OnServiceStart           func()
	OnServiceInterruption    func()
	OnServiceFinish          func()
}

// Vehicle executes a route as an explicit state machine: each phase
// method runs synchronous work and then suspends by scheduling its own
// continuation on the engine, rather than blocking inside a coroutine.
type Vehicle struct {
	ID               string
	InitialLocation  *Location
	Capacity         *float64 // nil means uncapacitated
	LoadingRule      Loading
	Aux              map[string]any

	Callbacks *VehicleCallbacks

	Status          VehicleStatus
	PreviousVisits  []*Visit
	CurrentVisit    *Visit
	NextVisits      []*Visit
	CarryingOrders  []*Order

	host    Host
	running bool

	predepartureWait *engine.Wait
	preserviceWait   *engine.Wait
	serviceRequestActive bool
}

// NewVehicle returns an idle vehicle with no route.
func NewVehicle(id string) *Vehicle {
	return &Vehicle{ID: id, Aux: map[string]any{}}
}

func (v *Vehicle) String() string { return v.ID }

func (v *Vehicle) SetHost(h Host) { v.host = h }

func (v *Vehicle) IsCapacitated() bool      { return v.Capacity != nil }
func (v *Vehicle) IsSubjectToLIFOLoad() bool { return v.LoadingRule == LoadingLIFO }
func (v *Vehicle) IsSubjectToFIFOLoad() bool { return v.LoadingRule == LoadingFIFO }

func (v *Vehicle) IsIdle() bool              { return v.Status == Idle }
func (v *Vehicle) IsEnRoute() bool           { return v.Status == EnRoute }
func (v *Vehicle) IsWaitingForService() bool { return v.Status == WaitingForService }
func (v *Vehicle) IsUnderService() bool      { return v.Status == UnderService }

func (v *Vehicle) IsAtLocation() bool { return v.CurrentVisit != nil }
func (v *Vehicle) IsOnTheWay() bool   { return v.CurrentVisit == nil }

func (v *Vehicle) HasNextVisit() bool { return len(v.NextVisits) > 0 }
func (v *Vehicle) NextVisit() *Visit {
	if !v.HasNextVisit() {
		return nil
	}
	return v.NextVisits[0]
}

func (v *Vehicle) HasPreviousVisit() bool { return len(v.PreviousVisits) > 0 }
func (v *Vehicle) PreviousVisit() *Visit {
	if !v.HasPreviousVisit() {
		return nil
	}
	return v.PreviousVisits[len(v.PreviousVisits)-1]
}

func (v *Vehicle) PreviousLocation() *Location {
	if pv := v.PreviousVisit(); pv != nil {
		return pv.Location
	}
	return nil
}

func (v *Vehicle) CurrentLocation() *Location {
	if v.CurrentVisit != nil {
		return v.CurrentVisit.Location
	}
	return nil
}

func (v *Vehicle) NextLocation() *Location {
	if nv := v.NextVisit(); nv != nil {
		return nv.Location
	}
	return nil
}

func (v *Vehicle) travelTime(origin, destination *Location) engine.Time {
	if v.Callbacks != nil && v.Callbacks.TravelTime != nil {
		return v.Callbacks.TravelTime(origin, destination)
	}
	return 0
}

func (v *Vehicle) travelDistance(origin, destination *Location) float64 {
	if v.Callbacks != nil && v.Callbacks.TravelDistance != nil {
		return v.Callbacks.TravelDistance(origin, destination)
	}
	return 0
}

// TravelDistance is the exported form used by statistics collection.
func (v *Vehicle) TravelDistance(origin, destination *Location) float64 {
	return v.travelDistance(origin, destination)
}

// Run starts (or resumes) the vehicle's execution procedure: it must be
// idle, at a location, with no suspension in progress, and it must have
// a next visit queued. Run is a no-op (not an error) if there is
// nothing to do, matching _execution_procedure's early return.
func (v *Vehicle) Run() {
	if v.running {
		panic(errs.NewSimulationError("vehicle %s is already running", v.ID))
	}
	if !v.IsIdle() {
		panic(errs.NewSimulationError("starting vehicle %s has unexpected status (%s)", v.ID, v.Status))
	}
	if !v.IsAtLocation() {
		panic(errs.NewSimulationError("starting vehicle %s has no current visit to departure from", v.ID))
	}

	if !v.HasNextVisit() {
		return
	}

	v.running = true
	v.enterPreDeparture(v.host.Engine())
}

// InterruptPredeparture interrupts the pre-departure wait, if any.
func (v *Vehicle) InterruptPredeparture() {
	if v.predepartureWait != nil {
		v.host.Engine().Interrupt(v.predepartureWait)
	}
}

// InterruptPreservice interrupts the pre-service earliest-start wait, if
// any. Travel and service itself are never interruptible, matching the
// original's raise-by-default on_travel_interruption/on_preservice_interruption
// overrides — this engine simply never schedules an interruptible wait
// for those phases, so there is nothing for a coordinator to interrupt.
func (v *Vehicle) InterruptPreservice() {
	if v.preserviceWait != nil {
		v.host.Engine().Interrupt(v.preserviceWait)
	}
}

// ---- phase: pre-departure ----

func (v *Vehicle) enterPreDeparture(e *engine.Engine) {
	nv := v.NextVisit()
	waitTime := engine.Time(0)
	if nv.EarliestStartTime != nil {
		waitTime = *nv.EarliestStartTime - v.host.Now()
	}

	if waitTime > 0 {
		v.host.Log().OnDeparturePostponement(v, *nv.EarliestStartTime)
		v.predepartureWait = e.AfterInterruptible(waitTime, func(eng *engine.Engine, interrupted bool) {
			v.predepartureWait = nil
			if interrupted {
				v.host.Log().OnPredepartureInterruption(v)
				if v.Callbacks != nil {
					callVoidHook(v.Callbacks.OnPredepartureInterruption)
				}
				if v.host.Callbacks().OnVehiclePredepartureInterruption != nil {
					v.host.Callbacks().OnVehiclePredepartureInterruption(v)
				}
				v.running = false
				return
			}
			v.departAndTravel(eng)
		})
		return
	}

	v.departAndTravel(e)
}

// ---- phase: departure + travel ----

func (v *Vehicle) departAndTravel(e *engine.Engine) {
	factualTravel := v.CurrentLocation() != v.NextLocation()

	// departure
	now := v.host.Now()
	v.CurrentVisit.DepartureTime = &now
	v.PreviousVisits = append(v.PreviousVisits, v.CurrentVisit)
	v.CurrentVisit = nil
	v.Status = EnRoute

	if factualTravel {
		v.host.Log().OnDeparture(v)
	}
	if v.Callbacks != nil {
		callVoidHook(v.Callbacks.OnDeparture)
	}
	if v.host.Callbacks().OnVehicleDeparture != nil {
		v.host.Callbacks().OnVehicleDeparture(v)
	}

	if !factualTravel {
		v.arrive(e)
		return
	}

	travelDelay := v.travelTime(v.PreviousLocation(), v.NextLocation())
	e.After(travelDelay, func(eng *engine.Engine) {
		v.arrive(eng)
	})
}

// ---- phase: arrival ----

func (v *Vehicle) arrive(e *engine.Engine) {
	v.CurrentVisit = v.NextVisits[0]
	v.NextVisits = v.NextVisits[1:]

	now := v.host.Now()
	v.CurrentVisit.ArrivalTime = &now
	v.Status = WaitingForService

	v.host.Log().OnArrival(v)
	if v.Callbacks != nil {
		callVoidHook(v.Callbacks.OnArrival)
	}
	if v.host.Callbacks().OnVehicleArrival != nil {
		v.host.Callbacks().OnVehicleArrival(v)
	}

	v.enterPreService(e)
}

// ---- phase: pre-service ----

// enterPreService concurrently requests the destination's resource (if
// any) and waits for the orders' own earliest-service-start bound. Both
// must complete before service can start; the engine is single-threaded
// so they are sequenced here, but the net effect (service cannot start
// until both are satisfied) matches the original's "&" join of the two
// sub-processes.
func (v *Vehicle) enterPreService(e *engine.Engine) {
	pending := 1 // the earliest-start wait always "pending" until resolved
	resourceGranted := v.CurrentLocation().Resource == nil

	proceed := func(eng *engine.Engine) {
		if resourceGranted && pending == 0 {
			v.startService(eng)
		}
	}

	if v.CurrentLocation().Resource != nil {
		v.host.Log().OnServiceRequest(v)
		v.serviceRequestActive = true
		v.CurrentLocation().Resource.Request(e, func(eng *engine.Engine) {
			resourceGranted = true
			proceed(eng)
		})
	}

	earliestStart := v.CurrentVisit.EarliestServiceStartTime()
	waitTime := earliestStart - v.host.Now()

	if waitTime > 0 {
		v.host.Log().Custom("waiting for earliest start time", v)
		v.preserviceWait = e.AfterInterruptible(waitTime, func(eng *engine.Engine, interrupted bool) {
			v.preserviceWait = nil
			if interrupted {
				// pre-service interruption is not allowed by default,
				// matching on_preservice_interruption's raise.
				v.host.Log().OnPreserviceInterruption(v)
				if v.Callbacks != nil && v.Callbacks.OnPreserviceInterruption != nil {
					v.Callbacks.OnPreserviceInterruption()
				}
				if v.host.Callbacks().OnVehiclePreserviceInterruption != nil {
					v.host.Callbacks().OnVehiclePreserviceInterruption(v)
				}
				panic(errs.NewSimulationError("interrupting pre-service is not allowed"))
			}
			pending = 0
			proceed(eng)
		})
		return
	}

	pending = 0
	proceed(e)
}

// ---- phase: service ----

func (v *Vehicle) startService(e *engine.Engine) {
	now := v.host.Now()
	v.CurrentVisit.ServiceStartTime = &now
	v.Status = UnderService

	v.host.Log().OnServiceStart(v)
	if v.Callbacks != nil {
		callVoidHook(v.Callbacks.OnServiceStart)
	}
	// default: mark pickup-list orders non-cancelable, ported from
	// Model.on_vehicle_service_start.
	for _, o := range v.CurrentVisit.PickupList {
		o.CanBeRejectedOrCanceled = false
	}
	if v.host.Callbacks().OnVehicleServiceStart != nil {
		v.host.Callbacks().OnVehicleServiceStart(v)
	}

	v.runServiceSteps(e, 0, false)
}

// runServiceSteps runs the delivery list then the pickup list, one
// uninterruptible service-duration wait per order, sequenced via
// continuation passing since the engine has no goroutines to block on.
func (v *Vehicle) runServiceSteps(e *engine.Engine, idx int, pickupPhase bool) {
	list := v.CurrentVisit.DeliveryList
	if pickupPhase {
		list = v.CurrentVisit.PickupList
	}

	if idx >= len(list) {
		if !pickupPhase {
			v.runServiceSteps(e, 0, true)
			return
		}
		v.finishService(e)
		return
	}

	order := list[idx]
	if !pickupPhase {
		v.deliverOrder(e, order, func(eng *engine.Engine) {
			v.runServiceSteps(eng, idx+1, false)
		})
		return
	}
	v.pickupOrder(e, order, func(eng *engine.Engine) {
		v.runServiceSteps(eng, idx+1, true)
	})
}

func (v *Vehicle) deliverOrder(e *engine.Engine, order *Order, done func(*engine.Engine)) {
	if !order.IsPickedUp() {
		panic(errs.NewSimulationError("order %s to deliver is not picked up yet", order.ID))
	}
	if order.IsDelivered() {
		panic(errs.NewSimulationError("order %s to deliver is already delivered", order.ID))
	}
	if v.CurrentLocation() != order.DeliveryLocation {
		panic(errs.NewSimulationError("delivery location of order %s is %s", order.ID, order.DeliveryLocation))
	}

	finish := func(eng *engine.Engine) {
		switch {
		case v.IsSubjectToFIFOLoad():
			if len(v.CarryingOrders) == 0 || v.CarryingOrders[0] != order {
				panic(errs.NewSimulationError("FIFO loading rule for vehicle %s is violated by delivering order %s", v.ID, order.ID))
			}
			v.CarryingOrders = v.CarryingOrders[1:]
		case v.IsSubjectToLIFOLoad():
			if len(v.CarryingOrders) == 0 || v.CarryingOrders[len(v.CarryingOrders)-1] != order {
				panic(errs.NewSimulationError("LIFO loading rule for vehicle %s is violated by delivering order %s", v.ID, order.ID))
			}
			v.CarryingOrders = v.CarryingOrders[:len(v.CarryingOrders)-1]
		default:
			idx := -1
			for i, co := range v.CarryingOrders {
				if co == order {
					idx = i
					break
				}
			}
			if idx < 0 {
				panic(errs.NewSimulationError("order %s to deliver is currently not on vehicle %s", order.ID, v.ID))
			}
			v.CarryingOrders = append(v.CarryingOrders[:idx], v.CarryingOrders[idx+1:]...)
		}

		order.Deliver()
		done(eng)
	}

	if order.DeliveryDuration > 0 {
		e.After(order.DeliveryDuration, finish)
		return
	}
	finish(e)
}

func (v *Vehicle) pickupOrder(e *engine.Engine, order *Order, done func(*engine.Engine)) {
	if order.IsDelivered() {
		panic(errs.NewSimulationError("order %s to pickup is already delivered", order.ID))
	}
	if order.IsPickedUp() {
		panic(errs.NewSimulationError("order %s to pickup is already picked up", order.ID))
	}
	if v.CurrentLocation() != order.PickupLocation {
		panic(errs.NewSimulationError("the pickup location of order %s is %s", order.ID, order.PickupLocation))
	}
	if v.IsCapacitated() {
		loaded := 0.0
		for _, co := range v.CarryingOrders {
			loaded += co.Quantity
		}
		if *v.Capacity+0.000001 < loaded+order.Quantity {
			panic(errs.NewSimulationError("capacity constraint for vehicle %s is violated when loading order %s", v.ID, order.ID))
		}
	}

	finish := func(eng *engine.Engine) {
		v.CarryingOrders = append(v.CarryingOrders, order)
		order.Pickup(v)
		done(eng)
	}

	if order.PickupDuration > 0 {
		e.After(order.PickupDuration, finish)
		return
	}
	finish(e)
}

// ---- phase: service finish ----

func (v *Vehicle) finishService(e *engine.Engine) {
	if v.serviceRequestActive && v.CurrentLocation().Resource != nil {
		v.CurrentLocation().Resource.Release(e)
		v.serviceRequestActive = false
	}

	now := v.host.Now()
	v.CurrentVisit.ServiceFinishTime = &now
	v.Status = Idle
	v.running = false

	v.host.Log().OnServiceFinish(v)
	if v.Callbacks != nil {
		callVoidHook(v.Callbacks.OnServiceFinish)
	}
	if v.host.Callbacks().OnVehicleServiceFinish != nil {
		v.host.Callbacks().OnVehicleServiceFinish(v)
	}

	if v.HasNextVisit() {
		v.Run()
	}
}
