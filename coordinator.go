package dvrpsim

import (
	"time"

	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/sztaki-hu/dvrpsim/errs"
)

// processedVehicleDecision is a RawDecision's per-vehicle entry, typed
// and validated against the model's registered locations/orders but not
// yet checked for feasibility. A nil *processedVehicleDecision (the
// map's zero value for an id absent from the raw decision) means "no
// change", matching wire.RawDecision's "missing entries mean no change".
type processedVehicleDecision struct {
	vehicle *elements.Vehicle

	hasCurrentVisit bool
	currentVisit    *elements.Visit

	hasNextVisits bool
	nextVisits    []*elements.Visit
}

type processedOrderDecision struct {
	order          *elements.Order
	status         string
	postponedUntil *engine.Time
}

type processedDecision struct {
	vehicles map[string]*processedVehicleDecision
	orders   []processedOrderDecision
}

// RequestForRouting imposes a routing decision point, coalescing
// concurrent requests within the same instant into a single pending
// cycle, ported from dvrpsim.model.Model.request_for_routing.
func (m *Model) RequestForRouting() {
	if m.requestedRoutingFinished != nil {
		return
	}
	m.requestedRoutingFinished = engine.NewSignal()

	// First zero-delay step lets every other same-instant event settle
	// before the snapshot is taken, ported from _routing's first
	// `yield high_timeout(0)`.
	m.eng.After(0, func(eng *engine.Engine) {
		m.routingQuiesce(eng)
	})
}

func (m *Model) routingQuiesce(eng *engine.Engine) {
	finish := m.requestedRoutingFinished
	m.requestedRoutingFinished = nil

	if m.routingInProgress {
		panic(errs.NewSimulationError("a routing cycle is already in progress"))
	}

	m.epoch++
	m.log.OnRoutingStart()
	if cb := m.Callbacks().OnRoutingStart; cb != nil {
		cb()
	}

	// Second zero-delay step, ported from _routing's second
	// `yield high_timeout(0)` between quiescing waits and snapshotting.
	eng.After(0, func(eng *engine.Engine) {
		m.runRoutingCycle(eng, finish)
	})
}

func (m *Model) runRoutingCycle(eng *engine.Engine, finish *engine.Signal) {
	m.routingInProgress = true

	state := m.GetState()
	callbackStart := time.Now()
	raw := m.invokeRoutingCallback(state)
	elapsed := engine.Time(time.Since(callbackStart).Seconds())

	result := &RawDecisionResult{Decision: raw}

	delay := m.simulateElapsedRoutingTime(elapsed)

	eng.After(delay, func(eng *engine.Engine) {
		m.routingInProgress = false

		func() {
			defer func() {
				if r := recover(); r != nil {
					if e, ok := r.(error); ok {
						result.Err = e
						m.log.Warning("routing decision rejected: %v", e)
						return
					}
					panic(r)
				}
			}()
			pd, err := m.processDecision(raw)
			if err != nil {
				panic(err)
			}
			if err := checkStateFeasibilityConstraints(pd); err != nil {
				panic(err)
			}
			if err := checkCapacityConstraints(m, pd); err != nil {
				panic(err)
			}
			if err := checkLoadingConstraints(m, pd); err != nil {
				panic(err)
			}
			m.enforceDecision(pd)
		}()

		m.log.OnRoutingFinish()
		if cb := m.Callbacks().OnRoutingFinish; cb != nil {
			cb(result)
		}

		finish.Trigger(eng)
	})
}

// invokeRoutingCallback runs the user routing callback, falling back to
// the reject-all default, ported from dvrpsim.model.Model.routing_callback.
func (m *Model) invokeRoutingCallback(state State) RawDecision {
	if m.cb.RoutingCallback != nil {
		return m.cb.RoutingCallback(m, state)
	}

	m.log.Warning("routing callback is not implemented (all orders will be rejected)")
	orders := map[string]OrderDecision{}
	for id := range state.OpenOrders {
		orders[id] = OrderDecision{Status: "rejected"}
	}
	return RawDecision{Vehicles: map[string]*VehicleDecision{}, Orders: orders}
}

func (m *Model) simulateElapsedRoutingTime(elapsed engine.Time) engine.Time {
	if m.cb.SimulateElapsedRoutingTime != nil {
		return m.cb.SimulateElapsedRoutingTime(m, elapsed)
	}
	return 0
}

// processDecision validates ids and converts the raw JSON-shaped
// decision into typed references, ported from
// dvrpsim.model.Model._process_decision.
func (m *Model) processDecision(raw RawDecision) (*processedDecision, error) {
	pd := &processedDecision{vehicles: map[string]*processedVehicleDecision{}}

	for vehicleID, vdRaw := range raw.Vehicles {
		v := m.GetVehicleByID(vehicleID)
		if v == nil {
			return nil, errs.NewDecisionError("decision references unknown vehicle %s", vehicleID)
		}
		if vdRaw == nil {
			continue // explicit no-change
		}

		vd := &processedVehicleDecision{vehicle: v}

		if vdRaw.CurrentVisit != nil {
			visit, err := m.wireVisitToElements(vdRaw.CurrentVisit)
			if err != nil {
				return nil, err
			}
			vd.hasCurrentVisit = true
			vd.currentVisit = visit
		}
		if vdRaw.NextVisits != nil {
			vd.hasNextVisits = true
			for _, wv := range vdRaw.NextVisits {
				visit, err := m.wireVisitToElements(&wv)
				if err != nil {
					return nil, err
				}
				vd.nextVisits = append(vd.nextVisits, visit)
			}
		}

		pd.vehicles[vehicleID] = vd
	}

	for orderID, od := range raw.Orders {
		o := m.GetOrderByID(orderID)
		if o == nil {
			return nil, errs.NewDecisionError("decision references unknown order %s", orderID)
		}
		switch od.Status {
		case "accepted", "rejected", "postponed":
		default:
			return nil, errs.NewDecisionError("order %s: invalid decision status %q", orderID, od.Status)
		}
		if od.Status == "postponed" && od.PostponedUntil == nil {
			return nil, errs.NewDecisionError("order %s: postponed decision requires postponed_until", orderID)
		}
		pod := processedOrderDecision{order: o, status: od.Status}
		if od.PostponedUntil != nil {
			until := engine.Time(*od.PostponedUntil)
			pod.postponedUntil = &until
		}
		pd.orders = append(pd.orders, pod)
	}

	return pd, nil
}

func (m *Model) wireVisitToElements(wv *Visit) (*elements.Visit, error) {
	loc := m.GetLocationByID(wv.Location)
	if loc == nil {
		return nil, errs.NewDecisionError("decision references unknown location %s", wv.Location)
	}
	visit := elements.NewVisit(loc)

	for _, id := range wv.PickupList {
		o := m.GetOrderByID(id)
		if o == nil {
			return nil, errs.NewDecisionError("decision references unknown order %s in pickup_list", id)
		}
		visit.PickupList = append(visit.PickupList, o)
	}
	for _, id := range wv.DeliveryList {
		o := m.GetOrderByID(id)
		if o == nil {
			return nil, errs.NewDecisionError("decision references unknown order %s in delivery_list", id)
		}
		visit.DeliveryList = append(visit.DeliveryList, o)
	}
	if wv.EarliestStartTime != nil {
		t := engine.Time(*wv.EarliestStartTime)
		visit.EarliestStartTime = &t
	}
	// Decision-supplied visits never carry factual timestamps — only
	// the routing callback's intent, not the simulator's record of what
	// actually happened.
	return visit, nil
}

// enforceDecision applies a validated decision: orders first, then
// vehicles, ported from dvrpsim.model.Model._enforce_decision.
func (m *Model) enforceDecision(pd *processedDecision) {
	for _, pod := range pd.orders {
		var err error
		switch pod.status {
		case "accepted":
			err = pod.order.Accept()
		case "rejected":
			err = pod.order.Reject()
		case "postponed":
			err = pod.order.Postpone(*pod.postponedUntil)
		}
		if err != nil {
			panic(errs.NewDecisionError("order %s: %v", pod.order.ID, err))
		}
	}

	for _, v := range m.Vehicles() {
		vd, ok := pd.vehicles[v.ID]
		if !ok || vd == nil {
			continue
		}

		if vd.hasCurrentVisit {
			// Only pickup/delivery lists are overwritten in place; the
			// existing factual timestamps on current_visit are kept.
			v.CurrentVisit.PickupList = vd.currentVisit.PickupList
			v.CurrentVisit.DeliveryList = vd.currentVisit.DeliveryList
		}

		if vd.hasNextVisits {
			v.NextVisits = vd.nextVisits
		}

		if v.IsIdle() {
			v.Run()
		}
	}
}
