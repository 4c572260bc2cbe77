package dvrpsim

import (
	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/errs"
)

// checkStateFeasibilityConstraints rejects decisions that rewrite a
// vehicle's committed visit or divert it while en route, ported from
// dvrpsim.utils.checker.check_state_feasibility_constraints.
func checkStateFeasibilityConstraints(pd *processedDecision) error {
	for vehicleID, vd := range pd.vehicles {
		if vd == nil {
			continue
		}
		v := vd.vehicle

		if vd.hasCurrentVisit {
			if v.IsEnRoute() {
				return errs.NewDecisionError("vehicle %s: cannot set current_visit while en route", vehicleID)
			}
			if v.CurrentVisit == nil {
				return errs.NewDecisionError("vehicle %s: no current visit to rewrite", vehicleID)
			}
			if v.CurrentVisit.ServiceStartTime != nil {
				return errs.NewDecisionError("vehicle %s: cannot rewrite current_visit after service has started", vehicleID)
			}
		}

		if vd.hasNextVisits && v.IsEnRoute() {
			if len(vd.nextVisits) == 0 {
				return errs.NewDecisionError("vehicle %s: next_visits cannot be emptied while en route", vehicleID)
			}
			if vd.nextVisits[0].Location != v.NextLocation() {
				return errs.NewDecisionError("vehicle %s: cannot divert away from the committed destination while en route", vehicleID)
			}
		}
	}
	return nil
}

// checkCapacityConstraints verifies, for every vehicle, that its
// capacity is never exceeded along the route that would result from
// applying the decision, ported from
// dvrpsim.utils.checker.check_capacity_constraints.
func checkCapacityConstraints(m *Model, pd *processedDecision) error {
	for _, v := range m.Vehicles() {
		route := effectiveRoute(v, pd.vehicles[v.ID])
		if err := checkCapacityConstraintOfVehicle(v, route); err != nil {
			return err
		}
	}
	return nil
}

// effectiveRoute returns [current_visit?] + next_visits as it would be
// after applying vd (nil vd means "no change").
func effectiveRoute(v *elements.Vehicle, vd *processedVehicleDecision) []*elements.Visit {
	var route []*elements.Visit

	current := v.CurrentVisit
	if vd != nil && vd.hasCurrentVisit {
		current = vd.currentVisit
	}
	if current != nil {
		route = append(route, current)
	}

	next := v.NextVisits
	if vd != nil && vd.hasNextVisits {
		next = vd.nextVisits
	}
	route = append(route, next...)

	return route
}

// checkLoadingConstraints verifies, for every FIFO/LIFO vehicle, that
// the route resulting from the decision delivers each carried (or
// about-to-be-carried) order in an order consistent with its loading
// rule. This is a decision-time counterpart of the ordering checks
// vehicle.go's deliverOrder enforces at execution time: catching the
// violation here rejects the whole decision with a DecisionError
// before any part of the new route starts executing, rather than
// letting the vehicle's state machine run partway into a route that
// panics mid-service.
func checkLoadingConstraints(m *Model, pd *processedDecision) error {
	for _, v := range m.Vehicles() {
		if !v.IsSubjectToFIFOLoad() && !v.IsSubjectToLIFOLoad() {
			continue
		}

		route := effectiveRoute(v, pd.vehicles[v.ID])
		carrying := append([]*elements.Order{}, v.CarryingOrders...)

		for _, visit := range route {
			for _, o := range visit.DeliveryList {
				switch {
				case v.IsSubjectToFIFOLoad():
					if len(carrying) == 0 || carrying[0] != o {
						return errs.NewDecisionError("vehicle %s: FIFO loading rule would be violated by delivering order %s out of order", v.ID, o.ID)
					}
					carrying = carrying[1:]
				case v.IsSubjectToLIFOLoad():
					if len(carrying) == 0 || carrying[len(carrying)-1] != o {
						return errs.NewDecisionError("vehicle %s: LIFO loading rule would be violated by delivering order %s out of order", v.ID, o.ID)
					}
					carrying = carrying[:len(carrying)-1]
				}
			}
			carrying = append(carrying, visit.PickupList...)
		}
	}
	return nil
}

func quantitySum(orders []*elements.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.Quantity
	}
	return sum
}

func checkCapacityConstraintOfVehicle(v *elements.Vehicle, route []*elements.Visit) error {
	if !v.IsCapacitated() || len(route) == 0 {
		return nil
	}

	loaded := quantitySum(v.CarryingOrders)

	first := route[0]
	switch {
	case first.ServiceStartTime == nil:
		loaded -= quantitySum(first.DeliveryList)
		loaded += quantitySum(first.PickupList)
	case first.ServiceFinishTime == nil:
		for _, o := range first.DeliveryList {
			if !o.IsDelivered() {
				loaded -= o.Quantity
			}
		}
		for _, o := range first.PickupList {
			if !o.IsPickedUp() {
				loaded += o.Quantity
			}
		}
	}

	if *v.Capacity+0.0001 <= loaded {
		return errs.NewDecisionError("vehicle %s: capacity %.4f exceeded by loaded quantity %.4f at %s", v.ID, *v.Capacity, loaded, first.Location)
	}

	for _, visit := range route[1:] {
		loaded -= quantitySum(visit.DeliveryList)
		loaded += quantitySum(visit.PickupList)
		if *v.Capacity+0.0001 <= loaded {
			return errs.NewDecisionError("vehicle %s: capacity %.4f exceeded by loaded quantity %.4f at %s", v.ID, *v.Capacity, loaded, visit.Location)
		}
	}

	return nil
}
