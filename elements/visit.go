package elements

import "github.com/sztaki-hu/dvrpsim/engine"

// Visit is a single stop on a vehicle's route: a location, the orders to
// drop off and pick up there, and (once the vehicle has actually
// visited it) the factual timestamps of the stop.
type Visit struct {
	Location            *Location
	DeliveryList         []*Order
	PickupList           []*Order
	EarliestStartTime    *engine.Time // optional; nil means no constraint

	Aux map[string]any

	// Set during simulation.
	ArrivalTime        *engine.Time
	ServiceStartTime   *engine.Time
	ServiceFinishTime  *engine.Time
	DepartureTime      *engine.Time
}

// NewVisit returns an empty Visit at the given location.
func NewVisit(location *Location) *Visit {
	return &Visit{Location: location, Aux: map[string]any{}}
}

// WaitingTime returns service_start - arrival, or nil if either is unset.
func (v *Visit) WaitingTime() *engine.Time {
	if v.ArrivalTime == nil || v.ServiceStartTime == nil {
		return nil
	}
	d := *v.ServiceStartTime - *v.ArrivalTime
	return &d
}

// ServiceTime returns service_finish - service_start, or nil if either is unset.
func (v *Visit) ServiceTime() *engine.Time {
	if v.ServiceFinishTime == nil || v.ServiceStartTime == nil {
		return nil
	}
	d := *v.ServiceFinishTime - *v.ServiceStartTime
	return &d
}

// IdleTime returns departure - service_finish, or nil if either is unset.
func (v *Visit) IdleTime() *engine.Time {
	if v.DepartureTime == nil || v.ServiceFinishTime == nil {
		return nil
	}
	d := *v.DepartureTime - *v.ServiceFinishTime
	return &d
}

// EarliestServiceStartTime returns the latest of the pickup/delivery
// orders' own earliest-start bounds at this visit (0 if none apply).
func (v *Visit) EarliestServiceStartTime() engine.Time {
	var best engine.Time
	for _, o := range v.PickupList {
		if o.EarliestPickupStart != nil && *o.EarliestPickupStart > best {
			best = *o.EarliestPickupStart
		}
	}
	for _, o := range v.DeliveryList {
		if o.EarliestDeliveryStart != nil && *o.EarliestDeliveryStart > best {
			best = *o.EarliestDeliveryStart
		}
	}
	return best
}
