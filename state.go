package dvrpsim

import (
	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/engine"
)

func timeVal(t engine.Time) float64 { return float64(t) }

func timePtrVal(t *engine.Time) *float64 {
	if t == nil {
		return nil
	}
	v := float64(*t)
	return &v
}

func orderIDs(orders []*elements.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func visitToWire(v *elements.Visit) *Visit {
	if v == nil {
		return nil
	}
	return &Visit{
		Location:          v.Location.ID,
		PickupList:        orderIDs(v.PickupList),
		DeliveryList:      orderIDs(v.DeliveryList),
		EarliestStartTime: timePtrVal(v.EarliestStartTime),
		ArrivalTime:       timePtrVal(v.ArrivalTime),
		ServiceStartTime:  timePtrVal(v.ServiceStartTime),
		ServiceFinishTime: timePtrVal(v.ServiceFinishTime),
		DepartureTime:     timePtrVal(v.DepartureTime),
		Aux:               v.Aux,
	}
}

// GetState snapshots the model for a routing callback, ported from
// dvrpsim.model.Model.get_state.
func (m *Model) GetState() State {
	state := State{
		Time:       timeVal(m.Now()),
		Vehicles:   map[string]VehicleState{},
		OpenOrders: map[string]OpenOrder{},
		Aux:        m.Aux,
	}

	for _, v := range m.Vehicles() {
		nextVisits := make([]Visit, 0, len(v.NextVisits))
		for _, nv := range v.NextVisits {
			nextVisits = append(nextVisits, *visitToWire(nv))
		}
		var previousVisit *Visit
		if v.IsOnTheWay() {
			previousVisit = visitToWire(v.PreviousVisit())
		}
		var currentVisit *Visit
		if v.IsAtLocation() {
			currentVisit = visitToWire(v.CurrentVisit)
		}
		state.Vehicles[v.ID] = VehicleState{
			Status:         v.Status.String(),
			PreviousVisit:  previousVisit,
			CurrentVisit:   currentVisit,
			NextVisits:     nextVisits,
			CarryingOrders: orderIDs(v.CarryingOrders),
		}
	}

	for _, o := range m.OpenOrders() {
		var pickupVehicle *string
		if o.PickupVehicle != nil {
			id := o.PickupVehicle.ID
			pickupVehicle = &id
		}
		state.OpenOrders[o.ID] = OpenOrder{
			ID:                           o.ID,
			OriginalID:                   o.OriginalID,
			PickupLocation:               idOrEmpty(o.PickupLocation),
			DeliveryLocation:             idOrEmpty(o.DeliveryLocation),
			ReleaseDate:                  timeVal(o.ReleaseDate),
			DueDate:                      timePtrVal(o.DueDate),
			EarliestServiceStartPickup:   timePtrVal(o.EarliestPickupStart),
			LatestServiceStartPickup:     timePtrVal(o.LatestPickupStart),
			EarliestServiceStartDelivery: timePtrVal(o.EarliestDeliveryStart),
			LatestServiceStartDelivery:   timePtrVal(o.LatestDeliveryStart),
			Quantity:                     o.Quantity,
			AssignedVehicle:              m.assignedVehicleOf(o),
			PickupTime:                   timePtrVal(o.PickupTime),
			PickupVehicle:                pickupVehicle,
			Status:                       string(o.Status()),
			Aux:                          o.Aux,
		}
	}

	for _, o := range m.CanceledOrders() {
		state.CanceledOrders = append(state.CanceledOrders, o.ID)
	}

	return state
}

func idOrEmpty(l *elements.Location) string {
	if l == nil {
		return ""
	}
	return l.ID
}

// assignedVehicleOf scans every vehicle's loaded orders, current visit's
// pickup list, and queued visits' pickup lists for the given order,
// since an open order's eventual carrier may be decided but not yet
// picked up — ported from get_state's third pass over open_orders.
func (m *Model) assignedVehicleOf(o *elements.Order) *string {
	if o.PickupVehicle != nil {
		id := o.PickupVehicle.ID
		return &id
	}
	for _, v := range m.Vehicles() {
		for _, co := range v.CarryingOrders {
			if co == o {
				id := v.ID
				return &id
			}
		}
		if v.CurrentVisit != nil {
			for _, po := range v.CurrentVisit.PickupList {
				if po == o {
					id := v.ID
					return &id
				}
			}
		}
		for _, nv := range v.NextVisits {
			for _, po := range nv.PickupList {
				if po == o {
					id := v.ID
					return &id
				}
			}
		}
	}
	return nil
}
