package cmd

import (
	"sort"

	"github.com/sztaki-hu/dvrpsim"
)

// GreedyRoutingCallback is a sample routing callback: open, unassigned
// orders are taken in id order, and each is accepted and handed to the
// next idle vehicle with no queued route, as a two-stop pickup-then-
// delivery visit pair. Each vehicle gets at most one order per call;
// orders beyond the number of such vehicles are left undecided. It is
// a worked example for `dvrpsim run
// --greedy`, not a production solver — a real deployment supplies its
// own RoutingCallback.
func GreedyRoutingCallback(m *dvrpsim.Model, state dvrpsim.State) dvrpsim.RawDecision {
	decision := dvrpsim.RawDecision{
		Vehicles: map[string]*dvrpsim.VehicleDecision{},
		Orders:   map[string]dvrpsim.OrderDecision{},
	}

	var idleVehicles []string
	for id, vs := range state.Vehicles {
		if vs.Status == "IDLE" && len(vs.NextVisits) == 0 {
			idleVehicles = append(idleVehicles, id)
		}
	}
	sort.Strings(idleVehicles)

	var orderIDs []string
	for id := range state.OpenOrders {
		orderIDs = append(orderIDs, id)
	}
	sort.Strings(orderIDs)

	next := 0
	for _, oid := range orderIDs {
		if next >= len(idleVehicles) {
			break
		}
		oo := state.OpenOrders[oid]
		if oo.Status != "OPEN" || oo.AssignedVehicle != nil {
			continue
		}

		vid := idleVehicles[next]
		next++

		decision.Orders[oid] = dvrpsim.OrderDecision{Status: "accepted"}
		decision.Vehicles[vid] = &dvrpsim.VehicleDecision{
			NextVisits: []dvrpsim.Visit{
				{Location: oo.PickupLocation, PickupList: []string{oid}},
				{Location: oo.DeliveryLocation, DeliveryList: []string{oid}},
			},
		}
	}

	return decision
}
