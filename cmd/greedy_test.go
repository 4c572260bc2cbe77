package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sztaki-hu/dvrpsim"
)

func TestGreedyRoutingCallback_AssignsOpenOrderToIdleVehicle(t *testing.T) {
	state := dvrpsim.State{
		Vehicles: map[string]dvrpsim.VehicleState{
			"v1": {Status: "IDLE"},
			"v2": {Status: "EN_ROUTE"},
		},
		OpenOrders: map[string]dvrpsim.OpenOrder{
			"o1": {PickupLocation: "depot", DeliveryLocation: "customer", Status: "OPEN"},
		},
	}

	decision := GreedyRoutingCallback(nil, state)

	require.Contains(t, decision.Orders, "o1")
	assert.Equal(t, "accepted", decision.Orders["o1"].Status)

	require.Contains(t, decision.Vehicles, "v1")
	vd := decision.Vehicles["v1"]
	require.Len(t, vd.NextVisits, 2)
	assert.Equal(t, "depot", vd.NextVisits[0].Location)
	assert.Equal(t, []string{"o1"}, vd.NextVisits[0].PickupList)
	assert.Equal(t, "customer", vd.NextVisits[1].Location)
	assert.Equal(t, []string{"o1"}, vd.NextVisits[1].DeliveryList)

	assert.NotContains(t, decision.Vehicles, "v2")
}

func TestGreedyRoutingCallback_SkipsAlreadyAssignedOrders(t *testing.T) {
	assigned := "v1"
	state := dvrpsim.State{
		Vehicles: map[string]dvrpsim.VehicleState{
			"v1": {Status: "IDLE"},
		},
		OpenOrders: map[string]dvrpsim.OpenOrder{
			"o1": {Status: "OPEN", AssignedVehicle: &assigned},
		},
	}

	decision := GreedyRoutingCallback(nil, state)
	assert.Empty(t, decision.Orders)
	assert.Empty(t, decision.Vehicles)
}

func TestGreedyRoutingCallback_NoIdleVehiclesLeavesOrdersUndecided(t *testing.T) {
	state := dvrpsim.State{
		Vehicles: map[string]dvrpsim.VehicleState{
			"v1": {Status: "EN_ROUTE"},
		},
		OpenOrders: map[string]dvrpsim.OpenOrder{
			"o1": {Status: "OPEN"},
		},
	}

	decision := GreedyRoutingCallback(nil, state)
	assert.Empty(t, decision.Orders)
	assert.Empty(t, decision.Vehicles)
}
