package dvrpsim

import "github.com/sztaki-hu/dvrpsim/wire"

// State, Visit, RawDecision and friends are re-exported from wire so
// that ModelCallbacks.RoutingCallback's signature doesn't force callers
// to import both packages.
type (
	State           = wire.State
	VehicleState    = wire.VehicleState
	OpenOrder       = wire.OpenOrder
	Visit           = wire.Visit
	RawDecision     = wire.RawDecision
	VehicleDecision = wire.VehicleDecision
	OrderDecision   = wire.OrderDecision
)
