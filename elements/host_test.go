package elements

import "github.com/sztaki-hu/dvrpsim/engine"

// testHost is a minimal Host used by this package's unit tests; it
// records nothing, just wires enough for Order/Vehicle methods to run.
type testHost struct {
	e         *engine.Engine
	callbacks ModelCallbacks
	log       *noopLog
}

func newTestHost() *testHost {
	return &testHost{e: engine.New(), log: &noopLog{}}
}

func (h *testHost) Engine() *engine.Engine       { return h.e }
func (h *testHost) Now() engine.Time             { return h.e.Now() }
func (h *testHost) Log() LoggingCallback         { return h.log }
func (h *testHost) Callbacks() *ModelCallbacks   { return &h.callbacks }
func (h *testHost) RequestForRouting()           {}

// noopLog implements LoggingCallback with no-ops, for tests that don't
// care about log output.
type noopLog struct{}

func (*noopLog) Warning(format string, args ...any) {}
func (*noopLog) Custom(msg string, v *Vehicle)      {}

func (*noopLog) OnSimulationStart()  {}
func (*noopLog) OnSimulationFinish() {}

func (*noopLog) OnOrderRequest(o *Order)                          {}
func (*noopLog) OnOrderAcceptance(o *Order)                       {}
func (*noopLog) OnOrderRejection(o *Order)                        {}
func (*noopLog) OnOrderUpdate(o *Order)                           {}
func (*noopLog) OnOrderCancellation(o *Order)                     {}
func (*noopLog) OnOrderPickup(o *Order)                           {}
func (*noopLog) OnOrderDelivery(o *Order)                         {}
func (*noopLog) OnOrderPostponement(o *Order, until engine.Time)  {}
func (*noopLog) OnOrderPostponementInterruption(o *Order)         {}
func (*noopLog) OnOrderPostponementExpiration(o *Order)           {}

func (*noopLog) OnDeparturePostponement(v *Vehicle, until engine.Time) {}
func (*noopLog) OnPredepartureInterruption(v *Vehicle)                {}
func (*noopLog) OnDeparture(v *Vehicle)                                {}
func (*noopLog) OnTravelInterruption(v *Vehicle)                       {}
func (*noopLog) OnArrival(v *Vehicle)                                  {}
func (*noopLog) OnPreserviceInterruption(v *Vehicle)                   {}
func (*noopLog) OnServiceRequest(v *Vehicle)                           {}
func (*noopLog) OnServiceStart(v *Vehicle)                             {}
func (*noopLog) OnServiceInterruption(v *Vehicle)                      {}
func (*noopLog) OnServiceFinish(v *Vehicle)                            {}

func (*noopLog) OnRoutingStart()  {}
func (*noopLog) OnRoutingFinish() {}
