// Package providers supplies the two standard drivers of a dvrpsim
// run: releasing a fixed batch of orders over time, and periodically
// re-opening the decision point. Both are ordinary functions that
// schedule themselves on a Model's engine rather than goroutines, since
// the engine is single-threaded.
package providers

import (
	"sort"

	"github.com/sztaki-hu/dvrpsim"
	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/engine"
)

// OrderProvider releases every order in orders at its ReleaseDate (in
// ascending release-date order), optionally requesting a routing cycle
// each time, and succeeds the model's AllOrdersRequested signal once
// the last one has been released — ported from
// dvrpsim.utils.order_providers.order_provider.
func OrderProvider(m *dvrpsim.Model, orders []*elements.Order, decisionPointOnRequest bool) {
	sorted := make([]*elements.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReleaseDate < sorted[j].ReleaseDate
	})

	releaseNext(m, sorted, 0, decisionPointOnRequest)
}

func releaseNext(m *dvrpsim.Model, orders []*elements.Order, idx int, decisionPointOnRequest bool) {
	if idx >= len(orders) {
		m.AllOrdersRequested().Trigger(m.Engine())
		return
	}

	o := orders[idx]
	m.RequestOrder(o, decisionPointOnRequest)

	delay := o.ReleaseDate - m.Now()
	if delay < 0 {
		delay = 0
	}
	m.Engine().After(delay, func(eng *engine.Engine) {
		releaseNext(m, orders, idx+1, decisionPointOnRequest)
	})
}

// PeriodicUpdater requests a routing cycle once immediately, then every
// step thereafter, stopping once every order has been released and
// either stopAfterLastOrderRequest is set or no open orders remain,
// ported from dvrpsim.utils.updaters.periodic_updater. The first
// request fires synchronously, before the first step-delayed
// continuation — confirmed against the original, which calls
// request_for_routing() before its first yield.
func PeriodicUpdater(m *dvrpsim.Model, step engine.Time, stopAfterLastOrderRequest bool) {
	tick(m, step, stopAfterLastOrderRequest)
}

func tick(m *dvrpsim.Model, step engine.Time, stopAfterLastOrderRequest bool) {
	allRequested := m.AllOrdersRequested().Triggered()

	if allRequested && stopAfterLastOrderRequest {
		return
	}
	if allRequested && len(m.OpenOrders()) == 0 {
		return
	}

	m.RequestForRouting()
	m.Engine().After(step, func(eng *engine.Engine) {
		tick(m, step, stopAfterLastOrderRequest)
	})
}
