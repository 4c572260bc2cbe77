package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/engine"
)

func tp(t engine.Time) *engine.Time { return &t }

func TestCollectVehicleStatistics_AccumulatesAcrossVisits(t *testing.T) {
	depot := elements.NewLocation("depot")
	customer := elements.NewLocation("customer")

	v := elements.NewVehicle("v1")
	v.Callbacks = &elements.VehicleCallbacks{
		TravelDistance: func(origin, destination *elements.Location) float64 { return 42 },
	}

	first := elements.NewVisit(depot)
	first.DepartureTime = tp(0)

	second := elements.NewVisit(customer)
	second.ArrivalTime = tp(10)
	second.ServiceStartTime = tp(12)
	second.ServiceFinishTime = tp(15)
	second.DepartureTime = tp(16)

	v.PreviousVisits = []*elements.Visit{first, second}

	vs := CollectVehicleStatistics(v)
	assert.Equal(t, 42.0, vs.Distance)
	assert.Equal(t, 10.0, vs.MovingTime) // 10 - 0
	assert.Equal(t, 2.0, vs.WaitingTime) // 12 - 10
	assert.Equal(t, 3.0, vs.ServiceTime) // 15 - 12
	assert.Equal(t, 1.0, vs.IdleTime)    // 16 - 15
}

func TestCollectOrderStatistics_GroupsByOriginalIDAndTakesWorstCase(t *testing.T) {
	due := engine.Time(10)
	a := elements.NewOrder("order-a")
	a.OriginalID = "order"
	a.DueDate = &due
	a.DeliveryTime = tp(12)

	b := elements.NewOrder("order-b")
	b.OriginalID = "order"
	b.DueDate = &due
	b.DeliveryTime = tp(20)

	os := CollectOrderStatistics([]*elements.Order{a, b})
	if assert.Len(t, os, 1) {
		assert.Equal(t, "order", os[0].OriginalID)
		assert.Equal(t, 20.0, os[0].Delivered)
		assert.Equal(t, 10.0, os[0].Tardiness) // max(20-10, 12-10)
	}
}
