package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sztaki-hu/dvrpsim"
	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/engine"
)

func TestOrderProvider_ReleasesInReleaseDateOrder(t *testing.T) {
	m := dvrpsim.NewModel()
	depot := elements.NewLocation("depot")
	assert.NoError(t, m.AddLocation(depot))

	late := elements.NewOrder("late")
	late.ReleaseDate = 10
	late.PickupLocation = depot
	late.DeliveryLocation = depot

	early := elements.NewOrder("early")
	early.ReleaseDate = 3
	early.PickupLocation = depot
	early.DeliveryLocation = depot

	var releaseOrder []string
	OrderProvider(m, []*elements.Order{late, early}, false)

	horizon := engine.Time(20)
	assert.NoError(t, m.Run(horizon))

	for _, o := range m.Orders() {
		releaseOrder = append(releaseOrder, o.ID)
	}
	assert.Len(t, releaseOrder, 2)
	assert.Equal(t, []string{"early", "late"}, releaseOrder)
	assert.True(t, m.AllOrdersRequested().Triggered())
}

func TestPeriodicUpdater_StopsAfterLastOrderRequest(t *testing.T) {
	m := dvrpsim.NewModel()
	depot := elements.NewLocation("depot")
	assert.NoError(t, m.AddLocation(depot))

	o := elements.NewOrder("o1")
	o.ReleaseDate = 5
	o.PickupLocation = depot
	o.DeliveryLocation = depot

	OrderProvider(m, []*elements.Order{o}, false)
	PeriodicUpdater(m, 2, true)

	assert.NoError(t, m.Run(engine.Time(100)))
	assert.True(t, m.AllOrdersRequested().Triggered())
	// ticks at 0, 2, 4 request routing; the tick at 6 sees every order
	// released and schedules nothing further
	assert.Equal(t, engine.Time(6), m.Now())
}
