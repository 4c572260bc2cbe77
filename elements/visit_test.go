package elements

import (
	"testing"

	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/stretchr/testify/assert"
)

func timePtr(t engine.Time) *engine.Time { return &t }

func TestVisit_WaitingTimeNilUntilServiceStarts(t *testing.T) {
	v := NewVisit(NewLocation("a"))

	// WHEN only arrival is recorded
	v.ArrivalTime = timePtr(10)
	assert.Nil(t, v.WaitingTime())

	// WHEN service also starts, waiting time is service_start - arrival
	v.ServiceStartTime = timePtr(15)
	if got := v.WaitingTime(); assert.NotNil(t, got) {
		assert.Equal(t, engine.Time(5), *got)
	}
}

func TestVisit_ServiceAndIdleTime(t *testing.T) {
	v := NewVisit(NewLocation("a"))
	v.ServiceStartTime = timePtr(10)
	v.ServiceFinishTime = timePtr(12)
	v.DepartureTime = timePtr(20)

	if got := v.ServiceTime(); assert.NotNil(t, got) {
		assert.Equal(t, engine.Time(2), *got)
	}
	if got := v.IdleTime(); assert.NotNil(t, got) {
		assert.Equal(t, engine.Time(8), *got)
	}
}

func TestVisit_EarliestServiceStartTime(t *testing.T) {
	v := NewVisit(NewLocation("a"))
	pickup := NewOrder("p1")
	pickup.EarliestPickupStart = timePtr(5)
	delivery := NewOrder("d1")
	delivery.EarliestDeliveryStart = timePtr(9)
	v.PickupList = []*Order{pickup}
	v.DeliveryList = []*Order{delivery}

	assert.Equal(t, engine.Time(9), v.EarliestServiceStartTime())
}

func TestVisit_EarliestServiceStartTimeDefaultsToZero(t *testing.T) {
	v := NewVisit(NewLocation("a"))
	assert.Equal(t, engine.Time(0), v.EarliestServiceStartTime())
}
