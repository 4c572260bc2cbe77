package elements

import (
	"testing"

	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/stretchr/testify/assert"
)

func newTestOrder(h *testHost, id string) *Order {
	o := NewOrder(id)
	o.SetHost(h)
	return o
}

func TestOrder_StatusLifecycle(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")

	// GIVEN a freshly requested order
	assert.Equal(t, StatusOpen, o.Status())

	// WHEN accepted
	assert.NoError(t, o.Accept())
	assert.Equal(t, StatusOpen, o.Status())

	// WHEN picked up then delivered
	v := &Vehicle{ID: "v1"}
	o.Pickup(v)
	assert.Equal(t, StatusPickedUp, o.Status())
	o.Deliver()
	assert.Equal(t, StatusDelivered, o.Status())
}

func TestOrder_AcceptAfterRejectFails(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")

	assert.NoError(t, o.Reject())
	assert.Error(t, o.Accept())
}

func TestOrder_RejectAfterAcceptFails(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")

	assert.NoError(t, o.Accept())
	assert.Error(t, o.Reject())
}

func TestOrder_CancelRequiresCancelableFlag(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")
	o.CanBeRejectedOrCanceled = false

	assert.Error(t, o.Cancel())
}

func TestOrder_PostponeInThePastIsANoOp(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")

	// advance the clock, then request a postponement to an earlier time
	h.e.After(10, func(*engine.Engine) {})
	h.e.Run(nil)

	err := o.Postpone(0)
	assert.NoError(t, err)
	assert.False(t, o.IsPostponed())
}

func TestOrder_PostponeSetsStatusUntilExpiration(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")

	assert.NoError(t, o.Postpone(5))
	assert.True(t, o.IsPostponed())

	h.e.Run(nil)
	assert.False(t, o.IsPostponed())
	assert.Equal(t, engine.Time(5), h.e.Now())
}

func TestOrder_PostponeWhileAlreadyPostponingFails(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")

	assert.NoError(t, o.Postpone(5))
	assert.Error(t, o.Postpone(10))
}

func TestOrder_InterruptPostponementEndsItEarly(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")
	interrupted := false
	o.Callbacks = &OrderCallbacks{OnPostponementInterruption: func() { interrupted = true }}

	assert.NoError(t, o.Postpone(100))
	o.InterruptPostponement()
	h.e.Run(nil)
	assert.True(t, interrupted)
	assert.False(t, o.IsPostponed())
}

func TestOrder_Tardiness(t *testing.T) {
	h := newTestHost()
	o := newTestOrder(h, "o1")
	due := engine.Time(10)
	o.DueDate = &due

	assert.Nil(t, o.Tardiness())

	deliv := engine.Time(7)
	o.DeliveryTime = &deliv
	if got := o.Tardiness(); assert.NotNil(t, got) {
		assert.Equal(t, engine.Time(0), *got)
	}

	late := engine.Time(15)
	o.DeliveryTime = &late
	if got := o.Tardiness(); assert.NotNil(t, got) {
		assert.Equal(t, engine.Time(5), *got)
	}
}
