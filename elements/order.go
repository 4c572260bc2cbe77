package elements

import (
	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/sztaki-hu/dvrpsim/errs"
)

// Disposition is the decision made (if any) about an order's request.
// It is deliberately narrower than spec's Order.Status — see Status()
// below for how the richer, derived enum is computed from Disposition
// plus the pickup/delivery timestamps.
type Disposition int

const (
	NoDecision Disposition = iota
	Postponed
	Accepted
	Rejected
	Canceled
)

// Status is the order's externally-visible lifecycle state.
type Status string

const (
	StatusUnrequested Status = "UNREQUESTED"
	StatusOpen        Status = "OPEN"
	StatusPostponed   Status = "POSTPONED"
	StatusRejected    Status = "REJECTED"
	StatusCanceled    Status = "CANCELED"
	StatusPickedUp    Status = "PICKED_UP"
	StatusDelivered   Status = "DELIVERED"
)

// OrderCallbacks holds optional per-order hook overrides, one field per
// dvrpsim.elements.order.Order.on_* override point.
type OrderCallbacks struct {
	OnRequest                  func()
	OnAcceptance               func()
	OnRejection                func()
	OnUpdate                   func()
	OnCancellation             func()
	OnPostponement             func(until engine.Time)
	OnPostponementInterruption func()
	OnPostponementExpiration   func()
	OnPickup                   func()
	OnDelivery                 func()
}

// Order is a single pickup-and-delivery request.
type Order struct {
	ID         string
	OriginalID string // for split/sub-orders; defaults to ID

	Quantity float64

	ReleaseDate engine.Time
	DueDate     *engine.Time

	PickupLocation       *Location
	EarliestPickupStart  *engine.Time
	LatestPickupStart    *engine.Time
	PickupDuration       engine.Time

	DeliveryLocation       *Location
	EarliestDeliveryStart  *engine.Time
	LatestDeliveryStart    *engine.Time
	DeliveryDuration       engine.Time

	Aux map[string]any

	Callbacks *OrderCallbacks

	// Set by the simulator.
	Disposition Disposition

	AcceptanceTime   *engine.Time
	RejectionTime    *engine.Time
	CancellationTime *engine.Time

	PickupTime    *engine.Time
	PickupVehicle *Vehicle
	DeliveryTime  *engine.Time

	CanBeRejectedOrCanceled bool

	host          Host
	postponeWait  *engine.Wait
	postponing    bool
}

// NewOrder returns an order with the given id (and the same original id).
func NewOrder(id string) *Order {
	return &Order{
		ID:                      id,
		OriginalID:              id,
		Aux:                     map[string]any{},
		CanBeRejectedOrCanceled: true,
	}
}

func (o *Order) String() string { return o.ID }

func (o *Order) SetHost(h Host) { o.host = h }

// Status derives the order's externally-visible lifecycle state from
// Disposition and the pickup/delivery timestamps. An order not yet
// registered with a model is UNREQUESTED; a requested order with no
// decision yet is OPEN.
func (o *Order) Status() Status {
	switch {
	case o.Disposition == NoDecision && o.host == nil:
		return StatusUnrequested
	case o.Disposition == Rejected:
		return StatusRejected
	case o.Disposition == Canceled:
		return StatusCanceled
	case o.Disposition == Postponed:
		return StatusPostponed
	case o.DeliveryTime != nil:
		return StatusDelivered
	case o.PickupTime != nil:
		return StatusPickedUp
	default:
		return StatusOpen
	}
}

func (o *Order) IsWithoutDecision() bool { return o.Disposition == NoDecision }
func (o *Order) IsPostponed() bool       { return o.Disposition == Postponed }
func (o *Order) IsAccepted() bool        { return o.Disposition == Accepted }
func (o *Order) IsRejected() bool        { return o.Disposition == Rejected }
func (o *Order) IsCanceled() bool        { return o.Disposition == Canceled }

func (o *Order) IsPickedUp() bool     { return o.PickupTime != nil }
func (o *Order) IsDelivered() bool    { return o.DeliveryTime != nil }
func (o *Order) IsUnderDelivery() bool { return o.IsPickedUp() && !o.IsDelivered() }

// IsOpen reports whether the order is still a candidate for routing:
// requested, not rejected, not canceled, not yet delivered.
func (o *Order) IsOpen() bool {
	return !o.IsDelivered() && !o.IsRejected() && !o.IsCanceled()
}

// Lateness returns delivery_time - due_date (zero if there is no due
// date, nil if the order has a due date but is undelivered).
func (o *Order) Lateness() *engine.Time {
	if o.DueDate == nil {
		var zero engine.Time
		return &zero
	}
	if !o.IsDelivered() {
		return nil
	}
	d := *o.DeliveryTime - *o.DueDate
	return &d
}

// Tardiness returns max(0, Lateness()), or nil if the order has not
// been delivered yet (checked before Lateness, which itself returns a
// non-nil zero whenever DueDate is nil regardless of delivery status).
func (o *Order) Tardiness() *engine.Time {
	if !o.IsDelivered() {
		return nil
	}
	l := o.Lateness()
	if l == nil {
		return nil
	}
	t := *l
	if t < 0 {
		t = 0
	}
	return &t
}

// Accept marks the order accepted.
func (o *Order) Accept() error {
	if o.Disposition == Rejected {
		return errs.NewSimulationError("already rejected order %s cannot be accepted", o.ID)
	}
	o.Disposition = Accepted
	now := o.host.Now()
	o.AcceptanceTime = &now

	o.host.Log().OnOrderAcceptance(o)
	if o.Callbacks != nil {
		callVoidHook(o.Callbacks.OnAcceptance)
	}
	callOrderHook(o.host.Callbacks().OnOrderAcceptance, o)
	return nil
}

// Reject marks the order rejected.
func (o *Order) Reject() error {
	if o.Disposition == Accepted {
		return errs.NewSimulationError("already accepted order %s cannot be rejected", o.ID)
	}
	if !o.CanBeRejectedOrCanceled {
		return errs.NewSimulationError("order %s cannot be rejected (it may have already been picked up)", o.ID)
	}
	o.Disposition = Rejected
	now := o.host.Now()
	o.RejectionTime = &now

	o.host.Log().OnOrderRejection(o)
	if o.Callbacks != nil {
		callVoidHook(o.Callbacks.OnRejection)
	}
	callOrderHook(o.host.Callbacks().OnOrderRejection, o)
	return nil
}

// Cancel marks the order canceled (withdrawn by the customer).
func (o *Order) Cancel() error {
	if !o.CanBeRejectedOrCanceled {
		return errs.NewSimulationError("order %s cannot be canceled (it may have already been picked up)", o.ID)
	}
	o.Disposition = Canceled
	now := o.host.Now()
	o.CancellationTime = &now

	o.host.Log().OnOrderCancellation(o)
	if o.Callbacks != nil {
		callVoidHook(o.Callbacks.OnCancellation)
	}
	callOrderHook(o.host.Callbacks().OnOrderCancellation, o)
	return nil
}

// Postpone defers the routing decision about the order until the given
// time. Postponing in the past is a logged no-op (ported from
// order.postpone's guard); postponing while a postponement is already
// in progress is a SimulationError. Once the wait ends, by expiry or by
// interruption, the order is undecided again.
func (o *Order) Postpone(until engine.Time) error {
	if o.postponing {
		return errs.NewSimulationError("could not postpone order %s due to an ongoing postponement process", o.ID)
	}
	if until < o.host.Now() {
		o.host.Log().Warning("could not postpone order %s until %v since the current time is %v", o.ID, until, o.host.Now())
		return nil
	}

	o.postponing = true
	o.Disposition = Postponed

	o.host.Log().OnOrderPostponement(o, until)
	if o.Callbacks != nil {
		if o.Callbacks.OnPostponement != nil {
			o.Callbacks.OnPostponement(until)
		}
	}
	if o.host.Callbacks().OnOrderPostponement != nil {
		o.host.Callbacks().OnOrderPostponement(o, until)
	}

	delay := until - o.host.Now()
	o.postponeWait = o.host.Engine().AfterInterruptible(delay, func(_ *engine.Engine, interrupted bool) {
		o.postponing = false
		o.postponeWait = nil
		if o.Disposition == Postponed {
			o.Disposition = NoDecision
		}

		if interrupted {
			o.host.Log().OnOrderPostponementInterruption(o)
			if o.Callbacks != nil {
				callVoidHook(o.Callbacks.OnPostponementInterruption)
			}
			callOrderHook(o.host.Callbacks().OnOrderPostponementInterruption, o)
			return
		}

		o.host.Log().OnOrderPostponementExpiration(o)
		if o.Callbacks != nil {
			callVoidHook(o.Callbacks.OnPostponementExpiration)
		}
		callOrderHook(o.host.Callbacks().OnOrderPostponementExpiration, o)
	})

	return nil
}

// InterruptPostponement interrupts the order's postponement wait, if in
// progress; used by the coordinator's on-routing-start hook.
func (o *Order) InterruptPostponement() {
	if o.postponeWait != nil {
		o.host.Engine().Interrupt(o.postponeWait)
	}
}

// Pickup marks the order picked up by the given vehicle.
func (o *Order) Pickup(v *Vehicle) {
	now := o.host.Now()
	o.PickupTime = &now
	o.PickupVehicle = v

	o.host.Log().OnOrderPickup(o)
	if o.Callbacks != nil {
		callVoidHook(o.Callbacks.OnPickup)
	}
	callOrderHook(o.host.Callbacks().OnOrderPickup, o)
}

// Deliver marks the order delivered.
func (o *Order) Deliver() {
	now := o.host.Now()
	o.DeliveryTime = &now

	o.host.Log().OnOrderDelivery(o)
	if o.Callbacks != nil {
		callVoidHook(o.Callbacks.OnDelivery)
	}
	callOrderHook(o.host.Callbacks().OnOrderDelivery, o)
}

// Update notifies observers that the order's data has been modified
// in-place by the caller.
func (o *Order) Update() {
	o.host.Log().OnOrderUpdate(o)
	if o.Callbacks != nil {
		callVoidHook(o.Callbacks.OnUpdate)
	}
	callOrderHook(o.host.Callbacks().OnOrderUpdate, o)
}

func callVoidHook(fn func()) {
	if fn != nil {
		fn()
	}
}
