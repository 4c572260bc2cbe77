package dvrpsim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/engine"
)

// DefaultLoggingCallback logs every simulation lifecycle event through
// logrus, prefixed with the simulated time, ported line-for-line from
// dvrpsim.utils.logging.DefaultLoggingCallback.
type DefaultLoggingCallback struct {
	model *Model
	entry *logrus.Entry
}

// NewDefaultLoggingCallback returns the logger a Model uses unless
// SetLoggingCallback overrides it.
func NewDefaultLoggingCallback(m *Model) *DefaultLoggingCallback {
	return &DefaultLoggingCallback{model: m, entry: logrus.WithField("component", "dvrpsim")}
}

func (l *DefaultLoggingCallback) prefix() string {
	now := l.model.Now()
	return fmt.Sprintf("%10.1f |", float64(now))
}

func (l *DefaultLoggingCallback) info(format string, args ...any) {
	l.entry.Infof("%s %s", l.prefix(), fmt.Sprintf(format, args...))
}

func (l *DefaultLoggingCallback) Warning(format string, args ...any) {
	l.entry.Warnf("%s %s", l.prefix(), fmt.Sprintf(format, args...))
}

func (l *DefaultLoggingCallback) Custom(msg string, v *elements.Vehicle) {
	l.entry.Debugf("%s vehicle %s: %s", l.prefix(), v.ID, msg)
}

func (l *DefaultLoggingCallback) OnSimulationStart() {
	l.info("simulation started")
}

func (l *DefaultLoggingCallback) OnSimulationFinish() {
	l.info("simulation finished")
}

func (l *DefaultLoggingCallback) OnOrderRequest(o *elements.Order) {
	l.info("order %s is requested (%s -> %s)", o.ID, idOf(o.PickupLocation), idOf(o.DeliveryLocation))
}

func (l *DefaultLoggingCallback) OnOrderAcceptance(o *elements.Order) {
	l.info("order %s is accepted", o.ID)
}

func (l *DefaultLoggingCallback) OnOrderRejection(o *elements.Order) {
	l.info("order %s is rejected", o.ID)
}

func (l *DefaultLoggingCallback) OnOrderUpdate(o *elements.Order) {
	l.info("order %s is updated", o.ID)
}

func (l *DefaultLoggingCallback) OnOrderCancellation(o *elements.Order) {
	l.info("order %s is canceled", o.ID)
}

func (l *DefaultLoggingCallback) OnOrderPickup(o *elements.Order) {
	l.info("order %s is picked up", o.ID)
}

func (l *DefaultLoggingCallback) OnOrderDelivery(o *elements.Order) {
	l.info("order %s is delivered", o.ID)
}

func (l *DefaultLoggingCallback) OnOrderPostponement(o *elements.Order, until engine.Time) {
	l.info("order %s is postponed until %.1f", o.ID, float64(until))
}

func (l *DefaultLoggingCallback) OnOrderPostponementInterruption(o *elements.Order) {
	l.info("order %s's postponement is interrupted", o.ID)
}

func (l *DefaultLoggingCallback) OnOrderPostponementExpiration(o *elements.Order) {
	l.info("order %s's postponement has expired", o.ID)
}

func (l *DefaultLoggingCallback) OnDeparturePostponement(v *elements.Vehicle, until engine.Time) {
	l.info("vehicle %s postpones departure until %.1f", v.ID, float64(until))
}

func (l *DefaultLoggingCallback) OnPredepartureInterruption(v *elements.Vehicle) {
	l.info("vehicle %s's pre-departure wait is interrupted", v.ID)
}

func (l *DefaultLoggingCallback) OnDeparture(v *elements.Vehicle) {
	l.info("vehicle %s departs %s", v.ID, idOf(v.PreviousLocation()))
}

func (l *DefaultLoggingCallback) OnTravelInterruption(v *elements.Vehicle) {
	l.info("vehicle %s's travel is interrupted", v.ID)
}

func (l *DefaultLoggingCallback) OnArrival(v *elements.Vehicle) {
	l.info("vehicle %s arrives at %s", v.ID, idOf(v.CurrentLocation()))
}

func (l *DefaultLoggingCallback) OnPreserviceInterruption(v *elements.Vehicle) {
	l.info("vehicle %s's pre-service wait is interrupted", v.ID)
}

func (l *DefaultLoggingCallback) OnServiceRequest(v *elements.Vehicle) {
	l.info("vehicle %s requests service at %s", v.ID, idOf(v.CurrentLocation()))
}

func (l *DefaultLoggingCallback) OnServiceStart(v *elements.Vehicle) {
	l.info("vehicle %s starts service at %s", v.ID, idOf(v.CurrentLocation()))
}

func (l *DefaultLoggingCallback) OnServiceInterruption(v *elements.Vehicle) {
	l.info("vehicle %s's service is interrupted", v.ID)
}

func (l *DefaultLoggingCallback) OnServiceFinish(v *elements.Vehicle) {
	l.info("vehicle %s finishes service at %s", v.ID, idOf(v.CurrentLocation()))
}

func (l *DefaultLoggingCallback) OnRoutingStart() {
	l.info("routing cycle %d starts", l.model.Epoch())
}

func (l *DefaultLoggingCallback) OnRoutingFinish() {
	l.info("routing cycle %d finishes", l.model.Epoch())
}

func idOf(l *elements.Location) string {
	if l == nil {
		return "?"
	}
	return l.ID
}

var _ elements.LoggingCallback = (*DefaultLoggingCallback)(nil)
