// Package engine implements the discrete-event core: a simulated clock, a
// min-heap of scheduled calls, a one-shot Signal, and a FIFO counted
// Resource. Nothing in this package knows about vehicles, orders, or
// routing — it is the same kind of single-threaded event loop any
// discrete-event simulator needs, reusable across domains.
package engine

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Time is simulated time. Unlike tick-based simulators, DVRP instances
// commonly carry fractional travel/service durations, so Time is a
// float64 rather than an integer tick count.
type Time float64

// call is a single scheduled continuation.
type call struct {
	at       Time
	seq      int64
	priority int // lower runs first among equal (at, interruptible-ness)
	fn       func(*Engine)
	canceled bool
}

// callQueue implements heap.Interface, ordering by (at, priority, seq).
// seq is assigned at Schedule time and is strictly increasing, giving a
// stable FIFO tiebreak for events scheduled at the same instant — same
// shape as a classic priority event queue, generalized with one more
// tiebreak key for interrupt-vs-natural-wakeup ordering (see Wait).
type callQueue []*call

func (q callQueue) Len() int { return len(q) }
func (q callQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q callQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *callQueue) Push(x any) {
	*q = append(*q, x.(*call))
}

func (q *callQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Engine is the event loop: a clock plus a heap of pending calls.
type Engine struct {
	now   Time
	queue callQueue
	seq   int64
	ran   bool
}

// New returns an Engine at time 0.
func New() *Engine {
	return &Engine{queue: make(callQueue, 0)}
}

// Now returns the current simulated time.
func (e *Engine) Now() Time { return e.now }

// Wait is a handle to a pending scheduled call. Cancel prevents fn from
// running; for interruptible waits scheduled via AfterInterruptible,
// Interrupt runs fn early (at the current instant) with interrupted=true
// instead of merely discarding it.
type Wait struct {
	c            *call
	interruptFn  func(*Engine, bool)
	interrupted  bool
}

// Cancel discards the wait; fn never runs.
func (w *Wait) Cancel() {
	if w == nil || w.c == nil {
		return
	}
	w.c.canceled = true
}

// Interrupt cancels the natural wakeup and immediately schedules fn to
// run (with interrupted=true) at the current instant. It is a no-op if
// the wait has already fired or been canceled, or if it was scheduled
// via After rather than AfterInterruptible (uninterruptible waits have
// no interruptFn and silently ignore Interrupt, matching the original's
// distinction between cancelable and non-cancelable simpy events).
func (e *Engine) Interrupt(w *Wait) {
	if w == nil || w.c == nil || w.c.canceled || w.interruptFn == nil || w.interrupted {
		return
	}
	w.c.canceled = true
	w.interrupted = true
	fn := w.interruptFn
	e.schedule(e.now, priorityInterrupt, func(eng *Engine) {
		fn(eng, true)
	})
}

const (
	priorityNormal    = 0
	priorityInterrupt = -1 // interrupts run ahead of same-instant natural continuations
)

func (e *Engine) schedule(at Time, priority int, fn func(*Engine)) *call {
	c := &call{at: at, seq: e.seq, priority: priority, fn: fn}
	e.seq++
	heap.Push(&e.queue, c)
	return c
}

// After schedules fn to run unconditionally after delay d. Used for
// travel, resource waits, and service-step durations — suspension points
// the coordinator may never interrupt.
func (e *Engine) After(d Time, fn func(*Engine)) {
	if d < 0 {
		panic(fmt.Sprintf("engine: negative delay %v", d))
	}
	e.schedule(e.now+d, priorityNormal, fn)
}

// AfterInterruptible schedules fn to run after delay d, and returns a
// Wait that the caller must retain if it may need to Interrupt the wait
// before it naturally expires. fn's second argument is true when Engine
// interrupted the wait rather than letting it expire.
func (e *Engine) AfterInterruptible(d Time, fn func(*Engine, bool)) *Wait {
	if d < 0 {
		panic(fmt.Sprintf("engine: negative delay %v", d))
	}
	w := &Wait{interruptFn: fn}
	w.c = e.schedule(e.now+d, priorityNormal, func(eng *Engine) {
		fn(eng, false)
	})
	return w
}

// Run drains the heap in (time, priority, seq) order, advancing the
// clock to each call's scheduled time. If stopAt is non-nil, Run returns
// as soon as the next pending call's time would exceed *stopAt, leaving
// it unexecuted. Run panics if called more than once on the same Engine
// (an Engine is single-use) and if a scheduled call's time is behind the
// current clock (a scheduling bug, never a modeling error — delays are
// always non-negative, see After/AfterInterruptible).
func (e *Engine) Run(stopAt *Time) {
	if e.ran {
		panic("engine: Run called twice on the same Engine")
	}
	e.ran = true

	for len(e.queue) > 0 {
		next := e.queue[0]
		if stopAt != nil && next.at > *stopAt {
			return
		}
		heap.Pop(&e.queue)
		if next.canceled {
			continue
		}
		if next.at < e.now {
			panic(fmt.Sprintf("engine: clock went backwards (%v -> %v)", e.now, next.at))
		}
		e.now = next.at
		logrus.Tracef("[t=%v] executing scheduled call", float64(e.now))
		next.fn(e)
	}
}

// Stop forces Run to return after the current call finishes, by
// discarding every remaining scheduled call.
func (e *Engine) Stop() {
	e.queue = e.queue[:0]
}
