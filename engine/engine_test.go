package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_After_RunsAtScheduledTime(t *testing.T) {
	e := New()
	var ranAt Time
	e.After(5, func(eng *Engine) { ranAt = eng.Now() })
	e.Run(nil)
	assert.Equal(t, Time(5), ranAt)
}

func TestEngine_Run_OrdersByTimeThenFIFO(t *testing.T) {
	e := New()
	var order []int
	e.After(2, func(*Engine) { order = append(order, 2) })
	e.After(1, func(*Engine) { order = append(order, 1) })
	e.After(1, func(*Engine) { order = append(order, 10) })
	e.Run(nil)
	assert.Equal(t, []int{1, 10, 2}, order)
}

func TestEngine_Run_StopsAtHorizon(t *testing.T) {
	e := New()
	var ran bool
	e.After(10, func(*Engine) { ran = true })
	stopAt := Time(5)
	e.Run(&stopAt)
	assert.False(t, ran)
}

func TestEngine_Wait_CancelPreventsFn(t *testing.T) {
	e := New()
	ran := false
	w := e.AfterInterruptible(5, func(*Engine, bool) { ran = true })
	w.Cancel()
	e.Run(nil)
	assert.False(t, ran)
}

func TestEngine_Interrupt_RunsEarlyWithInterruptedTrue(t *testing.T) {
	e := New()
	var interrupted bool
	var firedAt Time
	w := e.AfterInterruptible(100, func(eng *Engine, wasInterrupted bool) {
		interrupted = wasInterrupted
		firedAt = eng.Now()
	})
	e.After(3, func(eng *Engine) {
		eng.Interrupt(w)
	})
	e.Run(nil)
	assert.True(t, interrupted)
	assert.Equal(t, Time(3), firedAt)
}

func TestEngine_Interrupt_NoopOnUninterruptibleWait(t *testing.T) {
	e := New()
	// After has no Wait handle at all, so this just documents that a
	// canceled/expired Wait is safely ignored.
	w := &Wait{}
	e.After(1, func(eng *Engine) { eng.Interrupt(w) })
	assert.NotPanics(t, func() { e.Run(nil) })
}

func TestEngine_Run_PanicsOnSecondRun(t *testing.T) {
	e := New()
	e.Run(nil)
	assert.Panics(t, func() { e.Run(nil) })
}
