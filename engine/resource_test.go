package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource_Request_GrantsImmediatelyWhenFree(t *testing.T) {
	e := New()
	r := NewResource(1)
	granted := false
	r.Request(e, func(*Engine) { granted = true })
	assert.True(t, granted)
	assert.Equal(t, 1, r.InUse())
}

func TestResource_Request_QueuesWhenAtCapacity_FIFO(t *testing.T) {
	e := New()
	r := NewResource(1)
	var order []int
	r.Request(e, func(*Engine) { order = append(order, 1) })
	r.Request(e, func(*Engine) { order = append(order, 2) })
	r.Request(e, func(*Engine) { order = append(order, 3) })

	assert.Equal(t, []int{1}, order)

	e.After(1, func(eng *Engine) { r.Release(eng) })
	e.After(2, func(eng *Engine) { r.Release(eng) })
	e.Run(nil)

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestResource_UnlimitedCapacity_NeverQueues(t *testing.T) {
	e := New()
	r := NewResource(0)
	n := 0
	for i := 0; i < 5; i++ {
		r.Request(e, func(*Engine) { n++ })
	}
	assert.Equal(t, 5, n)
	assert.Equal(t, 0, len(r.queue))
}

func TestResource_Release_WithNoHeldSlots_Panics(t *testing.T) {
	e := New()
	r := NewResource(1)
	assert.Panics(t, func() { r.Release(e) })
}
