package elements

import (
	"testing"

	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/stretchr/testify/assert"
)

func TestLocation_CapacityWithoutResource(t *testing.T) {
	// GIVEN a location with no resource
	loc := NewLocation("depot")

	// THEN its capacity is reported as 0
	assert.Equal(t, 0, loc.Capacity())
}

func TestLocation_CapacityWithResource(t *testing.T) {
	// GIVEN a location backed by a 3-slot resource
	loc := NewLocation("dock-1")
	loc.Resource = engine.NewResource(3)

	// THEN the location reports the resource's capacity
	assert.Equal(t, 3, loc.Capacity())
}

func TestLocation_String(t *testing.T) {
	loc := NewLocation("depot")
	assert.Equal(t, "depot", loc.String())
}
