package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewModelError_FormatsMessage(t *testing.T) {
	err := NewModelError("location %q has no resource", "depot")
	assert.Equal(t, `model error: location "depot" has no resource`, err.Error())
}

func TestNewDecisionError_FormatsMessage(t *testing.T) {
	err := NewDecisionError("unknown order id %q", "o1")
	assert.Equal(t, `decision error: unknown order id "o1"`, err.Error())
}

func TestNewConfigError_FormatsMessage(t *testing.T) {
	err := NewConfigError("missing field %q", "capacity")
	assert.Equal(t, `config error: missing field "capacity"`, err.Error())
}

func TestNewSimulationError_FormatsMessage(t *testing.T) {
	err := NewSimulationError("order %q delivered before pickup", "o1")
	assert.Equal(t, `simulation error: order "o1" delivered before pickup`, err.Error())
}
