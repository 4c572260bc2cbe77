package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScenario = `
speed: 2
locations:
  - id: depot
    x: 0
    y: 0
  - id: customer
    x: 3
    y: 4
    capacity: 1
vehicles:
  - id: v1
    initial_location: depot
    capacity: 10
    loading_rule: fifo
orders:
  - id: o1
    pickup_location: depot
    delivery_location: customer
    release_date: 0
    quantity: 1
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ParsesKnownFields(t *testing.T) {
	path := writeScenario(t, sampleScenario)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Speed)
	assert.Len(t, s.Locations, 2)
	assert.Len(t, s.Vehicles, 1)
	assert.Len(t, s.Orders, 1)
}

func TestLoadScenario_RejectsUnknownField(t *testing.T) {
	path := writeScenario(t, sampleScenario+"\nbogus_field: true\n")

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestScenarioBuild_WiresTravelDistanceFromCoordinates(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	s, err := LoadScenario(path)
	require.NoError(t, err)

	m, orders, err := s.Build()
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	v := m.GetVehicleByID("v1")
	require.NotNil(t, v)
	depot := m.GetLocationByID("depot")
	customer := m.GetLocationByID("customer")
	require.NotNil(t, depot)
	require.NotNil(t, customer)

	assert.Equal(t, 5.0, v.TravelDistance(depot, customer)) // 3-4-5 triangle
	assert.NotNil(t, customer.Resource)
}

func TestScenarioBuild_UnknownLocationIsConfigError(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, `
locations:
  - id: depot
vehicles:
  - id: v1
    initial_location: nowhere
`))
	require.NoError(t, err)

	_, _, err = s.Build()
	assert.Error(t, err)
}
