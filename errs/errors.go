// Package errs defines the error taxonomy shared by every other package:
// ModelError and ConfigError are fatal at setup, DecisionError aborts
// only the routing cycle that raised it, and SimulationError marks an
// internal invariant violation (a decision that passed validation but
// whose enforcement still produced an impossible state).
package errs

import "fmt"

// ModelError indicates the simulation model itself is inconsistent
// (e.g. a duplicate location/vehicle/order id, or a vehicle whose
// initial location is not registered). Ported from dvrpsim's ModelError.
type ModelError struct {
	Msg string
}

func (e *ModelError) Error() string { return "model error: " + e.Msg }

// NewModelError formats a ModelError.
func NewModelError(format string, args ...any) *ModelError {
	return &ModelError{Msg: fmt.Sprintf(format, args...)}
}

// ConfigError indicates a scenario or CLI configuration is malformed
// (missing required field, unknown reference, out-of-range value).
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config error: " + e.Msg }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// DecisionError indicates a routing decision failed validation (unknown
// id, LIFO violation, capacity violation, diversion of an en-route
// vehicle, ...). The coordinator logs it and discards the decision,
// leaving every vehicle's current plan untouched; it does not abort the
// simulation.
type DecisionError struct {
	Msg string
}

func (e *DecisionError) Error() string { return "decision error: " + e.Msg }

// NewDecisionError formats a DecisionError.
func NewDecisionError(format string, args ...any) *DecisionError {
	return &DecisionError{Msg: fmt.Sprintf(format, args...)}
}

// SimulationError indicates an internal invariant was violated at
// runtime despite having passed decision validation — e.g. delivering an
// order that was never picked up. Ported from dvrpsim's
// SimulationError; callers that hit this should treat it as a defect in
// the checker, not in the routing callback.
type SimulationError struct {
	Msg string
}

func (e *SimulationError) Error() string { return "simulation error: " + e.Msg }

// NewSimulationError formats a SimulationError.
func NewSimulationError(format string, args ...any) *SimulationError {
	return &SimulationError{Msg: fmt.Sprintf(format, args...)}
}
