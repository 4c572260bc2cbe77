package elements

import "github.com/sztaki-hu/dvrpsim/engine"

// Location is a point a vehicle can visit. Resource is non-nil when the
// location serializes service through a shared dock/berth/server; a nil
// Resource means unconstrained concurrent service.
type Location struct {
	ID       string
	Resource *engine.Resource
	X, Y     float64 // coordinates, if given; distance/travel-time formulas are external collaborators
	Aux      map[string]any
}

// NewLocation returns a Location with no resource and an empty Aux map.
func NewLocation(id string) *Location {
	return &Location{ID: id, Aux: map[string]any{}}
}

func (l *Location) String() string { return l.ID }

// Capacity returns the location's resource capacity, or 0 if the
// location has no resource.
func (l *Location) Capacity() int {
	if l.Resource == nil {
		return 0
	}
	return l.Resource.Capacity()
}
