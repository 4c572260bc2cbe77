package cmd

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sztaki-hu/dvrpsim"
	"github.com/sztaki-hu/dvrpsim/elements"
	"github.com/sztaki-hu/dvrpsim/engine"
	"github.com/sztaki-hu/dvrpsim/errs"
)

// Scenario is the YAML schema for a dvrpsim run: a constant travel
// speed plus the locations, vehicles, and orders to register. Travel
// time and distance are both derived from Euclidean coordinates, since
// a scenario file has no other notion of geography.
type Scenario struct {
	Speed     float64          `yaml:"speed"`
	Locations []LocationConfig `yaml:"locations"`
	Vehicles  []VehicleConfig  `yaml:"vehicles"`
	Orders    []OrderConfig    `yaml:"orders"`
}

// LocationConfig is one entry under locations:. Capacity <= 0 means the
// location serializes no service (no Resource is created for it).
type LocationConfig struct {
	ID       string  `yaml:"id"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Capacity int     `yaml:"capacity"`
}

// VehicleConfig is one entry under vehicles:.
type VehicleConfig struct {
	ID              string   `yaml:"id"`
	InitialLocation string   `yaml:"initial_location"`
	Capacity        *float64 `yaml:"capacity"`
	LoadingRule     string   `yaml:"loading_rule"` // none|fifo|lifo
}

// OrderConfig is one entry under orders:.
type OrderConfig struct {
	ID                    string   `yaml:"id"`
	PickupLocation        string   `yaml:"pickup_location"`
	DeliveryLocation      string   `yaml:"delivery_location"`
	ReleaseDate           float64  `yaml:"release_date"`
	DueDate               *float64 `yaml:"due_date"`
	EarliestPickupStart   *float64 `yaml:"earliest_pickup_start"`
	LatestPickupStart     *float64 `yaml:"latest_pickup_start"`
	PickupDuration        float64  `yaml:"pickup_duration"`
	EarliestDeliveryStart *float64 `yaml:"earliest_delivery_start"`
	LatestDeliveryStart   *float64 `yaml:"latest_delivery_start"`
	DeliveryDuration      float64  `yaml:"delivery_duration"`
	Quantity              float64  `yaml:"quantity"`
}

// LoadScenario reads and strictly decodes a scenario file; an unknown
// field is a ConfigError rather than a silently-ignored typo, the same
// KnownFields(true) convention the inference-sim defaults.yaml loader
// uses.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.NewConfigError("opening scenario file %s: %v", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, errs.NewConfigError("parsing scenario file %s: %v", path, err)
	}
	return &s, nil
}

func floatToTime(f *float64) *engine.Time {
	if f == nil {
		return nil
	}
	t := engine.Time(*f)
	return &t
}

// Build instantiates a Model and the order batch to release into it
// from the scenario: every vehicle's TravelDistance/TravelTime are
// wired to Euclidean distance divided by the scenario's constant speed
// (a fallback of 1 when unset or non-positive).
func (s *Scenario) Build() (*dvrpsim.Model, []*elements.Order, error) {
	m := dvrpsim.NewModel()

	speed := s.Speed
	if speed <= 0 {
		speed = 1
	}

	locations := make(map[string]*elements.Location, len(s.Locations))
	for _, lc := range s.Locations {
		loc := elements.NewLocation(lc.ID)
		loc.X, loc.Y = lc.X, lc.Y
		if lc.Capacity > 0 {
			loc.Resource = m.CreateResource(lc.Capacity)
		}
		if err := m.AddLocation(loc); err != nil {
			return nil, nil, err
		}
		locations[lc.ID] = loc
	}

	distance := func(origin, destination *elements.Location) float64 {
		return math.Hypot(origin.X-destination.X, origin.Y-destination.Y)
	}

	for _, vc := range s.Vehicles {
		loc, ok := locations[vc.InitialLocation]
		if !ok {
			return nil, nil, errs.NewConfigError("vehicle %s's initial location %q is not defined", vc.ID, vc.InitialLocation)
		}

		v := elements.NewVehicle(vc.ID)
		v.InitialLocation = loc
		v.Capacity = vc.Capacity

		switch vc.LoadingRule {
		case "", "none":
			v.LoadingRule = elements.LoadingNone
		case "fifo":
			v.LoadingRule = elements.LoadingFIFO
		case "lifo":
			v.LoadingRule = elements.LoadingLIFO
		default:
			return nil, nil, errs.NewConfigError("vehicle %s has unknown loading_rule %q", vc.ID, vc.LoadingRule)
		}

		v.Callbacks = &elements.VehicleCallbacks{
			TravelDistance: distance,
			TravelTime: func(origin, destination *elements.Location) engine.Time {
				return engine.Time(distance(origin, destination) / speed)
			},
		}

		if err := m.AddVehicle(v); err != nil {
			return nil, nil, err
		}
	}

	orders := make([]*elements.Order, 0, len(s.Orders))
	for _, oc := range s.Orders {
		pickup, ok := locations[oc.PickupLocation]
		if !ok {
			return nil, nil, errs.NewConfigError("order %s's pickup location %q is not defined", oc.ID, oc.PickupLocation)
		}
		delivery, ok := locations[oc.DeliveryLocation]
		if !ok {
			return nil, nil, errs.NewConfigError("order %s's delivery location %q is not defined", oc.ID, oc.DeliveryLocation)
		}

		o := elements.NewOrder(oc.ID)
		o.PickupLocation = pickup
		o.DeliveryLocation = delivery
		o.ReleaseDate = engine.Time(oc.ReleaseDate)
		o.DueDate = floatToTime(oc.DueDate)
		o.EarliestPickupStart = floatToTime(oc.EarliestPickupStart)
		o.LatestPickupStart = floatToTime(oc.LatestPickupStart)
		o.PickupDuration = engine.Time(oc.PickupDuration)
		o.EarliestDeliveryStart = floatToTime(oc.EarliestDeliveryStart)
		o.LatestDeliveryStart = floatToTime(oc.LatestDeliveryStart)
		o.DeliveryDuration = engine.Time(oc.DeliveryDuration)
		o.Quantity = oc.Quantity
		orders = append(orders, o)
	}

	return m, orders, nil
}
