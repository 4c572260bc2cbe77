// Package wire holds the JSON-serializable types exchanged with a
// routing callback: a State snapshot goes out, a RawDecision comes
// back. These are pure data transfer objects — no behavior, no
// pointers to domain types — matching spec §6 field-for-field.
package wire

// Visit is a single stop on a vehicle's route, wire-encoded.
type Visit struct {
	Location          string   `json:"location"`
	PickupList        []string `json:"pickup_list,omitempty"`
	DeliveryList      []string `json:"delivery_list,omitempty"`
	EarliestStartTime *float64 `json:"earliest_start_time"`
	ArrivalTime       *float64 `json:"arrival_time,omitempty"`
	ServiceStartTime  *float64 `json:"service_start_time,omitempty"`
	ServiceFinishTime *float64 `json:"service_finish_time,omitempty"`
	DepartureTime     *float64 `json:"departure_time,omitempty"`
	Aux               map[string]any `json:"aux,omitempty"`
}

// VehicleState is one vehicle's entry in State.Vehicles.
type VehicleState struct {
	Status          string   `json:"status"`
	PreviousVisit   *Visit   `json:"previous_visit"`
	CurrentVisit    *Visit   `json:"current_visit"`
	NextVisits      []Visit  `json:"next_visits,omitempty"`
	CarryingOrders  []string `json:"carrying_orders,omitempty"`
}

// OpenOrder is one order's entry in State.OpenOrders.
type OpenOrder struct {
	ID                           string   `json:"id"`
	OriginalID                   string   `json:"original_id,omitempty"`
	PickupLocation               string   `json:"pickup_location"`
	DeliveryLocation             string   `json:"delivery_location"`
	ReleaseDate                  float64  `json:"release_date"`
	DueDate                      *float64 `json:"due_date"`
	EarliestServiceStartPickup   *float64 `json:"earliest_service_start_pickup"`
	LatestServiceStartPickup     *float64 `json:"latest_service_start_pickup"`
	EarliestServiceStartDelivery *float64 `json:"earliest_service_start_delivery"`
	LatestServiceStartDelivery   *float64 `json:"latest_service_start_delivery"`
	Quantity                     float64  `json:"quantity"`
	AssignedVehicle              *string  `json:"assigned_vehicle"`
	PickupTime                   *float64 `json:"pickup_time"`
	PickupVehicle                *string  `json:"pickup_vehicle"`
	Status                       string   `json:"status"`
	Aux                          map[string]any `json:"aux,omitempty"`
}

// State is the full snapshot handed to a routing callback.
type State struct {
	Time          float64              `json:"time"`
	Vehicles      map[string]VehicleState `json:"vehicles"`
	OpenOrders    map[string]OpenOrder    `json:"open_orders"`
	CanceledOrders []string               `json:"canceled_orders,omitempty"`
	Aux           map[string]any          `json:"aux,omitempty"`
}

// VehicleDecision is a routing callback's proposed mutation to one
// vehicle's route. A nil *VehicleDecision in RawDecision.Vehicles means
// "no change" for that vehicle.
type VehicleDecision struct {
	CurrentVisit *Visit `json:"current_visit"`
	NextVisits   []Visit `json:"next_visits,omitempty"`
}

// OrderDecision is a routing callback's proposed disposition for one
// order.
type OrderDecision struct {
	Status          string   `json:"status"` // accepted|rejected|postponed
	PostponedUntil  *float64 `json:"postponed_until,omitempty"`
}

// RawDecision is the routing callback's return value, exactly as
// received — field values are not yet validated against model state.
type RawDecision struct {
	Vehicles map[string]*VehicleDecision `json:"vehicles"`
	Orders   map[string]OrderDecision    `json:"orders"`
}
