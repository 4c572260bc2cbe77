// Package stats aggregates post-run KPIs from a finished Model: per-
// vehicle distance/moving/waiting/service/idle time, per-order
// tardiness, and a tabular report, ported from
// dvrpsim.utils.statistics.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sztaki-hu/dvrpsim"
	"github.com/sztaki-hu/dvrpsim/elements"
	"gonum.org/v1/gonum/stat"
)

// VehicleStatistics summarizes one vehicle's route execution, ported
// from dvrpsim.utils.statistics.collect_vehicle_statistics.
type VehicleStatistics struct {
	VehicleID    string
	Distance     float64
	MovingTime   float64
	WaitingTime  float64
	ServiceTime  float64
	IdleTime     float64
}

// OrderStatistics summarizes tardiness for one original order id,
// grouped across its suborders (the maximum due date / delivery time
// across the group), ported from
// dvrpsim.utils.statistics.collect_order_statistics.
type OrderStatistics struct {
	OriginalID string
	DueDate    float64
	Delivered  float64
	Tardiness  float64
}

// CollectVehicleStatistics walks every visit (previous and current) a
// vehicle has made and accumulates distance and the four duration
// buckets, ported from collect_vehicle_history + collect_vehicle_statistics.
func CollectVehicleStatistics(v *elements.Vehicle) VehicleStatistics {
	vs := VehicleStatistics{VehicleID: v.ID}

	visits := append([]*elements.Visit{}, v.PreviousVisits...)
	if v.CurrentVisit != nil {
		visits = append(visits, v.CurrentVisit)
	}

	var previousLocation *elements.Location
	for _, visit := range visits {
		if previousLocation != nil && previousLocation != visit.Location {
			vs.Distance += v.TravelDistance(previousLocation, visit.Location)
		}
		if wt := visit.WaitingTime(); wt != nil {
			vs.WaitingTime += float64(*wt)
		}
		if st := visit.ServiceTime(); st != nil {
			vs.ServiceTime += float64(*st)
		}
		if it := visit.IdleTime(); it != nil {
			vs.IdleTime += float64(*it)
		}
		previousLocation = visit.Location
	}

	for i := 1; i < len(visits); i++ {
		dep := visits[i-1].DepartureTime
		arr := visits[i].ArrivalTime
		if dep != nil && arr != nil {
			vs.MovingTime += float64(*arr - *dep)
		}
	}

	return vs
}

// CollectOrderStatistics groups orders by OriginalID and reports the
// worst-case (max) due date / delivery time / tardiness across each
// group, ported from collect_order_statistics.
func CollectOrderStatistics(orders []*elements.Order) []OrderStatistics {
	groups := map[string][]*elements.Order{}
	var order []string
	for _, o := range orders {
		if _, ok := groups[o.OriginalID]; !ok {
			order = append(order, o.OriginalID)
		}
		groups[o.OriginalID] = append(groups[o.OriginalID], o)
	}
	sort.Strings(order)

	out := make([]OrderStatistics, 0, len(order))
	for _, id := range order {
		members := groups[id]
		os := OrderStatistics{OriginalID: id}
		for _, o := range members {
			if o.DueDate != nil && float64(*o.DueDate) > os.DueDate {
				os.DueDate = float64(*o.DueDate)
			}
			if o.DeliveryTime != nil && float64(*o.DeliveryTime) > os.Delivered {
				os.Delivered = float64(*o.DeliveryTime)
			}
			if t := o.Tardiness(); t != nil && float64(*t) > os.Tardiness {
				os.Tardiness = float64(*t)
			}
		}
		out = append(out, os)
	}
	return out
}

// Report is the full post-run statistics bundle for a model.
type Report struct {
	Vehicles []VehicleStatistics
	Orders   []OrderStatistics

	MeanDistance  float64
	MeanTardiness float64
}

// Collect builds a Report for every vehicle and every registered order
// in m (undelivered orders contribute zero delivery time and tardiness),
// ported from statistics.py's top-level driver.
func Collect(m *dvrpsim.Model) Report {
	var r Report
	for _, v := range m.Vehicles() {
		r.Vehicles = append(r.Vehicles, CollectVehicleStatistics(v))
	}
	r.Orders = CollectOrderStatistics(m.Orders())

	if len(r.Vehicles) > 0 {
		distances := make([]float64, len(r.Vehicles))
		for i, vs := range r.Vehicles {
			distances[i] = vs.Distance
		}
		r.MeanDistance = stat.Mean(distances, nil)
	}
	if len(r.Orders) > 0 {
		tardiness := make([]float64, len(r.Orders))
		for i, os := range r.Orders {
			tardiness[i] = os.Tardiness
		}
		r.MeanTardiness = stat.Mean(tardiness, nil)
	}

	return r
}

// Print renders the report as a tabular text report, ported (in
// simplified form) from statistics.py's print_statistics.
func (r Report) Print() string {
	var b strings.Builder

	b.WriteString("vehicle statistics\n")
	b.WriteString(fmt.Sprintf("%-12s %10s %10s %10s %10s %10s\n", "id", "distance", "moving", "waiting", "service", "idle"))
	for _, vs := range r.Vehicles {
		b.WriteString(fmt.Sprintf("%-12s %10.2f %10.2f %10.2f %10.2f %10.2f\n",
			vs.VehicleID, vs.Distance, vs.MovingTime, vs.WaitingTime, vs.ServiceTime, vs.IdleTime))
	}
	b.WriteString(fmt.Sprintf("%-12s %10.2f\n", "average", r.MeanDistance))

	b.WriteString("\norder statistics\n")
	b.WriteString(fmt.Sprintf("%-12s %10s %10s %10s\n", "id", "due", "delivered", "tardiness"))
	for _, os := range r.Orders {
		b.WriteString(fmt.Sprintf("%-12s %10.2f %10.2f %10.2f\n", os.OriginalID, os.DueDate, os.Delivered, os.Tardiness))
	}
	b.WriteString(fmt.Sprintf("%-12s %10s %10s %10.2f\n", "average", "", "", r.MeanTardiness))

	return b.String()
}
