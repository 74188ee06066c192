// Package chargers provides the bundled EV charging station dataset and
// radius queries against it. The dataset is loaded once at process start
// and is immutable for the life of the process, so concurrent queries need
// no synchronization.
package chargers

import (
	"github.com/wayplan/tripmcp/pkg/geo"
)

// Station is one fixed charging site from the bundled dataset.
type Station struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Location   geo.Location `json:"location"`
	Network    string       `json:"network,omitempty"`
	Status     string       `json:"status,omitempty"`
	Connectors []string     `json:"connectors,omitempty"`
	PowerKW    float64      `json:"power_kw,omitempty"`
}

// Result pairs a station with its computed distance from a query point.
// Results exist only for the duration of one response.
type Result struct {
	Station
	DistanceKm float64 `json:"distance_km"`
}
