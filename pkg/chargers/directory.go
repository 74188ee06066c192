package chargers

import (
	"errors"
	"math"
	"sort"

	"github.com/wayplan/tripmcp/pkg/geo"
)

var (
	// ErrInvalidCoordinate is returned when a query latitude or longitude
	// is missing, NaN, or out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidRadius is returned when a query radius is NaN or
	// negative-infinite. A finite radius <= 0 is a valid degenerate query
	// and yields an empty result instead.
	ErrInvalidRadius = errors.New("invalid radius")
)

// Directory holds the immutable station set and its spatial index.
// It is constructed once at the composition root and shared by reference;
// all methods are safe for concurrent use.
type Directory struct {
	stations []Station
	index    *pointIndex
}

// NewDirectory builds a Directory over an already-validated station slice.
// Slice order is preserved and used as the tie-break key in query results.
func NewDirectory(stations []Station) (*Directory, error) {
	for _, s := range stations {
		if !geo.ValidCoordinate(s.Location.Latitude, s.Location.Longitude) {
			return nil, errors.New("station " + s.ID + " has an out-of-range coordinate")
		}
	}
	owned := make([]Station, len(stations))
	copy(owned, stations)

	idx, err := newPointIndex(owned)
	if err != nil {
		return nil, err
	}
	return &Directory{stations: owned, index: idx}, nil
}

// Len returns the number of stations in the directory.
func (d *Directory) Len() int {
	return len(d.stations)
}

// Stations returns the station set in dataset order. The returned slice
// must not be modified.
func (d *Directory) Stations() []Station {
	return d.stations
}

// Nearby returns every station within radiusKm (inclusive) of the query
// coordinate, each annotated with its great-circle distance in kilometers,
// sorted ascending by distance. Equal distances preserve dataset order.
//
// A finite radius <= 0 is a well-defined degenerate query: radius 0 returns
// only exact coordinate matches, a negative radius returns nothing.
func (d *Directory) Nearby(lat, lon, radiusKm float64) ([]Result, error) {
	if !geo.ValidCoordinate(lat, lon) {
		return nil, ErrInvalidCoordinate
	}
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, -1) {
		return nil, ErrInvalidRadius
	}
	if radiusKm < 0 {
		return []Result{}, nil
	}

	candidates := d.index.candidates(lat, lon, radiusKm)

	type hit struct {
		order  int
		result Result
	}
	hits := make([]hit, 0, len(candidates))
	for _, i := range candidates {
		s := d.stations[i]
		dist := geo.HaversineKm(lat, lon, s.Location.Latitude, s.Location.Longitude)
		if dist <= radiusKm {
			hits = append(hits, hit{order: i, result: Result{Station: s, DistanceKm: dist}})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].result.DistanceKm != hits[j].result.DistanceKm {
			return hits[i].result.DistanceKm < hits[j].result.DistanceKm
		}
		return hits[i].order < hits[j].order
	})

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = h.result
	}
	return results, nil
}
