package chargers

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/wayplan/tripmcp/pkg/geo"
)

const (
	indexDimensions  = 2
	indexMinChildren = 2
	indexMaxChildren = 8

	// pointTolerance is the side length of the rectangle a station point is
	// stored under. Stations are points, so any small positive value works.
	pointTolerance = 1e-6

	// boxMargin widens every prefilter box so the coarse degree math can
	// never exclude a point the exact haversine test would accept.
	boxMargin = 0.01
)

// stationItem indexes one station by its position in the dataset slice.
type stationItem struct {
	idx  int
	rect *rtreego.Rect
}

func (si *stationItem) Bounds() *rtreego.Rect {
	return si.rect
}

// pointIndex is an R-tree over the station coordinates, used as a
// bounding-box prefilter for radius queries. The query contract is
// index-agnostic: candidates may over-include, never under-include.
type pointIndex struct {
	tree *rtreego.Rtree
	size int
}

func newPointIndex(stations []Station) (*pointIndex, error) {
	tree := rtreego.NewTree(indexDimensions, indexMinChildren, indexMaxChildren)
	for i, s := range stations {
		p := rtreego.Point{s.Location.Latitude, s.Location.Longitude}
		tree.Insert(&stationItem{idx: i, rect: p.ToRect(pointTolerance)})
	}
	return &pointIndex{tree: tree, size: len(stations)}, nil
}

// candidates returns the indices of stations whose coordinates fall inside
// a degree box covering the radiusKm circle around the query point. The box
// is split in two when it crosses the antimeridian and degrades to a full
// longitude band when the circle reaches a pole.
func (x *pointIndex) candidates(lat, lon, radiusKm float64) []int {
	boxes := coverBoxes(lat, lon, radiusKm)

	seen := make(map[int]bool)
	out := make([]int, 0, x.size)
	for _, b := range boxes {
		rect, err := rtreego.NewRect(
			rtreego.Point{b.minLat, b.minLon},
			[]float64{b.maxLat - b.minLat, b.maxLon - b.minLon},
		)
		if err != nil {
			// A degenerate box means the coarse math broke down; fall back
			// to scanning everything rather than miss a point.
			return x.all()
		}
		for _, sp := range x.tree.SearchIntersect(rect) {
			item := sp.(*stationItem)
			if !seen[item.idx] {
				seen[item.idx] = true
				out = append(out, item.idx)
			}
		}
	}
	return out
}

func (x *pointIndex) all() []int {
	out := make([]int, x.size)
	for i := range out {
		out[i] = i
	}
	return out
}

type degreeBox struct {
	minLat, minLon, maxLat, maxLon float64
}

// coverBoxes computes one or two latitude/longitude boxes guaranteed to
// contain every point within radiusKm of (lat, lon).
func coverBoxes(lat, lon, radiusKm float64) []degreeBox {
	if radiusKm < 0 {
		radiusKm = 0
	}

	// Angular radius of the circle, in degrees of latitude.
	latDelta := radiusKm / geo.EarthRadiusKm * 180 / math.Pi
	latDelta += boxMargin

	minLat := lat - latDelta
	maxLat := lat + latDelta
	if minLat < -90 {
		minLat = -90
	}
	if maxLat > 90 {
		maxLat = 90
	}

	// If the circle reaches a pole, every longitude is in range.
	if lat+latDelta >= 90 || lat-latDelta <= -90 {
		return []degreeBox{{minLat: minLat, minLon: -180, maxLat: maxLat, maxLon: 180}}
	}

	// Longitude degrees shrink with cos(lat); size the window for the
	// latitude in the box closest to a pole.
	extremeLat := math.Max(math.Abs(minLat), math.Abs(maxLat))
	cosLat := math.Cos(extremeLat * math.Pi / 180)
	if cosLat < 1e-9 {
		return []degreeBox{{minLat: minLat, minLon: -180, maxLat: maxLat, maxLon: 180}}
	}
	lonDelta := latDelta / cosLat
	if lonDelta >= 180 {
		return []degreeBox{{minLat: minLat, minLon: -180, maxLat: maxLat, maxLon: 180}}
	}

	minLon := lon - lonDelta
	maxLon := lon + lonDelta

	// Split across the antimeridian so points on the opposite sign of the
	// seam are still covered.
	switch {
	case minLon < -180:
		return []degreeBox{
			{minLat: minLat, minLon: -180, maxLat: maxLat, maxLon: maxLon},
			{minLat: minLat, minLon: minLon + 360, maxLat: maxLat, maxLon: 180},
		}
	case maxLon > 180:
		return []degreeBox{
			{minLat: minLat, minLon: minLon, maxLat: maxLat, maxLon: 180},
			{minLat: minLat, minLon: -180, maxLat: maxLat, maxLon: maxLon - 360},
		}
	default:
		return []degreeBox{{minLat: minLat, minLon: minLon, maxLat: maxLat, maxLon: maxLon}}
	}
}
