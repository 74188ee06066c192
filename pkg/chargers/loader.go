package chargers

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wayplan/tripmcp/pkg/geo"
)

// ErrDatasetLoad marks a fatal failure to load the bundled station dataset.
// Malformed static data is a deployment defect, not a runtime condition to
// recover from: the process must not start serving.
var ErrDatasetLoad = errors.New("charger dataset load failure")

//go:embed data/ev_chargers.json
var datasetJSON []byte

// stationRecord mirrors the on-disk record shape. Coordinate fields are
// pointers so a missing field can be told apart from a zero value.
type stationRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Network    string   `json:"network"`
	Status     string   `json:"status"`
	Connectors []string `json:"connectors"`
	PowerKW    float64  `json:"power_kw"`
	GPS        *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"gps"`
}

// Load parses the bundled dataset and returns a ready Directory.
// Any malformed record fails the whole load.
func Load() (*Directory, error) {
	stations, err := parseStations(datasetJSON)
	if err != nil {
		return nil, err
	}
	return NewDirectory(stations)
}

// parseStations decodes and validates the raw dataset. Source order is
// preserved; it is the deterministic tie-break key for radius queries.
func parseStations(data []byte) ([]Station, error) {
	var records []stationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: dataset is empty", ErrDatasetLoad)
	}

	stations := make([]Station, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: record %d: missing id", ErrDatasetLoad, i)
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: record %d (%s): missing name", ErrDatasetLoad, i, rec.ID)
		}
		if rec.GPS == nil {
			return nil, fmt.Errorf("%w: record %d (%s): missing gps", ErrDatasetLoad, i, rec.ID)
		}
		if rec.GPS.Latitude == nil {
			return nil, fmt.Errorf("%w: record %d (%s): missing latitude", ErrDatasetLoad, i, rec.ID)
		}
		if rec.GPS.Longitude == nil {
			return nil, fmt.Errorf("%w: record %d (%s): missing longitude", ErrDatasetLoad, i, rec.ID)
		}
		lat, lon := *rec.GPS.Latitude, *rec.GPS.Longitude
		if !geo.ValidCoordinate(lat, lon) {
			return nil, fmt.Errorf("%w: record %d (%s): coordinate out of range (%f, %f)",
				ErrDatasetLoad, i, rec.ID, lat, lon)
		}

		stations = append(stations, Station{
			ID:         rec.ID,
			Name:       rec.Name,
			Location:   geo.Location{Latitude: lat, Longitude: lon},
			Network:    rec.Network,
			Status:     rec.Status,
			Connectors: rec.Connectors,
			PowerKW:    rec.PowerKW,
		})
	}

	return stations, nil
}
