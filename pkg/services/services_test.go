package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayplan/tripmcp/pkg/geo"
	"github.com/wayplan/tripmcp/pkg/testutil"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		switch r.URL.Query().Get("q") {
		case "seattle, wa":
			fmt.Fprint(w, `[{"display_name":"Seattle, King County, Washington, United States",
				"lat":"47.6038321","lon":"-122.330062","type":"city","importance":0.77}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	defer srv.Close()

	c := New(Config{NominatimURL: srv.URL}, testutil.DiscardLogger())

	t.Run("found", func(t *testing.T) {
		// input is trimmed and lowercased before the lookup
		res, err := c.Geocode(context.Background(), GeocodeInput{LocationText: "  Seattle, WA "})
		require.NoError(t, err)
		assert.InDelta(t, 47.6038321, res.Latitude, 1e-9)
		assert.InDelta(t, -122.330062, res.Longitude, 1e-9)
		assert.Contains(t, res.LocationName, "Seattle")
		assert.Equal(t, "city", res.Meta.Type)
		assert.InDelta(t, 0.77, res.Meta.Importance, 1e-9)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.Geocode(context.Background(), GeocodeInput{LocationText: "nowhere at all"})
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, FailureNotFound, f.Kind)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := c.Geocode(context.Background(), GeocodeInput{LocationText: "   "})
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, FailureInvalidInput, f.Kind)
	})
}

func TestGeocodeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{NominatimURL: srv.URL}, testutil.DiscardLogger())
	_, err := c.Geocode(context.Background(), GeocodeInput{LocationText: "seattle"})

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, FailureUpstream, f.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, f.StatusCode)
}

func routeFixture(stepCount int) string {
	steps := make([]map[string]any, stepCount)
	for i := range steps {
		steps[i] = map[string]any{"instruction": fmt.Sprintf("Step %d", i), "distance": 100.0, "duration": 10.0}
	}
	body, _ := json.Marshal(map[string]any{
		"features": []map[string]any{{
			"properties": map[string]any{
				"summary":  map[string]any{"distance": 12345.0, "duration": 3600.0},
				"segments": []map[string]any{{"steps": steps}},
			},
		}},
	})
	return string(body)
}

func TestRoute(t *testing.T) {
	var gotPayload struct {
		Coordinates [][]float64 `json:"coordinates"`
		Options     *struct {
			AvoidFeatures []string `json:"avoid_features"`
		} `json:"options"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/directions/driving-car/geojson", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		fmt.Fprint(w, routeFixture(12))
	}))
	defer srv.Close()

	c := New(Config{ORSURL: srv.URL, ORSAPIKey: "test-key"}, testutil.DiscardLogger())

	start := geo.Location{Latitude: 37.7749, Longitude: -122.4194}
	end := geo.Location{Latitude: 34.0522, Longitude: -118.2437}
	res, err := c.Route(context.Background(), RouteInput{
		Coordinates:   []geo.Location{start, end},
		AvoidFeatures: []string{"ferries", "tollways"},
	})
	require.NoError(t, err)

	// coordinates are sent lon-first
	require.Len(t, gotPayload.Coordinates, 2)
	assert.Equal(t, []float64{-122.4194, 37.7749}, gotPayload.Coordinates[0])
	require.NotNil(t, gotPayload.Options)
	assert.Equal(t, []string{"ferries", "tollways"}, gotPayload.Options.AvoidFeatures)

	assert.Equal(t, 12.35, res.DistanceKm)
	assert.Equal(t, 60.0, res.DurationMin)
	assert.Equal(t, start, res.Start)
	assert.Equal(t, end, res.End)

	// 12 steps collapse to the first five plus the last five
	require.Len(t, res.Steps, 10)
	assert.Equal(t, "Step 0", res.Steps[0])
	assert.Equal(t, "Step 4", res.Steps[4])
	assert.Equal(t, "Step 7", res.Steps[5])
	assert.Equal(t, "Step 11", res.Steps[9])

	eta, err := time.Parse("2006-01-02 15:04 UTC", res.EstimatedArrival)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), eta, 2*time.Minute)
}

func TestRouteShortStepListKept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, routeFixture(4))
	}))
	defer srv.Close()

	c := New(Config{ORSURL: srv.URL, ORSAPIKey: "test-key"}, testutil.DiscardLogger())
	res, err := c.Route(context.Background(), RouteInput{
		Coordinates: []geo.Location{{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2}},
	})
	require.NoError(t, err)
	assert.Len(t, res.Steps, 4)
}

func TestRouteFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[]}`)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		cfg  Config
		in   RouteInput
		kind FailureKind
	}{
		{
			name: "too few coordinates",
			cfg:  Config{ORSURL: srv.URL, ORSAPIKey: "k"},
			in:   RouteInput{Coordinates: []geo.Location{{Latitude: 1, Longitude: 1}}},
			kind: FailureInvalidInput,
		},
		{
			name: "coordinate out of range",
			cfg:  Config{ORSURL: srv.URL, ORSAPIKey: "k"},
			in: RouteInput{Coordinates: []geo.Location{
				{Latitude: 91, Longitude: 1}, {Latitude: 2, Longitude: 2},
			}},
			kind: FailureInvalidInput,
		},
		{
			name: "missing API key",
			cfg:  Config{ORSURL: srv.URL},
			in: RouteInput{Coordinates: []geo.Location{
				{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2},
			}},
			kind: FailureUpstream,
		},
		{
			name: "no route found",
			cfg:  Config{ORSURL: srv.URL, ORSAPIKey: "k"},
			in: RouteInput{Coordinates: []geo.Location{
				{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2},
			}},
			kind: FailureNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.cfg, testutil.DiscardLogger())
			_, err := c.Route(context.Background(), tc.in)
			var f *Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, tc.kind, f.Kind)
		})
	}
}

func TestPeaks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		query := r.PostForm.Get("data")
		assert.Contains(t, query, `node["natural"="peak"]`)
		assert.Contains(t, query, "around:25000")

		fmt.Fprint(w, `{"elements":[
			{"lat":46.8523,"lon":-121.7603,"tags":{"name":"Mount Rainier"}},
			{"lat":46.84,"lon":-121.76,"tags":{}},
			{"lat":46.83,"lon":-121.75,"tags":{"name":"Little Tahoma"}},
			{"lat":46.82,"lon":-121.74,"tags":{"name":"Fourth Peak"}}
		]}`)
	}))
	defer srv.Close()

	c := New(Config{OverpassURL: srv.URL}, testutil.DiscardLogger())
	res, err := c.Peaks(context.Background(), PeaksInput{Latitude: 46.85, Longitude: -121.76})
	require.NoError(t, err)

	// capped at three, unnamed peaks get the fallback label
	require.Len(t, res.Peaks, 3)
	assert.Equal(t, "Mount Rainier", res.Peaks[0].Name)
	assert.Equal(t, "Unnamed Peak", res.Peaks[1].Name)
	assert.Equal(t, "Little Tahoma", res.Peaks[2].Name)
}

func TestPeaksFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"elements":[]}`)
	}))
	defer srv.Close()

	c := New(Config{OverpassURL: srv.URL}, testutil.DiscardLogger())

	t.Run("no features found", func(t *testing.T) {
		_, err := c.Peaks(context.Background(), PeaksInput{Latitude: 0, Longitude: 0})
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, FailureNotFound, f.Kind)
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		_, err := c.Peaks(context.Background(), PeaksInput{Latitude: 95, Longitude: 0})
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, FailureInvalidInput, f.Kind)
	})

	t.Run("negative radius", func(t *testing.T) {
		_, err := c.Peaks(context.Background(), PeaksInput{Latitude: 0, Longitude: 0, RadiusM: -1})
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, FailureInvalidInput, f.Kind)
	})
}
