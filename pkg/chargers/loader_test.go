package chargers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayplan/tripmcp/pkg/geo"
)

func TestLoadBundledDataset(t *testing.T) {
	dir, err := Load()
	require.NoError(t, err)
	require.NotNil(t, dir)
	assert.Greater(t, dir.Len(), 0)

	for _, s := range dir.Stations() {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.True(t, geo.ValidCoordinate(s.Location.Latitude, s.Location.Longitude),
			"station %s has invalid coordinate", s.ID)
	}
}

func TestParseStations(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid record",
			data: `[{"id":"x1","name":"Test Site","gps":{"latitude":47.6,"longitude":-122.3}}]`,
		},
		{
			name:    "missing latitude",
			data:    `[{"id":"x1","name":"Test Site","gps":{"longitude":-122.3}}]`,
			wantErr: "missing latitude",
		},
		{
			name:    "missing longitude",
			data:    `[{"id":"x1","name":"Test Site","gps":{"latitude":47.6}}]`,
			wantErr: "missing longitude",
		},
		{
			name:    "missing gps block",
			data:    `[{"id":"x1","name":"Test Site"}]`,
			wantErr: "missing gps",
		},
		{
			name:    "missing id",
			data:    `[{"name":"Test Site","gps":{"latitude":47.6,"longitude":-122.3}}]`,
			wantErr: "missing id",
		},
		{
			name:    "missing name",
			data:    `[{"id":"x1","gps":{"latitude":47.6,"longitude":-122.3}}]`,
			wantErr: "missing name",
		},
		{
			name:    "latitude out of range",
			data:    `[{"id":"x1","name":"Test Site","gps":{"latitude":91,"longitude":0}}]`,
			wantErr: "out of range",
		},
		{
			name:    "longitude out of range",
			data:    `[{"id":"x1","name":"Test Site","gps":{"latitude":0,"longitude":-180.5}}]`,
			wantErr: "out of range",
		},
		{
			name:    "malformed JSON",
			data:    `[{"id":`,
			wantErr: "dataset load failure",
		},
		{
			name:    "empty dataset",
			data:    `[]`,
			wantErr: "empty",
		},
		{
			name: "one bad record fails whole dataset",
			data: `[
				{"id":"ok","name":"Fine","gps":{"latitude":10,"longitude":10}},
				{"id":"bad","name":"Broken","gps":{"longitude":10}}
			]`,
			wantErr: "missing latitude",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stations, err := parseStations([]byte(tc.data))
			if tc.wantErr == "" {
				require.NoError(t, err)
				require.Len(t, stations, 1)
				assert.Equal(t, "x1", stations[0].ID)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDatasetLoad), "error should wrap ErrDatasetLoad: %v", err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseStationsPreservesOrder(t *testing.T) {
	data := `[
		{"id":"c","name":"C","gps":{"latitude":1,"longitude":1}},
		{"id":"a","name":"A","gps":{"latitude":2,"longitude":2}},
		{"id":"b","name":"B","gps":{"latitude":3,"longitude":3}}
	]`
	stations, err := parseStations([]byte(data))
	require.NoError(t, err)
	require.Len(t, stations, 3)
	assert.Equal(t, "c", stations[0].ID)
	assert.Equal(t, "a", stations[1].ID)
	assert.Equal(t, "b", stations[2].ID)
}
