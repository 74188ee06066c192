package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/wayplan/tripmcp/pkg/chargers"
	"github.com/wayplan/tripmcp/pkg/services"
	"github.com/wayplan/tripmcp/pkg/tools"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error struct {
		Kind     string `json:"kind"`
		Message  string `json:"message"`
		Guidance string `json:"guidance,omitempty"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message, guidance string) {
	var body errorBody
	body.Error.Kind = kind
	body.Error.Message = message
	body.Error.Guidance = guidance
	writeJSON(w, status, body)
}

// writeFailure maps a service failure onto an HTTP status.
func writeFailure(w http.ResponseWriter, err error) {
	var f *services.Failure
	if !errors.As(err, &f) {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), "")
		return
	}
	status := http.StatusInternalServerError
	switch f.Kind {
	case services.FailureInvalidInput:
		status = http.StatusBadRequest
	case services.FailureNotFound:
		status = http.StatusNotFound
	case services.FailureUpstream:
		status = http.StatusBadGateway
	}
	writeError(w, status, string(f.Kind), f.Message, f.Guidance)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, string(services.FailureInvalidInput),
			"request body is not valid JSON", "Send a JSON object matching the endpoint's schema.")
		return false
	}
	return true
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	var in services.GeocodeInput
	if !decode(w, r, &in) {
		return
	}
	res, err := s.svc.Geocode(r.Context(), in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var in services.RouteInput
	if !decode(w, r, &in) {
		return
	}
	res, err := s.svc.Route(r.Context(), in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePeaks(w http.ResponseWriter, r *http.Request) {
	var in services.PeaksInput
	if !decode(w, r, &in) {
		return
	}
	res, err := s.svc.Peaks(r.Context(), in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// chargersRequest is the body of POST /get_ev_chargers. The radius is a
// pointer so an absent field gets the default while an explicit zero is
// honored.
type chargersRequest struct {
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lon"`
	RadiusKm  *float64 `json:"radius_km"`
}

type chargersResponse struct {
	ChargingStations []tools.ChargerHit `json:"charging_stations"`
}

func (s *Server) handleChargers(w http.ResponseWriter, r *http.Request) {
	var in chargersRequest
	if !decode(w, r, &in) {
		return
	}
	radiusKm := float64(tools.DefaultChargerRadiusKm)
	if in.RadiusKm != nil {
		radiusKm = *in.RadiusKm
	}

	results, err := s.dir.Nearby(in.Latitude, in.Longitude, radiusKm)
	if err != nil {
		switch {
		case errors.Is(err, chargers.ErrInvalidCoordinate):
			writeError(w, http.StatusBadRequest, "INVALID_COORDINATE",
				"latitude must be between -90 and 90 and longitude between -180 and 180",
				"Correct the coordinates and try again.")
		case errors.Is(err, chargers.ErrInvalidRadius):
			writeError(w, http.StatusBadRequest, "INVALID_RADIUS",
				"radius_km must be a finite number", "Correct the radius and try again.")
		default:
			writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), "")
		}
		return
	}

	resp := chargersResponse{ChargingStations: make([]tools.ChargerHit, len(results))}
	for i, res := range results {
		resp.ChargingStations[i] = tools.ChargerHit{
			ID:         res.ID,
			Name:       res.Name,
			Latitude:   res.Location.Latitude,
			Longitude:  res.Location.Longitude,
			DistanceKm: math.Round(res.DistanceKm*100) / 100,
			Status:     res.Status,
			Network:    res.Network,
			Connectors: res.Connectors,
			PowerKW:    res.PowerKW,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
