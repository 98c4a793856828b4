package handler

import (
	"net/http"
)

// VehicleList is the body of GET /api/vehicles.
type VehicleList struct {
	Data []string `json:"data"`
}

type vehicleRequest struct {
	Name string `json:"name"`
}

// ListVehicles handles GET /api/vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	list := s.vehicles.List(r.Context())
	if list == nil {
		list = []string{}
	}
	writeJSON(w, http.StatusOK, VehicleList{Data: list})
}

// AddVehicle handles POST /api/vehicles. The name is stored upper-cased;
// a name already in the list (ignoring case) is a 409.
func (s *Server) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var body vehicleRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	name, err := s.vehicles.Add(r.Context(), body.Name)
	if err != nil {
		s.writeServiceError(w, r, err, "vehicle")
		return
	}
	writeJSON(w, http.StatusCreated, vehicleRequest{Name: name})
}

// RemoveVehicle handles DELETE /api/vehicles/{name}.
func (s *Server) RemoveVehicle(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	if err := s.vehicles.Remove(r.Context(), name); err != nil {
		s.writeServiceError(w, r, err, "vehicle")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
